package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
	"github.com/custodia-labs/gproxy/internal/logger"
)

const msgLogoutServerError = "Lỗi server khi đăng xuất"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authRoutes serves /api/auth.
type authRoutes struct {
	auth driving.AuthService
}

func (a *authRoutes) register(r *mux.Router) {
	r.HandleFunc("/login", a.login).Methods(http.MethodPost)
	r.HandleFunc("/verify", a.verify).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", a.logout).Methods(http.MethodPost)
}

func (a *authRoutes) login(w http.ResponseWriter, r *http.Request) {
	req := decodeBody[loginRequest](r)
	res, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		authError(w, err, domain.MsgLoginServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    res.User,
		"session": res.Session,
		"token":   res.Token,
		"message": domain.MsgLoginSuccess,
	})
}

func (a *authRoutes) verify(w http.ResponseWriter, r *http.Request) {
	user, err := a.auth.Verify(r.Context(), bearerToken(r))
	if err != nil {
		authError(w, err, domain.MsgVerifyServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"valid":   true,
		"user":    user,
		"message": domain.MsgTokenValid,
	})
}

func (a *authRoutes) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		authError(w, err, msgLogoutServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": domain.MsgLogoutSuccess})
}

// authError reports validation and credential failures as they are and
// hides everything else behind serverMsg.
func authError(w http.ResponseWriter, err error, serverMsg string) {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindUnauthorized:
		writeError(w, err)
	default:
		logger.Error("auth: %v", err)
		writeFailure(w, http.StatusInternalServerError, serverMsg)
	}
}

// bearerToken returns the credential after the scheme in the Authorization header.
func bearerToken(r *http.Request) string {
	_, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
