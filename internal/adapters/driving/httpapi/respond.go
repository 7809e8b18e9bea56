package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/logger"
)

// maxBodyBytes caps request bodies, uploads included.
const maxBodyBytes = 32 << 20

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("write response: %v", err)
	}
}

// writeData writes {success:true, data}.
func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// writeFailure writes {success:false, error:message}.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

// writeError maps err to its status code and caller-facing message.
func writeError(w http.ResponseWriter, err error) {
	writeFailure(w, domain.HTTPStatus(err), domain.MessageOf(err))
}

// decodeBody reads a JSON body into a T. A missing or malformed body yields
// the zero value, so required fields are reported as missing downstream.
func decodeBody[T any](r *http.Request) T {
	var v T
	if r.Body == nil {
		return v
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Debug("ignoring malformed body on %s: %v", r.URL.Path, err)
		var zero T
		return zero
	}
	return v
}
