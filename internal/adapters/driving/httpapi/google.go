package httpapi

import (
	"encoding/base64"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

// sheetsRequest is the body accepted by the /sheets routes.
type sheetsRequest struct {
	SpreadsheetID string             `json:"spreadsheetId"`
	Range         string             `json:"range"`
	Ranges        []string           `json:"ranges"`
	Values        domain.ValueMatrix `json:"values"`
}

// driveRequest is the body accepted by the /drive routes.
type driveRequest struct {
	FolderID       string `json:"folderId"`
	FileID         string `json:"fileId"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	NewName        string `json:"newName"`
	FolderName     string `json:"folderName"`
	ParentFolderID string `json:"parentFolderId"`
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Content        string `json:"content"`
}

type configurable interface {
	Configured() bool
}

// googleRoutes serves /api/google.
type googleRoutes struct {
	sheets driving.SheetsService
	drive  driving.DriveService
	creds  driving.CredentialService
}

func (g *googleRoutes) register(r *mux.Router) {
	r.HandleFunc("/sheets/read", g.sheetsRead).Methods(http.MethodPost)
	r.HandleFunc("/sheets/write", g.sheetsWrite).Methods(http.MethodPost)
	r.HandleFunc("/sheets/append", g.sheetsAppend).Methods(http.MethodPost)
	r.HandleFunc("/sheets/clear", g.sheetsClear).Methods(http.MethodPost)
	r.HandleFunc("/sheets/metadata/{spreadsheetId}", g.sheetsMetadata).Methods(http.MethodGet)
	r.HandleFunc("/sheets/metadata/", g.sheetsMetadata).Methods(http.MethodGet)
	r.HandleFunc("/sheets/batch-get", g.sheetsBatchGet).Methods(http.MethodPost)

	r.HandleFunc("/drive/list", g.driveList).Methods(http.MethodPost)
	r.HandleFunc("/drive/metadata/{fileId}", g.driveMetadata).Methods(http.MethodGet)
	r.HandleFunc("/drive/metadata/", g.driveMetadata).Methods(http.MethodGet)
	r.HandleFunc("/drive/delete/{fileId}", g.driveDelete).Methods(http.MethodPost)
	r.HandleFunc("/drive/delete/", g.driveDelete).Methods(http.MethodPost)
	r.HandleFunc("/drive/share", g.driveShare).Methods(http.MethodPost)
	r.HandleFunc("/drive/rename", g.driveRename).Methods(http.MethodPost)
	r.HandleFunc("/drive/create-folder", g.driveCreateFolder).Methods(http.MethodPost)
	r.HandleFunc("/drive/upload", g.driveUpload).Methods(http.MethodPost)

	r.HandleFunc("/health", g.health).Methods(http.MethodGet)
}

// ready answers 503 when svc cannot reach Google.
func ready(w http.ResponseWriter, svc configurable) bool {
	if svc.Configured() {
		return true
	}
	writeFailure(w, http.StatusServiceUnavailable, domain.ErrConfigMissing.Error())
	return false
}

func respond(w http.ResponseWriter, data any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, data)
}

func (g *googleRoutes) sheetsRead(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	req := decodeBody[sheetsRequest](r)
	data, err := g.sheets.ReadRange(r.Context(), req.SpreadsheetID, req.Range)
	respond(w, data, err)
}

func (g *googleRoutes) sheetsWrite(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	req := decodeBody[sheetsRequest](r)
	data, err := g.sheets.WriteRange(r.Context(), req.SpreadsheetID, req.Range, req.Values)
	respond(w, data, err)
}

func (g *googleRoutes) sheetsAppend(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	req := decodeBody[sheetsRequest](r)
	data, err := g.sheets.AppendRange(r.Context(), req.SpreadsheetID, req.Range, req.Values)
	respond(w, data, err)
}

func (g *googleRoutes) sheetsClear(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	req := decodeBody[sheetsRequest](r)
	data, err := g.sheets.ClearRange(r.Context(), req.SpreadsheetID, req.Range)
	respond(w, data, err)
}

func (g *googleRoutes) sheetsMetadata(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	data, err := g.sheets.GetMetadata(r.Context(), mux.Vars(r)["spreadsheetId"])
	respond(w, data, err)
}

func (g *googleRoutes) sheetsBatchGet(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.sheets) {
		return
	}
	req := decodeBody[sheetsRequest](r)
	data, err := g.sheets.BatchGetRanges(r.Context(), req.SpreadsheetID, req.Ranges)
	respond(w, data, err)
}

func (g *googleRoutes) driveList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	req := decodeBody[driveRequest](r)
	files, err := g.drive.ListFiles(r.Context(), req.FolderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if files == nil {
		files = []domain.File{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": files})
}

func (g *googleRoutes) driveMetadata(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	data, err := g.drive.GetMetadata(r.Context(), mux.Vars(r)["fileId"])
	respond(w, data, err)
}

func (g *googleRoutes) driveDelete(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	if err := g.drive.DeleteFile(r.Context(), mux.Vars(r)["fileId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (g *googleRoutes) driveShare(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	req := decodeBody[driveRequest](r)
	data, err := g.drive.ShareFile(r.Context(), req.FileID, req.Email, domain.PermissionRole(req.Role))
	respond(w, data, err)
}

func (g *googleRoutes) driveRename(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	req := decodeBody[driveRequest](r)
	data, err := g.drive.RenameFile(r.Context(), req.FileID, req.NewName)
	respond(w, data, err)
}

func (g *googleRoutes) driveCreateFolder(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	req := decodeBody[driveRequest](r)
	data, err := g.drive.CreateFolder(r.Context(), req.FolderName, req.ParentFolderID)
	respond(w, data, err)
}

// driveUpload takes base64 content. Content that does not decode counts as missing.
func (g *googleRoutes) driveUpload(w http.ResponseWriter, r *http.Request) {
	if !ready(w, g.drive) {
		return
	}
	req := decodeBody[driveRequest](r)
	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		content = nil
	}
	data, err := g.drive.UploadFile(r.Context(), domain.Upload{
		Name:     req.Name,
		MimeType: req.MimeType,
		ParentID: req.ParentFolderID,
		Content:  content,
	})
	respond(w, data, err)
}

func (g *googleRoutes) health(w http.ResponseWriter, _ *http.Request) {
	_, ok := g.creds.Resolve()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"message":               "Google APIs proxy is running",
		"credentialsConfigured": ok,
	})
}
