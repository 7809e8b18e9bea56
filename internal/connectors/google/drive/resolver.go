package drive

import "github.com/custodia-labs/gproxy/internal/core/domain"

// ResolveWebURL returns the browser URL for a file.
// The stored webViewLink wins; otherwise it is derived from the file ID and type.
func ResolveWebURL(f domain.File) string {
	if f.WebViewLink != "" {
		return f.WebViewLink
	}
	if f.ID == "" {
		return ""
	}

	switch f.MimeType {
	case MimeTypeFolder:
		return "https://drive.google.com/drive/folders/" + f.ID
	case MimeTypeGoogleSheet:
		return "https://docs.google.com/spreadsheets/d/" + f.ID + "/edit"
	case MimeTypeGoogleDoc:
		return "https://docs.google.com/document/d/" + f.ID + "/edit"
	default:
		return "https://drive.google.com/file/d/" + f.ID + "/view"
	}
}
