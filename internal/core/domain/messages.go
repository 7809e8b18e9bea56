package domain

// Caller-facing validation messages shared by the HTTP routes and the services.
const (
	MsgMissingSpreadsheetRange       = "Missing spreadsheetId or range"
	MsgMissingSpreadsheetRangeValues = "Missing spreadsheetId, range, or values"
	MsgMissingSpreadsheetID          = "Missing spreadsheetId"
	MsgMissingSpreadsheetRanges      = "Missing spreadsheetId or ranges"
	MsgMissingFileID                 = "Missing fileId"
	MsgMissingFileEmail              = "Missing fileId or email"
	MsgMissingFileName               = "Missing fileId or newName"
	MsgMissingFolderName             = "Missing folderName"
	MsgMissingUpload                 = "Missing name or content"
)

// Caller-facing authentication messages.
const (
	MsgLoginMissingFields  = "Email và mật khẩu là bắt buộc"
	MsgLoginInvalid        = "Email hoặc mật khẩu không đúng"
	MsgLoginSuccess        = "Đăng nhập thành công"
	MsgLoginServerError    = "Lỗi server khi xử lý đăng nhập"
	MsgTokenMissing        = "Token không được cung cấp"
	MsgTokenInvalid        = "Token không hợp lệ"
	MsgTokenValid          = "Token hợp lệ"
	MsgVerifyServerError   = "Lỗi server khi xác minh token"
	MsgLogoutSuccess       = "Đăng xuất thành công"
	MsgRateLimitExceeded   = "Rate limit exceeded"
	MsgEndpointNotFound    = "API endpoint not found"
	MsgInternalServerError = "Internal server error"
)

// Validation returns a KindValidation error carrying message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}
