package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for
// stable client handling.
const (
	ErrCodeInvalidCredential = "invalid_credential"
	ErrCodeUserNotFound      = "user_not_found"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeConflict          = "conflict"
	ErrCodeForbidden         = "forbidden"
	ErrCodeLastAdmin         = "last_admin"
	ErrCodeNotImplemented    = "not_implemented"
	ErrCodeInternal          = "internal_error"
)
