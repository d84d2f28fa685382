package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Storage failures are
// never wrapped into these; they propagate as-is and surface as internal
// errors, so a caller can always tell infrastructure failure apart from a
// legitimate denial.
var (
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrUserNotFound      = errors.New("no user found for the authenticated subject")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("insufficient permission")
	ErrLastAdmin         = errors.New("team admin must designate another admin before removal")
)
