package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	sentinels := map[string]error{
		"ErrInvalidCredential": ErrInvalidCredential,
		"ErrUserNotFound":      ErrUserNotFound,
		"ErrNotFound":          ErrNotFound,
		"ErrConflict":          ErrConflict,
		"ErrForbidden":         ErrForbidden,
		"ErrLastAdmin":         ErrLastAdmin,
	}
	for name, err := range sentinels {
		if err == nil {
			t.Errorf("%s should not be nil", name)
		}
	}
}
