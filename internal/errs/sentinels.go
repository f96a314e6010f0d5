// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist
	// (or is not owned by the caller, which is reported identically).
	ErrNotFound = errors.New("Not found")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrRateLimited indicates temporary sign-in lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (email taken).
	ErrAlreadyExists = errors.New("Already exist")
)

// Field-level validation sentinels. Their text is the client-visible message.
var (
	ErrMissingEmail    = errors.New("Missing email")
	ErrMissingPassword = errors.New("Missing password")
	ErrMissingName     = errors.New("Missing name")
	ErrInvalidKind     = errors.New("Missing type")
	ErrMissingData     = errors.New("Missing data")
	ErrParentNotFound  = errors.New("Parent not found")
	ErrParentNotFolder = errors.New("Parent is not a folder")
	ErrFolderNoContent = errors.New("A folder doesn't have content")
)

var validation = []error{
	ErrMissingEmail, ErrMissingPassword, ErrMissingName,
	ErrInvalidKind, ErrMissingData, ErrParentNotFound,
	ErrParentNotFolder, ErrFolderNoContent,
}

// IsValidation reports whether err is one of the field-level sentinels.
func IsValidation(err error) bool {
	_, ok := ValidationMessage(err)
	return ok
}

// ValidationMessage returns the client-visible message of the matching
// field-level sentinel, stripping any wrapping detail.
func ValidationMessage(err error) (string, bool) {
	for _, s := range validation {
		if errors.Is(err, s) {
			return s.Error(), true
		}
	}
	return "", false
}
