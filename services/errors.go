package services

import "errors"

// Error taxonomy shared by the services and translated once at the HTTP
// boundary. Handlers match with errors.Is; wrapped causes stay internal.
var (
	// ErrInvalidCredentials covers every authentication failure the caller
	// is allowed to see: bad login, bad token, vanished identity.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordExpired and ErrPasswordChangeRequired are forbidden-class
	// outcomes carrying distinct remediation signals.
	ErrPasswordExpired        = errors.New("password expired")
	ErrPasswordChangeRequired = errors.New("password change required")

	// ErrInsufficientRole means authenticated but the role gate failed.
	ErrInsufficientRole = errors.New("insufficient permissions")

	// ErrInactiveAccount means valid credentials against a disabled account.
	ErrInactiveAccount = errors.New("inactive account")

	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers uniqueness violations and invalid state
	// transitions, such as paying an already-paid bill.
	ErrConflict = errors.New("conflict")

	// ErrValidation covers malformed input; wrap it with the reason.
	ErrValidation = errors.New("validation failed")
)
