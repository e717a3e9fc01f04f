package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrPersistenceFailure    = errors.New("persistence failure")
	ErrInvalidCode           = errors.New("invalid invite code")
	ErrAlreadyMember         = errors.New("already a league member")
	ErrConfirmationExpired   = errors.New("confirmation expired")
	ErrPlayerInUse           = errors.New("player in use")
)
