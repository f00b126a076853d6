package services

import "errors"

// Domain errors returned by the services. Handlers translate them to
// HTTP statuses; repository lookups that miss surface
// repositories.ErrNotFound instead.
var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("not the owner")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotClaimable       = errors.New("share is not claimable")
	ErrAlreadyClaimed     = errors.New("share already claimed")
)
