package service

import "errors"

// Sentinel errors the controllers map onto HTTP statuses. Anything else
// coming out of a service is a storage-layer failure and surfaces as a
// generic 500 without leaking internals.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrEmailTaken   = errors.New("email already registered")
	ErrSignupClosed = errors.New("sign-up disabled")
)
