package services

import "errors"

// Sentinel errors shared by all services. Handlers map these to HTTP
// statuses at their own boundary.
var (
	ErrInvalidID     = errors.New("invalid id")
	ErrNotFound      = errors.New("not found")
	ErrNotAdmin      = errors.New("admin role required")
	ErrInvalidAmount = errors.New("invalid salary amount")
)
