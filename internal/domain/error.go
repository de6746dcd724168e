package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrUnauthorized    = errors.New("not authorized")
	ErrInvalidArgument = errors.New("invalid argument")
)
