package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden access")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenMalformed  = errors.New("token malformed")
	ErrInvalidID       = errors.New("invalid identifier")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrNotFound        = errors.New("not found")
	ErrUserExists      = errors.New("user already in database")
)
