package middleware

import "errors"

var (
	ErrMissingToken   = errors.New("middleware: missing bearer token")
	ErrInvalidToken   = errors.New("middleware: invalid token")
	ErrTokenExpired   = errors.New("middleware: token expired")
	ErrEmptyJWTSecret = errors.New("middleware: jwt secret cannot be empty")
)
