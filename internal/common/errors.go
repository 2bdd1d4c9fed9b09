// Package common defines shared constants, sentinel errors and the Failure
// type used across the shopping-list server. Callers should use errors.Is and
// errors.As to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Token errors returned by the token codec.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
