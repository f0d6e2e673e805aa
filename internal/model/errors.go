package model

import "errors"

var (
	// User related errors
	ErrUserNotFound = errors.New("user not found")

	// Token related errors. An expired token is deliberately reported the
	// same way as an unknown one; callers must not be able to tell them
	// apart.
	ErrTokenNotFound = errors.New("token not found")
)
