package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("refresh token revoked")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("access forbidden")
)
