package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountDisabled     = errors.New("account is disabled")
)
