package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserInactive       = errors.New("user account is disabled")

	ErrAdminAccessRequired = errors.New("admin access required")
	ErrPermissionDenied    = errors.New("permission denied")
)
