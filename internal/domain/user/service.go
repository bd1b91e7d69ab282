package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	List(ctx context.Context) ([]User, error)
	SetActive(ctx context.Context, id string, active bool) error
}
