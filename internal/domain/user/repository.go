package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByCompany(ctx context.Context, companyID string) ([]User, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, active bool) error
}
