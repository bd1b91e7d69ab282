package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetByQRToken(ctx context.Context, token string) (Employee, error)
	List(ctx context.Context, companyID string, filter ListEmployeesFilter) ([]Employee, int, error)
	ListActive(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, e Employee) error
	RotateQRToken(ctx context.Context, companyID, id, token string) error
}
