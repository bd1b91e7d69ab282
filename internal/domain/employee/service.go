package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]Employee, int, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)

	// Terminate marks the employee TERMINATED. The record is kept so that
	// historical bulletins and attendance stay resolvable.
	Terminate(ctx context.Context, id string) error

	// RotateQRToken invalidates the current badge token and issues a new one.
	RotateQRToken(ctx context.Context, id string) (Employee, error)
}
