package company

import "context"

type CompanyService interface {
	// Create registers a new company and binds it to the calling admin.
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)

	// GetMine returns the company the calling user belongs to.
	GetMine(ctx context.Context) (Company, error)

	// List returns every company. Restricted to platform administrators.
	List(ctx context.Context) ([]Company, error)

	Update(ctx context.Context, req UpdateCompanyRequest) (Company, error)
	Deactivate(ctx context.Context, id string) error
}
