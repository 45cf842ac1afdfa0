package staff

import "context"

type StaffService interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	Get(ctx context.Context, id string) (StaffResponse, error)
	List(ctx context.Context, filter StaffFilter) ([]StaffResponse, error)
	Update(ctx context.Context, req UpdateStaffRequest) (StaffResponse, error)
	Retire(ctx context.Context, id string) (StaffResponse, error)
	Suspend(ctx context.Context, id string) (StaffResponse, error)
	Reinstate(ctx context.Context, id string) (StaffResponse, error)
	Delete(ctx context.Context, id string) error
}
