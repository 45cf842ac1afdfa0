package staff

import "context"

type StaffRepository interface {
	Create(ctx context.Context, s Staff) (Staff, error)
	GetByID(ctx context.Context, id string) (Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]Staff, error)
	Update(ctx context.Context, req UpdateStaffRequest) (Staff, error)
	UpdateStatus(ctx context.Context, req ChangeStatusRequest) (Staff, error)
	Delete(ctx context.Context, id string) error
}
