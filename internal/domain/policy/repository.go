package policy

import (
	"context"
	"time"
)

type PolicyRepository interface {
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id string) (Policy, error)
	ListByStore(ctx context.Context, storeID string) ([]Policy, error)
	Update(ctx context.Context, p Policy) (Policy, error)
	// GetEffective returns the active policy with the latest effective_from on or before asOf.
	GetEffective(ctx context.Context, storeID string, asOf time.Time) (Policy, error)
}
