package policy

import (
	"context"
	"time"
)

type PolicyService interface {
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	Get(ctx context.Context, id string) (PolicyResponse, error)
	ListByStore(ctx context.Context, storeID string) ([]PolicyResponse, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
	// Current returns the governing policy for a store, falling back to Default.
	Current(ctx context.Context, storeID string, asOf time.Time) (Policy, error)
}
