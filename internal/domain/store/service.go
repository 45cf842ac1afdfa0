package store

import "context"

type StoreService interface {
	Create(ctx context.Context, req CreateStoreRequest) (StoreResponse, error)
	Get(ctx context.Context, id string) (StoreResponse, error)
	List(ctx context.Context, filter StoreFilter) ([]StoreResponse, error)
	Update(ctx context.Context, req UpdateStoreRequest) (StoreResponse, error)
	// ToggleActive flips is_active and returns the new state.
	ToggleActive(ctx context.Context, id string) (StoreResponse, error)
}
