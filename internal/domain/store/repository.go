package store

import "context"

type StoreRepository interface {
	Create(ctx context.Context, store Store) (Store, error)
	GetByID(ctx context.Context, id string) (Store, error)
	List(ctx context.Context, filter StoreFilter) ([]Store, error)
	Update(ctx context.Context, req UpdateStoreRequest) (Store, error)
	SetActive(ctx context.Context, id string, active bool) (Store, error)
}
