package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
)

type storeServiceImpl struct {
	storeRepo store.StoreRepository
}

func NewStoreService(storeRepo store.StoreRepository) store.StoreService {
	return &storeServiceImpl{storeRepo: storeRepo}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *storeServiceImpl) Create(ctx context.Context, req store.CreateStoreRequest) (store.StoreResponse, error) {
	if err := req.Validate(); err != nil {
		return store.StoreResponse{}, err
	}

	created, err := s.storeRepo.Create(ctx, store.Store{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return store.StoreResponse{}, store.ErrStoreNameExists
		}
		return store.StoreResponse{}, fmt.Errorf("failed to create store: %w", err)
	}

	return store.NewStoreResponse(created), nil
}

func (s *storeServiceImpl) Get(ctx context.Context, id string) (store.StoreResponse, error) {
	found, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return store.StoreResponse{}, store.ErrStoreNotFound
		}
		return store.StoreResponse{}, fmt.Errorf("failed to get store: %w", err)
	}
	return store.NewStoreResponse(found), nil
}

func (s *storeServiceImpl) List(ctx context.Context, filter store.StoreFilter) ([]store.StoreResponse, error) {
	stores, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	responses := make([]store.StoreResponse, 0, len(stores))
	for _, st := range stores {
		responses = append(responses, store.NewStoreResponse(st))
	}
	return responses, nil
}

func (s *storeServiceImpl) Update(ctx context.Context, req store.UpdateStoreRequest) (store.StoreResponse, error) {
	if err := req.Validate(); err != nil {
		return store.StoreResponse{}, err
	}

	updated, err := s.storeRepo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return store.StoreResponse{}, store.ErrStoreNotFound
		}
		if isUniqueViolation(err) {
			return store.StoreResponse{}, store.ErrStoreNameExists
		}
		return store.StoreResponse{}, fmt.Errorf("failed to update store: %w", err)
	}
	return store.NewStoreResponse(updated), nil
}

func (s *storeServiceImpl) ToggleActive(ctx context.Context, id string) (store.StoreResponse, error) {
	current, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return store.StoreResponse{}, store.ErrStoreNotFound
		}
		return store.StoreResponse{}, fmt.Errorf("failed to get store: %w", err)
	}

	updated, err := s.storeRepo.SetActive(ctx, id, !current.IsActive)
	if err != nil {
		return store.StoreResponse{}, fmt.Errorf("failed to toggle store: %w", err)
	}
	return store.NewStoreResponse(updated), nil
}
