package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

const storeColumns = `id, name, address, phone, is_active, created_at, updated_at`

type storeRepository struct {
	db *database.DB
}

func NewStoreRepository(db *database.DB) store.StoreRepository {
	return &storeRepository{db: db}
}

func scanStore(row pgx.Row) (store.Store, error) {
	var s store.Store
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, err
	}
	return s, nil
}

// Create implements store.StoreRepository.
func (r *storeRepository) Create(ctx context.Context, s store.Store) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO stores (name, address, phone, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + storeColumns

	return scanStore(q.QueryRow(ctx, query, s.Name, s.Address, s.Phone, s.IsActive))
}

// GetByID implements store.StoreRepository.
func (r *storeRepository) GetByID(ctx context.Context, id string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(q.QueryRow(ctx, query, id))
}

// List implements store.StoreRepository.
func (r *storeRepository) List(ctx context.Context, filter store.StoreFilter) ([]store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + storeColumns + ` FROM stores`
	if filter.ActiveOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	stores := make([]store.Store, 0)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// Update implements store.StoreRepository.
func (r *storeRepository) Update(ctx context.Context, req store.UpdateStoreRequest) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE stores
		SET name = COALESCE($2, name),
			address = COALESCE($3, address),
			phone = COALESCE($4, phone),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + storeColumns

	return scanStore(q.QueryRow(ctx, query, req.ID, req.Name, req.Address, req.Phone))
}

// SetActive implements store.StoreRepository.
func (r *storeRepository) SetActive(ctx context.Context, id string, active bool) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE stores
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + storeColumns

	return scanStore(q.QueryRow(ctx, query, id, active))
}
