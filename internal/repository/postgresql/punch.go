package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

const punchColumns = `id, staff_id, store_id, punch_type, punched_at,
	is_modified, modified_by, modified_reason, created_at`

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepository{db: db}
}

func scanPunch(row pgx.Row) (attendance.PunchEvent, error) {
	var p attendance.PunchEvent
	err := row.Scan(
		&p.ID, &p.StaffID, &p.StoreID, &p.PunchType, &p.PunchedAt,
		&p.IsModified, &p.ModifiedBy, &p.ModifiedReason, &p.CreatedAt,
	)
	return p, err
}

// Create implements attendance.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, p attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_records (staff_id, store_id, punch_type, punched_at, is_modified, modified_by, modified_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + punchColumns

	created, err := scanPunch(q.QueryRow(ctx, query,
		p.StaffID, p.StoreID, p.PunchType, p.PunchedAt, p.IsModified, p.ModifiedBy, p.ModifiedReason,
	))
	if err != nil {
		return attendance.PunchEvent{}, fmt.Errorf("failed to create punch: %w", err)
	}
	return created, nil
}

// ListByStaffBetween implements attendance.PunchRepository.
func (r *punchRepository) ListByStaffBetween(ctx context.Context, staffID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM time_records
		WHERE staff_id = $1 AND punched_at >= $2 AND punched_at < $3
		ORDER BY punched_at ASC, created_at ASC`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	punches := make([]attendance.PunchEvent, 0)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// LatestByStoreBetween implements attendance.PunchRepository.
func (r *punchRepository) LatestByStoreBetween(ctx context.Context, storeID string, from, to time.Time) (map[string]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (staff_id) ` + punchColumns + `
		FROM time_records
		WHERE store_id = $1 AND punched_at >= $2 AND punched_at < $3
		ORDER BY staff_id, punched_at DESC, created_at DESC`

	rows, err := q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest punches: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]attendance.PunchEvent)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		latest[p.StaffID] = p
	}
	return latest, rows.Err()
}
