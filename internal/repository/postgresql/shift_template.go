package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

const shiftTemplateColumns = `id, store_id, code, name, short_label, color,
	start_time::text, end_time::text, break_minutes, working_hours,
	is_paid_leave, is_absent, display_order, is_active, created_at, updated_at`

type shiftTemplateRepository struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) shift.ShiftTemplateRepository {
	return &shiftTemplateRepository{db: db}
}

func scanShiftTemplate(row pgx.Row) (shift.ShiftTemplate, error) {
	var t shift.ShiftTemplate
	err := row.Scan(
		&t.ID, &t.StoreID, &t.Code, &t.Name, &t.ShortLabel, &t.Color,
		&t.StartTime, &t.EndTime, &t.BreakMinutes, &t.WorkingHours,
		&t.IsPaidLeave, &t.IsAbsent, &t.DisplayOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftTemplate{}, shift.ErrTemplateNotFound
		}
		return shift.ShiftTemplate{}, err
	}
	return t, nil
}

// Create implements shift.ShiftTemplateRepository.
func (r *shiftTemplateRepository) Create(ctx context.Context, t shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (
			store_id, code, name, short_label, color, start_time, end_time,
			break_minutes, working_hours, is_paid_leave, is_absent, display_order, is_active
		) VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8, $9, $10, $11, $12, $13)
		RETURNING ` + shiftTemplateColumns

	return scanShiftTemplate(q.QueryRow(ctx, query,
		t.StoreID, t.Code, t.Name, t.ShortLabel, t.Color, t.StartTime, t.EndTime,
		t.BreakMinutes, t.WorkingHours, t.IsPaidLeave, t.IsAbsent, t.DisplayOrder, t.IsActive,
	))
}

// GetByID implements shift.ShiftTemplateRepository.
func (r *shiftTemplateRepository) GetByID(ctx context.Context, id string) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE id = $1`
	return scanShiftTemplate(q.QueryRow(ctx, query, id))
}

// ListByStore implements shift.ShiftTemplateRepository.
func (r *shiftTemplateRepository) ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE store_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, code ASC`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	templates := make([]shift.ShiftTemplate, 0)
	for rows.Next() {
		t, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Update implements shift.ShiftTemplateRepository.
func (r *shiftTemplateRepository) Update(ctx context.Context, t shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET code = $2,
			name = $3,
			short_label = $4,
			color = $5,
			start_time = $6::time,
			end_time = $7::time,
			break_minutes = $8,
			working_hours = $9,
			is_paid_leave = $10,
			is_absent = $11,
			display_order = $12,
			is_active = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftTemplateColumns

	return scanShiftTemplate(q.QueryRow(ctx, query,
		t.ID, t.Code, t.Name, t.ShortLabel, t.Color, t.StartTime, t.EndTime,
		t.BreakMinutes, t.WorkingHours, t.IsPaidLeave, t.IsAbsent, t.DisplayOrder, t.IsActive,
	))
}

// SetActive implements shift.ShiftTemplateRepository.
func (r *shiftTemplateRepository) SetActive(ctx context.Context, id string, active bool) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + shiftTemplateColumns

	return scanShiftTemplate(q.QueryRow(ctx, query, id, active))
}
