package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

const shiftColumns = `s.id, s.staff_id, s.store_id, s.work_date, s.shift_template_id,
	s.custom_start_time::text, s.custom_end_time::text, s.custom_break_minutes, s.note,
	s.created_at, s.updated_at`

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.StaffID, &s.StoreID, &s.WorkDate, &s.ShiftTemplateID,
		&s.CustomStartTime, &s.CustomEndTime, &s.CustomBreakMinutes, &s.Note,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ListByStoreBetween implements shift.ShiftRepository.
func (r *shiftRepository) ListByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `,
			t.id, t.store_id, t.code, t.name, t.short_label, t.color,
			t.start_time::text, t.end_time::text, t.break_minutes, t.working_hours,
			t.is_paid_leave, t.is_absent, t.display_order, t.is_active, t.created_at, t.updated_at
		FROM shifts s
		LEFT JOIN shift_templates t ON t.id = s.shift_template_id
		WHERE s.store_id = $1 AND s.work_date >= $2 AND s.work_date <= $3
		ORDER BY s.work_date ASC, s.staff_id ASC`

	rows, err := q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		var s shift.Shift
		var t struct {
			ID, StoreID, Code, Name, ShortLabel, Color *string
			StartTime, EndTime                         *string
			BreakMinutes                               *int
			WorkingHours                               decimal.NullDecimal
			IsPaidLeave, IsAbsent                      *bool
			DisplayOrder                               *int
			IsActive                                   *bool
			CreatedAt, UpdatedAt                       *time.Time
		}
		err := rows.Scan(
			&s.ID, &s.StaffID, &s.StoreID, &s.WorkDate, &s.ShiftTemplateID,
			&s.CustomStartTime, &s.CustomEndTime, &s.CustomBreakMinutes, &s.Note,
			&s.CreatedAt, &s.UpdatedAt,
			&t.ID, &t.StoreID, &t.Code, &t.Name, &t.ShortLabel, &t.Color,
			&t.StartTime, &t.EndTime, &t.BreakMinutes, &t.WorkingHours,
			&t.IsPaidLeave, &t.IsAbsent, &t.DisplayOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		if t.ID != nil {
			s.Template = &shift.ShiftTemplate{
				ID:           *t.ID,
				StoreID:      *t.StoreID,
				Code:         *t.Code,
				Name:         *t.Name,
				ShortLabel:   *t.ShortLabel,
				Color:        *t.Color,
				StartTime:    t.StartTime,
				EndTime:      t.EndTime,
				BreakMinutes: *t.BreakMinutes,
				WorkingHours: t.WorkingHours.Decimal,
				IsPaidLeave:  *t.IsPaidLeave,
				IsAbsent:     *t.IsAbsent,
				DisplayOrder: *t.DisplayOrder,
				IsActive:     *t.IsActive,
				CreatedAt:    *t.CreatedAt,
				UpdatedAt:    *t.UpdatedAt,
			}
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Upsert implements shift.ShiftRepository.
func (r *shiftRepository) Upsert(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts AS s (
			staff_id, store_id, work_date, shift_template_id,
			custom_start_time, custom_end_time, custom_break_minutes, note
		) VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8)
		ON CONFLICT (staff_id, work_date) DO UPDATE
		SET store_id = EXCLUDED.store_id,
			shift_template_id = EXCLUDED.shift_template_id,
			custom_start_time = EXCLUDED.custom_start_time,
			custom_end_time = EXCLUDED.custom_end_time,
			custom_break_minutes = EXCLUDED.custom_break_minutes,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING ` + shiftColumns

	saved, err := scanShift(q.QueryRow(ctx, query,
		s.StaffID, s.StoreID, s.WorkDate, s.ShiftTemplateID,
		s.CustomStartTime, s.CustomEndTime, s.CustomBreakMinutes, s.Note,
	))
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to upsert shift: %w", err)
	}
	saved.Template = s.Template
	return saved, nil
}

// DeleteByStaffAndDate implements shift.ShiftRepository.
func (r *shiftRepository) DeleteByStaffAndDate(ctx context.Context, staffID string, workDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shifts WHERE staff_id = $1 AND work_date = $2`, staffID, workDate); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}
