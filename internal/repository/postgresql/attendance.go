package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

const dailyAttendanceColumns = `a.id, a.staff_id, a.store_id, a.work_date, a.clock_in, a.clock_out,
	a.break_minutes, a.working_minutes, a.overtime_minutes, a.status, a.note,
	a.created_at, a.updated_at`

type dailyAttendanceRepository struct {
	db *database.DB
}

func NewDailyAttendanceRepository(db *database.DB) attendance.DailyAttendanceRepository {
	return &dailyAttendanceRepository{db: db}
}

func scanDailyAttendance(row pgx.Row, withNames bool) (attendance.DailyAttendance, error) {
	var d attendance.DailyAttendance
	dest := []any{
		&d.ID, &d.StaffID, &d.StoreID, &d.WorkDate, &d.ClockIn, &d.ClockOut,
		&d.BreakMinutes, &d.WorkingMinutes, &d.OvertimeMinutes, &d.Status, &d.Note,
		&d.CreatedAt, &d.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &d.StaffName, &d.StoreName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.DailyAttendance{}, err
	}
	return d, nil
}

// LockDay implements attendance.DailyAttendanceRepository.
// It must run inside a transaction; the advisory lock is released on commit or rollback.
func (r *dailyAttendanceRepository) LockDay(ctx context.Context, staffID string, workDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`,
		staffID, workDate.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to lock attendance day: %w", err)
	}
	return nil
}

// GetByStaffAndDate implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) GetByStaffAndDate(ctx context.Context, staffID string, workDate time.Time) (*attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyAttendanceColumns + `
		FROM daily_attendance a
		WHERE a.staff_id = $1 AND a.work_date = $2
		FOR UPDATE`

	d, err := scanDailyAttendance(q.QueryRow(ctx, query, staffID, workDate), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily attendance: %w", err)
	}
	return &d, nil
}

// Create implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) Create(ctx context.Context, d attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO daily_attendance AS a (
			staff_id, store_id, work_date, clock_in, clock_out,
			break_minutes, working_minutes, overtime_minutes, status, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + dailyAttendanceColumns

	created, err := scanDailyAttendance(q.QueryRow(ctx, query,
		d.StaffID, d.StoreID, d.WorkDate, d.ClockIn, d.ClockOut,
		d.BreakMinutes, d.WorkingMinutes, d.OvertimeMinutes, d.Status, d.Note,
	), false)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("failed to create daily attendance: %w", err)
	}
	return created, nil
}

// Update implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) Update(ctx context.Context, d attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_attendance AS a
		SET clock_in = $2,
			clock_out = $3,
			break_minutes = $4,
			working_minutes = $5,
			overtime_minutes = $6,
			status = $7,
			note = $8,
			updated_at = NOW()
		WHERE a.id = $1
		RETURNING ` + dailyAttendanceColumns

	updated, err := scanDailyAttendance(q.QueryRow(ctx, query,
		d.ID, d.ClockIn, d.ClockOut, d.BreakMinutes, d.WorkingMinutes, d.OvertimeMinutes, d.Status, d.Note,
	), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.DailyAttendance{}, fmt.Errorf("failed to update daily attendance: %w", err)
	}
	return updated, nil
}

// GetByID implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) GetByID(ctx context.Context, id string) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyAttendanceColumns + `, s.name, st.name
		FROM daily_attendance a
		LEFT JOIN staff s ON s.id = a.staff_id
		LEFT JOIN stores st ON st.id = a.store_id
		WHERE a.id = $1`

	d, err := scanDailyAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.DailyAttendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}
	return d, nil
}

// List implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.DailyAttendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	var args []interface{}
	argIdx := 1

	if filter.StoreID != nil && *filter.StoreID != "" {
		baseWhere += fmt.Sprintf(" AND a.store_id = $%d", argIdx)
		args = append(args, *filter.StoreID)
		argIdx++
	}
	if filter.StaffID != nil && *filter.StaffID != "" {
		baseWhere += fmt.Sprintf(" AND a.staff_id = $%d", argIdx)
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d::date", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM daily_attendance a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	orderByField := "a.work_date"
	switch filter.SortBy {
	case "staff_name":
		orderByField = "s.name"
	case "clock_in":
		orderByField = "a.clock_in"
	case "clock_out":
		orderByField = "a.clock_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, s.name, st.name
		FROM daily_attendance a
		LEFT JOIN staff s ON s.id = a.staff_id
		LEFT JOIN stores st ON st.id = a.store_id
		WHERE %s
		ORDER BY %s %s, s.display_order ASC, a.id ASC
		LIMIT $%d OFFSET $%d
	`, dailyAttendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.DailyAttendance, 0)
	for rows.Next() {
		d, err := scanDailyAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, d)
	}
	return records, total, rows.Err()
}

// MarkUnclosedPending implements attendance.DailyAttendanceRepository.
func (r *dailyAttendanceRepository) MarkUnclosedPending(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE daily_attendance
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		  AND clock_in IS NOT NULL
		  AND clock_out IS NULL
		  AND work_date < $3`

	tag, err := q.Exec(ctx, query, attendance.StatusPending, attendance.StatusPresent, before)
	if err != nil {
		return 0, fmt.Errorf("failed to mark unclosed attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}
