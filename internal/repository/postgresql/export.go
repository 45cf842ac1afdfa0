package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/export"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

type exportRepository struct {
	db *database.DB
}

func NewExportRepository(db *database.DB) export.ExportRepository {
	return &exportRepository{db: db}
}

// ListRecords implements export.ExportRepository.
func (r *exportRepository) ListRecords(ctx context.Context, from, to time.Time, storeID *string) ([]export.Record, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.work_date >= $1 AND a.work_date <= $2"
	args := []interface{}{from, to}
	if storeID != nil {
		baseWhere += " AND a.store_id = $3"
		args = append(args, *storeID)
	}

	query := fmt.Sprintf(`
		SELECT %s, s.name, st.name, s.name_kana, s.employment_type, s.hourly_rate
		FROM daily_attendance a
		JOIN staff s ON s.id = a.staff_id
		JOIN stores st ON st.id = a.store_id
		WHERE %s
		ORDER BY a.work_date ASC, s.name ASC, a.staff_id ASC
	`, dailyAttendanceColumns, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query export records: %w", err)
	}
	defer rows.Close()

	records := make([]export.Record, 0)
	for rows.Next() {
		var rec export.Record
		d := &rec.DailyAttendance
		err := rows.Scan(
			&d.ID, &d.StaffID, &d.StoreID, &d.WorkDate, &d.ClockIn, &d.ClockOut,
			&d.BreakMinutes, &d.WorkingMinutes, &d.OvertimeMinutes, &d.Status, &d.Note,
			&d.CreatedAt, &d.UpdatedAt,
			&d.StaffName, &d.StoreName,
			&rec.StaffNameKana, &rec.EmploymentType, &rec.HourlyRate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
