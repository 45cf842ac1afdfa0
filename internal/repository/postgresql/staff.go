package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

const staffColumns = `id, store_id, name, name_kana, employment_type, hourly_rate,
	status, retired_at, display_order, created_at, updated_at`

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

func scanStaff(row pgx.Row) (staff.Staff, error) {
	var s staff.Staff
	err := row.Scan(
		&s.ID, &s.StoreID, &s.Name, &s.NameKana, &s.EmploymentType, &s.HourlyRate,
		&s.Status, &s.RetiredAt, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}
	return s, nil
}

// Create implements staff.StaffRepository.
func (r *staffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff (store_id, name, name_kana, employment_type, hourly_rate, status, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + staffColumns

	return scanStaff(q.QueryRow(ctx, query,
		s.StoreID, s.Name, s.NameKana, s.EmploymentType, s.HourlyRate, s.Status, s.DisplayOrder,
	))
}

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`
	return scanStaff(q.QueryRow(ctx, query, id))
}

// List implements staff.StaffRepository.
func (r *staffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.StoreID != nil {
		conditions = append(conditions, fmt.Sprintf("store_id = $%d", argIdx))
		args = append(args, *filter.StoreID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmploymentType != nil {
		conditions = append(conditions, fmt.Sprintf("employment_type = $%d", argIdx))
		args = append(args, *filter.EmploymentType)
		argIdx++
	}

	query := `SELECT ` + staffColumns + ` FROM staff`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY display_order ASC, name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	members := make([]staff.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, s)
	}
	return members, rows.Err()
}

// Update implements staff.StaffRepository.
func (r *staffRepository) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET store_id = COALESCE($2, store_id),
			name = COALESCE($3, name),
			name_kana = COALESCE($4, name_kana),
			employment_type = COALESCE($5, employment_type),
			hourly_rate = COALESCE($6, hourly_rate),
			display_order = COALESCE($7, display_order),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + staffColumns

	return scanStaff(q.QueryRow(ctx, query,
		req.ID, req.StoreID, req.Name, req.NameKana, req.EmploymentType, req.HourlyRate, req.DisplayOrder,
	))
}

// UpdateStatus implements staff.StaffRepository.
func (r *staffRepository) UpdateStatus(ctx context.Context, req staff.ChangeStatusRequest) (staff.Staff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff
		SET status = $2, retired_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + staffColumns

	return scanStaff(q.QueryRow(ctx, query, req.ID, req.Status, req.RetiredAt))
}

// Delete implements staff.StaffRepository.
func (r *staffRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}
