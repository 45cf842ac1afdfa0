package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
)

// Time of day columns are read back as text so they map onto *string.
const policyColumns = `id, store_id, name, closing_day_type, closing_day_custom, rounding_unit,
	break_deduction_type, auto_break_threshold_minutes, auto_break_deduction_minutes,
	enable_paid_leave, enable_correction_approval,
	standard_work_start_time::text, standard_work_end_time::text,
	allow_early_clock_in, count_early_minutes, shift_start_day, effective_from,
	is_active, created_at, updated_at`

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

func scanPolicy(row pgx.Row) (policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(
		&p.ID, &p.StoreID, &p.Name, &p.ClosingDayType, &p.ClosingDayCustom, &p.RoundingUnit,
		&p.BreakDeductionType, &p.AutoBreakThresholdMinutes, &p.AutoBreakDeductionMinutes,
		&p.EnablePaidLeave, &p.EnableCorrectionApproval,
		&p.StandardWorkStartTime, &p.StandardWorkEndTime,
		&p.AllowEarlyClockIn, &p.CountEarlyMinutes, &p.ShiftStartDay, &p.EffectiveFrom,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, policy.ErrPolicyNotFound
		}
		return policy.Policy{}, err
	}
	return p, nil
}

// Create implements policy.PolicyRepository.
func (r *policyRepository) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_policies (
			store_id, name, closing_day_type, closing_day_custom, rounding_unit,
			break_deduction_type, auto_break_threshold_minutes, auto_break_deduction_minutes,
			enable_paid_leave, enable_correction_approval,
			standard_work_start_time, standard_work_end_time,
			allow_early_clock_in, count_early_minutes, shift_start_day, effective_from, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::time, $12::time, $13, $14, $15, $16, $17
		) RETURNING ` + policyColumns

	return scanPolicy(q.QueryRow(ctx, query,
		p.StoreID, p.Name, p.ClosingDayType, p.ClosingDayCustom, p.RoundingUnit,
		p.BreakDeductionType, p.AutoBreakThresholdMinutes, p.AutoBreakDeductionMinutes,
		p.EnablePaidLeave, p.EnableCorrectionApproval,
		p.StandardWorkStartTime, p.StandardWorkEndTime,
		p.AllowEarlyClockIn, p.CountEarlyMinutes, p.ShiftStartDay, p.EffectiveFrom, p.IsActive,
	))
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepository) GetByID(ctx context.Context, id string) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM attendance_policies WHERE id = $1`
	return scanPolicy(q.QueryRow(ctx, query, id))
}

// ListByStore implements policy.PolicyRepository.
func (r *policyRepository) ListByStore(ctx context.Context, storeID string) ([]policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE store_id = $1
		ORDER BY effective_from DESC, created_at DESC`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query policies: %w", err)
	}
	defer rows.Close()

	policies := make([]policy.Policy, 0)
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// Update implements policy.PolicyRepository.
func (r *policyRepository) Update(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_policies
		SET name = $2,
			closing_day_type = $3,
			closing_day_custom = $4,
			rounding_unit = $5,
			break_deduction_type = $6,
			auto_break_threshold_minutes = $7,
			auto_break_deduction_minutes = $8,
			enable_paid_leave = $9,
			enable_correction_approval = $10,
			standard_work_start_time = $11::time,
			standard_work_end_time = $12::time,
			allow_early_clock_in = $13,
			count_early_minutes = $14,
			shift_start_day = $15,
			effective_from = $16,
			is_active = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + policyColumns

	return scanPolicy(q.QueryRow(ctx, query,
		p.ID, p.Name, p.ClosingDayType, p.ClosingDayCustom, p.RoundingUnit,
		p.BreakDeductionType, p.AutoBreakThresholdMinutes, p.AutoBreakDeductionMinutes,
		p.EnablePaidLeave, p.EnableCorrectionApproval,
		p.StandardWorkStartTime, p.StandardWorkEndTime,
		p.AllowEarlyClockIn, p.CountEarlyMinutes, p.ShiftStartDay, p.EffectiveFrom, p.IsActive,
	))
}

// GetEffective implements policy.PolicyRepository.
func (r *policyRepository) GetEffective(ctx context.Context, storeID string, asOf time.Time) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE store_id = $1
		  AND is_active = TRUE
		  AND effective_from <= $2::date
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1`

	return scanPolicy(q.QueryRow(ctx, query, storeID, asOf.Format("2006-01-02")))
}
