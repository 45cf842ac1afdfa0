package policy

import "time"

type BreakDeductionType string

const (
	BreakDeductionManual BreakDeductionType = "manual"
	// BreakDeductionAuto is stored and returned but punch processing ignores it.
	BreakDeductionAuto BreakDeductionType = "auto"
)

func (t BreakDeductionType) IsValid() bool {
	return t == BreakDeductionManual || t == BreakDeductionAuto
}

type ClosingDayType string

const (
	ClosingEndOfMonth ClosingDayType = "end_of_month"
	ClosingCustom     ClosingDayType = "custom"
)

func (t ClosingDayType) IsValid() bool {
	return t == ClosingEndOfMonth || t == ClosingCustom
}

type Policy struct {
	ID                        string
	StoreID                   string
	Name                      string
	ClosingDayType            ClosingDayType
	ClosingDayCustom          *int
	RoundingUnit              RoundingUnit
	BreakDeductionType        BreakDeductionType
	AutoBreakThresholdMinutes *int
	AutoBreakDeductionMinutes *int
	EnablePaidLeave           bool
	EnableCorrectionApproval  bool
	StandardWorkStartTime     *string
	StandardWorkEndTime       *string
	AllowEarlyClockIn         bool
	CountEarlyMinutes         bool
	ShiftStartDay             int
	EffectiveFrom             time.Time
	IsActive                  bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Default is used for stores that have no active policy yet.
func Default(storeID string) Policy {
	return Policy{
		StoreID:            storeID,
		Name:               "default",
		ClosingDayType:     ClosingEndOfMonth,
		RoundingUnit:       RoundingUnitOne,
		BreakDeductionType: BreakDeductionManual,
		ShiftStartDay:      1,
		IsActive:           true,
	}
}
