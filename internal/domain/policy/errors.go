package policy

import "errors"

var (
	ErrPolicyNotFound      = errors.New("policy not found")
	ErrInvalidRoundingUnit = errors.New("rounding unit must be 1, 5 or 15 minutes")
	ErrInvalidShiftStart   = errors.New("shift start day must be between 1 and 28")
)
