package policy

// RoundingUnit is the minute granularity that reported working time is truncated to.
type RoundingUnit int

const (
	RoundingUnitOne     RoundingUnit = 1
	RoundingUnitFive    RoundingUnit = 5
	RoundingUnitFifteen RoundingUnit = 15
)

func (u RoundingUnit) Validate() error {
	switch u {
	case RoundingUnitOne, RoundingUnitFive, RoundingUnitFifteen:
		return nil
	}
	return ErrInvalidRoundingUnit
}

// Round truncates minutes down to a multiple of u. It never rounds up.
func (u RoundingUnit) Round(minutes int) (int, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	if u == RoundingUnitOne {
		return minutes, nil
	}
	unit := int(u)
	q := minutes / unit
	// floor for negatives; Go division truncates toward zero
	if minutes%unit != 0 && minutes < 0 {
		q--
	}
	return q * unit, nil
}
