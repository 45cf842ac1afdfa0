package attendance

// Outcome names what applying a punch did to the daily summary.
type Outcome string

const (
	OutcomeCreated           Outcome = "created"
	OutcomeDuplicateClockIn  Outcome = "duplicate_clock_in"
	OutcomeClockedOut        Outcome = "clocked_out"
	OutcomeBreakStarted      Outcome = "break_started"
	OutcomeBreakAccumulated  Outcome = "break_accumulated"
	OutcomeUnmatchedBreakEnd Outcome = "unmatched_break_end"
)

// Writes reports whether the outcome carries a summary that must be persisted.
func (o Outcome) Writes() bool {
	switch o {
	case OutcomeCreated, OutcomeClockedOut, OutcomeBreakAccumulated:
		return true
	}
	return false
}

// ReduceResult is the pure result of applying one punch.
type ReduceResult struct {
	Outcome    Outcome
	Daily      *DailyAttendance
	BreakDelta int
}
