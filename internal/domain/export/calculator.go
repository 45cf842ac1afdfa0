package export

import (
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// ToDecimalHours renders minutes as hours with two decimals, e.g. 90 -> "1.50".
func ToDecimalHours(minutes int) string {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).StringFixed(2)
}

// EstimatedPay is totalMinutes/60 * rate rounded half up to whole yen.
// A missing or zero rate yields nil.
func EstimatedPay(totalMinutes int, hourlyRate *decimal.Decimal) *int64 {
	if hourlyRate == nil || hourlyRate.IsZero() {
		return nil
	}
	pay := decimal.NewFromInt(int64(totalMinutes)).Mul(*hourlyRate).Div(sixty).Round(0).IntPart()
	return &pay
}

// FormatClock prints t as HH:MM in loc, or "" when t is nil.
func FormatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}
