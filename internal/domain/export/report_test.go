package export

import (
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*3600)

func TestToDecimalHours(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0.00"},
		{90, "1.50"},
		{480, "8.00"},
		{1, "0.02"},
		{59, "0.98"},
		{100, "1.67"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToDecimalHours(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestEstimatedPay(t *testing.T) {
	rate := decimal.NewFromInt(1200)
	pay := EstimatedPay(480, &rate)
	require.NotNil(t, pay)
	assert.Equal(t, int64(9600), *pay)

	odd := decimal.NewFromInt(1001)
	pay = EstimatedPay(90, &odd)
	require.NotNil(t, pay)
	assert.Equal(t, int64(1502), *pay, "1501.5 rounds half up")

	pay = EstimatedPay(0, &rate)
	require.NotNil(t, pay)
	assert.Zero(t, *pay)

	assert.Nil(t, EstimatedPay(480, nil))
	assert.Nil(t, EstimatedPay(480, &decimal.Zero))
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2024, 4, 1, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "09:05", FormatClock(&ts, jst))
	assert.Equal(t, "", FormatClock(nil, jst))
}

func strPtr(s string) *string { return &s }

func record(staffID, name string, day int, in, out string, breakMin int, status attendance.Status) Record {
	r := Record{
		DailyAttendance: attendance.DailyAttendance{
			StaffID:      staffID,
			StoreID:      "store-1",
			WorkDate:     time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC),
			BreakMinutes: breakMin,
			Status:       status,
			StaffName:    strPtr(name),
			StoreName:    strPtr("渋谷店"),
		},
		EmploymentType: staff.EmploymentTypePartTime,
	}
	if in != "" {
		ci, _ := time.ParseInLocation("2006-01-02 15:04", r.WorkDate.Format("2006-01-02")+" "+in, jst)
		r.ClockIn = &ci
	}
	if out != "" {
		co, _ := time.ParseInLocation("2006-01-02 15:04", r.WorkDate.Format("2006-01-02")+" "+out, jst)
		r.ClockOut = &co
	}
	r.Recompute()
	return r
}

func TestBuild(t *testing.T) {
	rate := decimal.NewFromInt(1200)

	a1 := record("a", "青木", 1, "09:00", "18:00", 60, attendance.StatusPresent)
	a1.HourlyRate = &rate
	a1.OvertimeMinutes = 14
	b1 := record("b", "伊藤", 1, "10:00", "15:07", 0, attendance.StatusPresent)
	a2 := record("a", "青木", 2, "", "", 0, attendance.StatusPaidLeave)
	a2.HourlyRate = &rate
	a2.Note = strPtr("有給申請済み")
	a3 := record("a", "青木", 3, "09:00", "", 0, attendance.StatusPending)
	a3.HourlyRate = &rate

	report := Build([]Record{a1, b1, a2, a3}, jst, map[string]policy.RoundingUnit{"store-1": policy.RoundingUnitFifteen})

	t.Run("flat rows", func(t *testing.T) {
		require.Len(t, report.Rows, 4)
		row := report.Rows[0]
		assert.Equal(t, "2024-04-01", row.Date)
		assert.Equal(t, "青木", row.StaffName)
		assert.Equal(t, "パート", row.EmploymentType)
		assert.Equal(t, "09:00", row.ClockIn)
		assert.Equal(t, "18:00", row.ClockOut)
		assert.Equal(t, 480, row.WorkingMinutes)
		assert.Equal(t, 480, row.RoundedWorkingMinutes)
		assert.Equal(t, "8.00", row.WorkingHours)
		assert.Equal(t, 14, row.OvertimeMinutes)
		assert.Equal(t, 0, row.RoundedOvertimeMinutes)
		assert.Equal(t, "出勤", row.Status)

		assert.Equal(t, 307, report.Rows[1].WorkingMinutes)
		assert.Equal(t, 300, report.Rows[1].RoundedWorkingMinutes)
		assert.Equal(t, "有給", report.Rows[2].Status)
		assert.Equal(t, "有給申請済み", report.Rows[2].Note)
		assert.Equal(t, "", report.Rows[3].ClockOut)
		assert.Len(t, row.Values(), len(FlatHeaders))
	})

	t.Run("summary", func(t *testing.T) {
		require.Len(t, report.Summary, 2)
		a := report.Summary[0]
		assert.Equal(t, "青木", a.StaffName)
		assert.Equal(t, 1, a.WorkedDays, "only present days count")
		assert.Equal(t, 480, a.TotalWorkingMinutes)
		assert.Equal(t, "8.00", a.TotalWorkingHours)
		assert.Equal(t, 60, a.TotalBreakMinutes)
		require.NotNil(t, a.EstimatedPay)
		assert.Equal(t, int64(9600), *a.EstimatedPay)

		b := report.Summary[1]
		assert.Equal(t, "伊藤", b.StaffName)
		assert.Nil(t, b.EstimatedPay)
		assert.Equal(t, "", b.Values()[9])
		assert.Len(t, b.Values(), len(SummaryHeaders))
	})

	t.Run("details", func(t *testing.T) {
		require.Len(t, report.Details, 2)
		a := report.Details[0]
		require.Len(t, a.Rows, 3)
		assert.Equal(t, "04/01 (月)", a.Rows[0].Date)
		assert.Equal(t, "月", a.Rows[0].Weekday)
		assert.Equal(t, "04/02 (火)", a.Rows[1].Date)

		assert.Equal(t, "合計", a.Total.Date)
		assert.Equal(t, 480, a.Total.WorkingMinutes)
		assert.Equal(t, 14, a.Total.OvertimeMinutes)
		assert.Equal(t, "出勤1日", a.Total.Status)
		assert.Len(t, a.Total.Values(), len(DetailHeaders))
	})
}

func TestBuildWithoutRoundingUnit(t *testing.T) {
	r := record("a", "青木", 1, "09:00", "15:07", 0, attendance.StatusPresent)
	report := Build([]Record{r}, nil, nil)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 367, report.Rows[0].RoundedWorkingMinutes)
}

func TestBuildEmpty(t *testing.T) {
	report := Build(nil, jst, nil)
	assert.Empty(t, report.Rows)
	assert.Empty(t, report.Summary)
	assert.Empty(t, report.Details)
}

func TestExportRequest(t *testing.T) {
	req := ExportRequest{Year: 2024, Month: 2}
	require.NoError(t, req.Validate())
	from, to := req.Period()
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)

	bad := ExportRequest{Year: 2024, Month: 0, StoreID: strPtr("nope")}
	assert.Error(t, bad.Validate())

	report := Report{Year: 2024, Month: 4, StoreName: "全店舗"}
	assert.Equal(t, "勤怠データ_全店舗_2024年4月.csv", report.FileName("csv"))
}
