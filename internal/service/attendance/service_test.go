package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/sse"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStoreID = "11111111-1111-4111-8111-111111111111"
	testStaffID = "22222222-2222-4222-8222-222222222222"
)

type fakeTransactor struct{ calls int }

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeDailyRepo struct {
	rows    map[string]attendance.DailyAttendance
	locks   int
	pending int64
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{rows: map[string]attendance.DailyAttendance{}}
}

func (f *fakeDailyRepo) LockDay(ctx context.Context, staffID string, workDate time.Time) error {
	f.locks++
	return nil
}

func (f *fakeDailyRepo) GetByStaffAndDate(ctx context.Context, staffID string, workDate time.Time) (*attendance.DailyAttendance, error) {
	for _, r := range f.rows {
		if r.StaffID == staffID && r.WorkDate.Equal(workDate) {
			row := r
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeDailyRepo) Create(ctx context.Context, d attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	d.ID = uuid.NewString()
	f.rows[d.ID] = d
	return d, nil
}

func (f *fakeDailyRepo) Update(ctx context.Context, d attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	if _, ok := f.rows[d.ID]; !ok {
		return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
	}
	f.rows[d.ID] = d
	return d, nil
}

func (f *fakeDailyRepo) GetByID(ctx context.Context, id string) (attendance.DailyAttendance, error) {
	r, ok := f.rows[id]
	if !ok {
		return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeDailyRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.DailyAttendance, int64, error) {
	out := make([]attendance.DailyAttendance, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDailyRepo) MarkUnclosedPending(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for id, r := range f.rows {
		if r.WorkDate.Before(before) && r.ClockIn != nil && r.ClockOut == nil && r.Status == attendance.StatusPresent {
			r.Status = attendance.StatusPending
			f.rows[id] = r
			n++
		}
	}
	return n, nil
}

type fakePunchRepo struct {
	punches []attendance.PunchEvent
}

func (f *fakePunchRepo) Create(ctx context.Context, p attendance.PunchEvent) (attendance.PunchEvent, error) {
	p.ID = uuid.NewString()
	f.punches = append(f.punches, p)
	return p, nil
}

func (f *fakePunchRepo) ListByStaffBetween(ctx context.Context, staffID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	var out []attendance.PunchEvent
	for _, p := range f.punches {
		if p.StaffID == staffID && !p.PunchedAt.Before(from) && p.PunchedAt.Before(to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PunchedAt.Before(out[j].PunchedAt) })
	return out, nil
}

func (f *fakePunchRepo) LatestByStoreBetween(ctx context.Context, storeID string, from, to time.Time) (map[string]attendance.PunchEvent, error) {
	out := map[string]attendance.PunchEvent{}
	for _, p := range f.punches {
		if p.StoreID != storeID || p.PunchedAt.Before(from) || !p.PunchedAt.Before(to) {
			continue
		}
		if cur, ok := out[p.StaffID]; !ok || !p.PunchedAt.Before(cur.PunchedAt) {
			out[p.StaffID] = p
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	staff.StaffRepository
	members map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	s, ok := f.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

type recordingPublisher struct {
	events []sse.Event
}

func (p *recordingPublisher) Publish(storeID string, event sse.Event) {
	event.StoreID = storeID
	p.events = append(p.events, event)
}

type serviceFixture struct {
	svc     *AttendanceServiceImpl
	tx      *fakeTransactor
	daily   *fakeDailyRepo
	punches *fakePunchRepo
	pub     *recordingPublisher
	clock   time.Time
}

func newServiceFixture(status staff.Status) *serviceFixture {
	f := &serviceFixture{
		tx:      &fakeTransactor{},
		daily:   newFakeDailyRepo(),
		punches: &fakePunchRepo{},
		pub:     &recordingPublisher{},
	}
	staffRepo := &fakeStaffRepo{members: map[string]staff.Staff{
		testStaffID: {ID: testStaffID, StoreID: testStoreID, Name: "山田 花子", Status: status},
	}}
	svc := NewAttendanceService(f.tx, f.daily, f.punches, staffRepo, f.pub, tokyo).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.clock }
	f.svc = svc
	return f
}

func (f *serviceFixture) punchAt(t *testing.T, kind attendance.PunchType, hhmm string) (attendance.PunchResponse, error) {
	t.Helper()
	f.clock = at(hhmm)
	return f.svc.Punch(context.Background(), attendance.PunchRequest{
		StaffID:   testStaffID,
		StoreID:   testStoreID,
		PunchType: kind,
	})
}

func TestAttendanceService_Punch_FullDay(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	resp, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeCreated, resp.Outcome)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "2024-04-01", resp.Attendance.WorkDate)
	assert.NotEmpty(t, resp.Punch.ID)

	_, err = f.punchAt(t, attendance.PunchBreakStart, "12:00")
	require.NoError(t, err)

	resp, err = f.punchAt(t, attendance.PunchBreakEnd, "13:00")
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeBreakAccumulated, resp.Outcome)
	assert.Equal(t, 60, resp.BreakDelta)

	resp, err = f.punchAt(t, attendance.PunchClockOut, "18:00")
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeClockedOut, resp.Outcome)
	assert.Equal(t, 480, resp.Attendance.WorkingMinutes)
	assert.Equal(t, 60, resp.Attendance.BreakMinutes)

	assert.Len(t, f.punches.punches, 4)
	assert.Len(t, f.daily.rows, 1)
	assert.Equal(t, 4, f.daily.locks)
	assert.Equal(t, 4, f.tx.calls)

	require.Len(t, f.pub.events, 4)
	assert.Equal(t, testStoreID, f.pub.events[0].StoreID)
	assert.Equal(t, EventPunchRecorded, f.pub.events[0].Name)
}

func TestAttendanceService_Punch_DuplicateClockInKeepsFirst(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)
	resp, err := f.punchAt(t, attendance.PunchClockIn, "09:05")
	require.NoError(t, err)

	assert.Equal(t, attendance.OutcomeDuplicateClockIn, resp.Outcome)
	assert.Len(t, f.daily.rows, 1)
	assert.Len(t, f.punches.punches, 2)
	for _, row := range f.daily.rows {
		assert.Equal(t, at("09:00"), *row.ClockIn)
	}
}

func TestAttendanceService_Punch_ClockOutWithoutClockIn(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	_, err := f.punchAt(t, attendance.PunchClockOut, "18:00")
	assert.ErrorIs(t, err, attendance.ErrClockOutWithoutClockIn)
	assert.Empty(t, f.daily.rows)
	assert.Empty(t, f.pub.events)
}

func TestAttendanceService_Punch_UnmatchedBreakEnd(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)

	resp, err := f.punchAt(t, attendance.PunchBreakEnd, "13:00")
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeUnmatchedBreakEnd, resp.Outcome)
	assert.Zero(t, resp.BreakDelta)
	for _, row := range f.daily.rows {
		assert.Zero(t, row.BreakMinutes)
	}
}

func TestAttendanceService_Punch_RejectsInactiveStaff(t *testing.T) {
	f := newServiceFixture(staff.StatusRetired)

	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	assert.ErrorIs(t, err, staff.ErrStaffNotActive)
	assert.Empty(t, f.punches.punches)
}

func TestAttendanceService_Punch_RejectsOtherStore(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)
	f.clock = at("09:00")

	_, err := f.svc.Punch(context.Background(), attendance.PunchRequest{
		StaffID:   testStaffID,
		StoreID:   "33333333-3333-4333-8333-333333333333",
		PunchType: attendance.PunchClockIn,
	})
	assert.ErrorIs(t, err, staff.ErrStaffStoreMismatch)
}

func TestAttendanceService_Punch_ValidationError(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	_, err := f.svc.Punch(context.Background(), attendance.PunchRequest{StaffID: "nope", StoreID: testStoreID, PunchType: "nap"})
	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve))
	m := ve.ToMap()
	assert.Contains(t, m, "staff_id")
	assert.Contains(t, m, "punch_type")
}

func TestAttendanceService_Update_RecomputesWorkingMinutes(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)
	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)
	resp, err := f.punchAt(t, attendance.PunchClockOut, "17:00")
	require.NoError(t, err)
	require.Equal(t, 480, resp.Attendance.WorkingMinutes)

	brk := 45
	out := at("17:30").Format(time.RFC3339)
	note := "打刻修正"
	updated, err := f.svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:           resp.Attendance.ID,
		ClockOut:     &out,
		BreakMinutes: &brk,
		Note:         &note,
	})
	require.NoError(t, err)
	assert.Equal(t, 465, updated.WorkingMinutes)
	assert.Equal(t, 45, updated.BreakMinutes)
	require.NotNil(t, updated.Note)
	assert.Equal(t, note, *updated.Note)
}

func TestAttendanceService_Update_NotFound(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)

	status := attendance.StatusAbsent
	_, err := f.svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:     uuid.NewString(),
		Status: &status,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_Update_ClockOutBeforeClockIn(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)
	resp, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)

	out := at("08:00").Format(time.RFC3339)
	_, err = f.svc.Update(context.Background(), attendance.UpdateAttendanceRequest{ID: resp.Attendance.ID, ClockOut: &out})
	assert.ErrorIs(t, err, attendance.ErrClockOutBeforeClockIn)
}

func TestAttendanceService_MarkPending(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)
	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)

	// same day: nothing to flag yet
	n, err := f.svc.MarkPending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock = at("00:10").AddDate(0, 0, 1)
	n, err = f.svc.MarkPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	for _, row := range f.daily.rows {
		assert.Equal(t, attendance.StatusPending, row.Status)
	}
}

func TestAttendanceService_List_Pagination(t *testing.T) {
	f := newServiceFixture(staff.StatusActive)
	_, err := f.punchAt(t, attendance.PunchClockIn, "09:00")
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "1-1 of 1", resp.Showing)
}
