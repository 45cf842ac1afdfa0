package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/domain/user"
	"github.com/kintai-works/kintai-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seedStaff(t *testing.T, setup *TestDatabaseSetup) (store.Store, staff.Staff) {
	t.Helper()
	ctx := context.Background()

	st, err := postgresql.NewStoreRepository(setup.DB).Create(ctx, store.Store{Name: "渋谷店", IsActive: true})
	require.NoError(t, err)

	rate := decimal.RequireFromString("1200")
	member, err := postgresql.NewStaffRepository(setup.DB).Create(ctx, staff.Staff{
		StoreID:        st.ID,
		Name:           "青木",
		NameKana:       ptr("アオキ"),
		EmploymentType: staff.EmploymentTypePartTime,
		HourlyRate:     &rate,
		Status:         staff.StatusActive,
	})
	require.NoError(t, err)
	return st, member
}

func TestStoreAndStaffRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	stores := postgresql.NewStoreRepository(setup.DB)
	members := postgresql.NewStaffRepository(setup.DB)

	st, member := seedStaff(t, setup)
	require.NotNil(t, member.HourlyRate)
	assert.True(t, member.HourlyRate.Equal(decimal.NewFromInt(1200)))

	_, err := stores.GetByID(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, store.ErrStoreNotFound)

	closed, err := stores.SetActive(ctx, st.ID, false)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	active, err := stores.List(ctx, store.StoreFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	renamed, err := members.Update(ctx, staff.UpdateStaffRequest{ID: member.ID, Name: ptr("青木 太郎")})
	require.NoError(t, err)
	assert.Equal(t, "青木 太郎", renamed.Name)
	assert.Equal(t, "アオキ", *renamed.NameKana)

	retired := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	updated, err := members.UpdateStatus(ctx, staff.ChangeStatusRequest{ID: member.ID, Status: staff.StatusRetired, RetiredAt: &retired})
	require.NoError(t, err)
	assert.Equal(t, staff.StatusRetired, updated.Status)

	activeStatus := staff.StatusActive
	list, err := members.List(ctx, staff.StaffFilter{StoreID: &st.ID, Status: &activeStatus})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, members.Delete(ctx, member.ID))
	assert.ErrorIs(t, members.Delete(ctx, member.ID), staff.ErrStaffNotFound)
}

func TestPolicyRepository_GetEffective(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	st, _ := seedStaff(t, setup)
	repo := postgresql.NewPolicyRepository(setup.DB)

	_, err := repo.GetEffective(ctx, st.ID, time.Now())
	assert.ErrorIs(t, err, policy.ErrPolicyNotFound)

	older := policy.Default(st.ID)
	older.EffectiveFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, older)
	require.NoError(t, err)

	newer := policy.Default(st.ID)
	newer.Name = "april"
	newer.RoundingUnit = policy.RoundingUnitFifteen
	newer.StandardWorkStartTime = ptr("09:00")
	newer.EffectiveFrom = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err = repo.Create(ctx, newer)
	require.NoError(t, err)

	found, err := repo.GetEffective(ctx, st.ID, time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "default", found.Name)

	found, err = repo.GetEffective(ctx, st.ID, time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, policy.RoundingUnitFifteen, found.RoundingUnit)
	require.NotNil(t, found.StandardWorkStartTime)
	assert.Equal(t, "09:00:00", *found.StandardWorkStartTime)
}

func TestDailyAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	st, member := seedStaff(t, setup)
	repo := postgresql.NewDailyAttendanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	workDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	clockIn := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, repo.LockDay(txCtx, member.ID, workDate))

		existing, err := repo.GetByStaffAndDate(txCtx, member.ID, workDate)
		require.NoError(t, err)
		assert.Nil(t, existing)

		_, err = repo.Create(txCtx, attendance.DailyAttendance{
			StaffID:  member.ID,
			StoreID:  st.ID,
			WorkDate: workDate,
			ClockIn:  &clockIn,
			Status:   attendance.StatusPresent,
		})
		return err
	})
	require.NoError(t, err)

	found, err := repo.GetByStaffAndDate(ctx, member.ID, workDate)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.ClockIn.Equal(clockIn))
	assert.Equal(t, workDate, found.WorkDate)

	byID, err := repo.GetByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, "青木", *byID.StaffName)
	assert.Equal(t, "渋谷店", *byID.StoreName)

	n, err := repo.MarkUnclosedPending(ctx, workDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	clockOut := clockIn.Add(9 * time.Hour)
	found.ClockOut = &clockOut
	found.BreakMinutes = 60
	found.Status = attendance.StatusPresent
	found.Recompute()
	updated, err := repo.Update(ctx, *found)
	require.NoError(t, err)
	assert.Equal(t, 480, updated.WorkingMinutes)

	rows, total, err := repo.List(ctx, attendance.AttendanceFilter{StoreID: &st.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, attendance.StatusPresent, rows[0].Status)

	_, err = repo.GetByID(ctx, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestPunchRepository_Latest(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	st, member := seedStaff(t, setup)
	repo := postgresql.NewPunchRepository(setup.DB)

	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, pt := range []attendance.PunchType{attendance.PunchClockIn, attendance.PunchBreakStart, attendance.PunchBreakEnd} {
		_, err := repo.Create(ctx, attendance.PunchEvent{
			StaffID:   member.ID,
			StoreID:   st.ID,
			PunchType: pt,
			PunchedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	punches, err := repo.ListByStaffBetween(ctx, member.ID, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, punches, 3)
	assert.Equal(t, attendance.PunchClockIn, punches[0].PunchType)

	latest, err := repo.LatestByStoreBetween(ctx, st.ID, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Contains(t, latest, member.ID)
	assert.Equal(t, attendance.PunchBreakEnd, latest[member.ID].PunchType)

	latest, err = repo.LatestByStoreBetween(ctx, st.ID, base.Add(24*time.Hour), base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestShiftRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	st, member := seedStaff(t, setup)
	templates := postgresql.NewShiftTemplateRepository(setup.DB)
	shifts := postgresql.NewShiftRepository(setup.DB)

	early, err := templates.Create(ctx, shift.ShiftTemplate{
		StoreID:      st.ID,
		Code:         "A",
		Name:         "早番",
		ShortLabel:   "早",
		Color:        "#FFEEAA",
		StartTime:    ptr("09:00"),
		EndTime:      ptr("18:00"),
		BreakMinutes: 60,
		WorkingHours: decimal.RequireFromString("8"),
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", early.StartLabel())

	_, err = templates.Create(ctx, shift.ShiftTemplate{StoreID: st.ID, Code: "A", Name: "dup", ShortLabel: "D", Color: "#000000"})
	assert.Error(t, err, "code is unique per store")

	workDate := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	_, err = shifts.Upsert(ctx, shift.Shift{StaffID: member.ID, StoreID: st.ID, WorkDate: workDate, ShiftTemplateID: &early.ID})
	require.NoError(t, err)
	_, err = shifts.Upsert(ctx, shift.Shift{StaffID: member.ID, StoreID: st.ID, WorkDate: workDate, ShiftTemplateID: &early.ID, Note: ptr("応援")})
	require.NoError(t, err)

	list, err := shifts.ListByStoreBetween(ctx, st.ID, workDate.AddDate(0, 0, -1), workDate)
	require.NoError(t, err)
	require.Len(t, list, 1, "one shift per staff and day")
	require.NotNil(t, list[0].Template)
	assert.Equal(t, "早番", list[0].Template.Name)
	assert.True(t, list[0].Template.WorkingHours.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "応援", *list[0].Note)

	require.NoError(t, shifts.DeleteByStaffAndDate(ctx, member.ID, workDate))
	require.NoError(t, shifts.DeleteByStaffAndDate(ctx, member.ID, workDate))

	inactive, err := templates.SetActive(ctx, early.ID, false)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	active, err := templates.ListByStore(ctx, st.ID, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestExportRepository_ListRecords(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	st, member := seedStaff(t, setup)

	clockIn := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := postgresql.NewDailyAttendanceRepository(setup.DB).Create(ctx, attendance.DailyAttendance{
		StaffID:  member.ID,
		StoreID:  st.ID,
		WorkDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		ClockIn:  &clockIn,
		Status:   attendance.StatusPresent,
	})
	require.NoError(t, err)

	repo := postgresql.NewExportRepository(setup.DB)
	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	records, err := repo.ListRecords(ctx, from, to, &st.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, staff.EmploymentTypePartTime, records[0].EmploymentType)
	assert.Equal(t, "アオキ", *records[0].StaffNameKana)
	assert.True(t, records[0].HourlyRate.Equal(decimal.NewFromInt(1200)))

	records, err = repo.ListRecords(ctx, from.AddDate(0, 1, 0), to.AddDate(0, 1, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUserAndRefreshTokenRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	users := postgresql.NewUserRepository(setup.DB)
	tokens := postgresql.NewRefreshTokenRepository(setup.DB)

	created, err := users.Create(ctx, user.User{Email: "admin@example.com", Name: "管理者", PasswordHash: ptr("hash"), IsActive: true})
	require.NoError(t, err)

	found, err := users.GetByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	linked, err := users.LinkGoogleAccount(ctx, "g-1", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, linked.HasGoogleLink())

	require.NoError(t, users.TouchLastLogin(ctx, created.ID))
	found, err = users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.LastLoginAt)

	session := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "test"}
	require.NoError(t, tokens.CreateRefreshToken(ctx, created.ID, "refresh-1", time.Now().Add(time.Hour).Unix(), session))

	owner, revoked, err := tokens.IsRefreshTokenRevoked(ctx, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, owner)
	assert.False(t, revoked)

	require.NoError(t, tokens.RevokeRefreshToken(ctx, "refresh-1"))
	_, revoked, err = tokens.IsRefreshTokenRevoked(ctx, "refresh-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, _, err = tokens.IsRefreshTokenRevoked(ctx, "unknown")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
