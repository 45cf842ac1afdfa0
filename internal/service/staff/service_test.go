package staff

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffRepo struct {
	members map[string]staff.Staff
	worked  map[string]bool
}

func (f *fakeStaffRepo) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	s.ID = uuid.NewString()
	f.members[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	s, ok := f.members[id]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) List(ctx context.Context, filter staff.StaffFilter) ([]staff.Staff, error) {
	var out []staff.Staff
	for _, s := range f.members {
		if filter.StoreID != nil && s.StoreID != *filter.StoreID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.Staff, error) {
	s, ok := f.members[req.ID]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.HourlyRate != nil {
		s.HourlyRate = req.HourlyRate
	}
	f.members[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) UpdateStatus(ctx context.Context, req staff.ChangeStatusRequest) (staff.Staff, error) {
	s, ok := f.members[req.ID]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	s.Status = req.Status
	s.RetiredAt = req.RetiredAt
	f.members[s.ID] = s
	return s, nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return staff.ErrStaffNotFound
	}
	if f.worked[id] {
		return fmt.Errorf("failed to delete staff: %w", &pgconn.PgError{Code: "23503"})
	}
	delete(f.members, id)
	return nil
}

type fakeStoreRepo struct {
	store.StoreRepository
	ids map[string]bool
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (store.Store, error) {
	if !f.ids[id] {
		return store.Store{}, store.ErrStoreNotFound
	}
	return store.Store{ID: id, IsActive: true}, nil
}

func newStaffService(t *testing.T) (*StaffServiceImpl, string) {
	t.Helper()
	storeID := uuid.NewString()
	svc := NewStaffService(
		&fakeStaffRepo{members: map[string]staff.Staff{}, worked: map[string]bool{}},
		&fakeStoreRepo{ids: map[string]bool{storeID: true}},
	).(*StaffServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC) }
	return svc, storeID
}

func TestStaffService_Create_Success(t *testing.T) {
	svc, storeID := newStaffService(t)

	rate := decimal.NewFromInt(1200)
	resp, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		StoreID:        storeID,
		Name:           "佐藤 一郎",
		EmploymentType: staff.EmploymentTypePartTime,
		HourlyRate:     &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, staff.StatusActive, resp.Status)
	assert.Equal(t, "在籍", resp.StatusLabel)
	assert.Equal(t, "パート", resp.EmploymentTypeLabel)
	assert.True(t, resp.HourlyRate.Equal(rate))
}

func TestStaffService_Create_UnknownStore(t *testing.T) {
	svc, _ := newStaffService(t)

	_, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		StoreID:        uuid.NewString(),
		Name:           "佐藤 一郎",
		EmploymentType: staff.EmploymentTypeFullTime,
	})
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestStaffService_Create_Validation(t *testing.T) {
	svc, _ := newStaffService(t)

	rate := decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		StoreID:        "bad",
		EmploymentType: "intern",
		HourlyRate:     &rate,
	})
	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve))
	m := ve.ToMap()
	assert.Equal(t, "store_id must be a valid UUID", m["store_id"])
	assert.Equal(t, "name is required", m["name"])
	assert.Contains(t, m, "employment_type")
	assert.Equal(t, "hourly_rate must not be negative", m["hourly_rate"])
}

func TestStaffService_StatusLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, storeID := newStaffService(t)

	created, err := svc.Create(ctx, staff.CreateStaffRequest{
		StoreID:        storeID,
		Name:           "鈴木 次郎",
		EmploymentType: staff.EmploymentTypeContractor,
	})
	require.NoError(t, err)

	suspended, err := svc.Suspend(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.StatusInactive, suspended.Status)

	retired, err := svc.Retire(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.StatusRetired, retired.Status)
	require.NotNil(t, retired.RetiredAt)
	assert.Equal(t, "2024-04-30", *retired.RetiredAt)

	_, err = svc.Retire(ctx, created.ID)
	assert.ErrorIs(t, err, staff.ErrStaffAlreadyRetired)

	back, err := svc.Reinstate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.StatusActive, back.Status)
	assert.Nil(t, back.RetiredAt)
}

func TestStaffService_Delete_NotFound(t *testing.T) {
	svc, _ := newStaffService(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.NewString()), staff.ErrStaffNotFound)
}

func TestStaffService_Delete_KeepsAttendanceHistory(t *testing.T) {
	svc, storeID := newStaffService(t)
	ctx := context.Background()
	repo := svc.StaffRepository.(*fakeStaffRepo)

	created, err := repo.Create(ctx, staff.Staff{StoreID: storeID, Name: "青木 一郎", Status: staff.StatusActive})
	require.NoError(t, err)
	repo.worked[created.ID] = true

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), staff.ErrStaffHasAttendance)
	_, err = repo.GetByID(ctx, created.ID)
	assert.NoError(t, err, "staff with history stays in place")
}
