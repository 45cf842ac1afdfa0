package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
)

type StaffServiceImpl struct {
	staff.StaffRepository
	storeRepo store.StoreRepository
	now       func() time.Time
}

func NewStaffService(staffRepo staff.StaffRepository, storeRepo store.StoreRepository) staff.StaffService {
	return &StaffServiceImpl{
		StaffRepository: staffRepo,
		storeRepo:       storeRepo,
		now:             time.Now,
	}
}

func (s *StaffServiceImpl) ensureStore(ctx context.Context, storeID string) error {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return store.ErrStoreNotFound
		}
		return fmt.Errorf("failed to get store: %w", err)
	}
	return nil
}

// Create implements staff.StaffService.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	if err := s.ensureStore(ctx, req.StoreID); err != nil {
		return staff.StaffResponse{}, err
	}

	created, err := s.StaffRepository.Create(ctx, staff.Staff{
		StoreID:        req.StoreID,
		Name:           req.Name,
		NameKana:       req.NameKana,
		EmploymentType: req.EmploymentType,
		HourlyRate:     req.HourlyRate,
		Status:         staff.StatusActive,
		DisplayOrder:   req.DisplayOrder,
	})
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff.NewStaffResponse(created), nil
}

// Get implements staff.StaffService.
func (s *StaffServiceImpl) Get(ctx context.Context, id string) (staff.StaffResponse, error) {
	found, err := s.StaffRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.StaffResponse{}, staff.ErrStaffNotFound
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff.NewStaffResponse(found), nil
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	members, err := s.StaffRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, staff.NewStaffResponse(m))
	}
	return responses, nil
}

// Update implements staff.StaffService.
func (s *StaffServiceImpl) Update(ctx context.Context, req staff.UpdateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}
	if req.StoreID != nil {
		if err := s.ensureStore(ctx, *req.StoreID); err != nil {
			return staff.StaffResponse{}, err
		}
	}

	updated, err := s.StaffRepository.Update(ctx, req)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.StaffResponse{}, staff.ErrStaffNotFound
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff.NewStaffResponse(updated), nil
}

// Retire implements staff.StaffService.
func (s *StaffServiceImpl) Retire(ctx context.Context, id string) (staff.StaffResponse, error) {
	current, err := s.StaffRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.StaffResponse{}, staff.ErrStaffNotFound
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to get staff: %w", err)
	}
	if current.Status == staff.StatusRetired {
		return staff.StaffResponse{}, staff.ErrStaffAlreadyRetired
	}

	retiredAt := s.now()
	return s.changeStatus(ctx, staff.ChangeStatusRequest{ID: id, Status: staff.StatusRetired, RetiredAt: &retiredAt})
}

// Suspend implements staff.StaffService.
func (s *StaffServiceImpl) Suspend(ctx context.Context, id string) (staff.StaffResponse, error) {
	return s.changeStatus(ctx, staff.ChangeStatusRequest{ID: id, Status: staff.StatusInactive})
}

// Reinstate implements staff.StaffService. It clears retired_at.
func (s *StaffServiceImpl) Reinstate(ctx context.Context, id string) (staff.StaffResponse, error) {
	return s.changeStatus(ctx, staff.ChangeStatusRequest{ID: id, Status: staff.StatusActive})
}

func (s *StaffServiceImpl) changeStatus(ctx context.Context, req staff.ChangeStatusRequest) (staff.StaffResponse, error) {
	updated, err := s.StaffRepository.UpdateStatus(ctx, req)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.StaffResponse{}, staff.ErrStaffNotFound
		}
		return staff.StaffResponse{}, fmt.Errorf("failed to change staff status: %w", err)
	}
	return staff.NewStaffResponse(updated), nil
}

// Delete implements staff.StaffService.
func (s *StaffServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.StaffRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.ErrStaffNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return staff.ErrStaffHasAttendance
		}
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}
