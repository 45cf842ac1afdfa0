package kiosk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/kiosk"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/sse"
)

type KioskServiceImpl struct {
	storeRepo         store.StoreRepository
	staffRepo         staff.StaffRepository
	punchRepo         attendance.PunchRepository
	attendanceService attendance.AttendanceService
	events            sse.Subscriber
	jwtService        jwt.Service
	loc               *time.Location
	now               func() time.Time
}

func NewKioskService(
	storeRepo store.StoreRepository,
	staffRepo staff.StaffRepository,
	punchRepo attendance.PunchRepository,
	attendanceService attendance.AttendanceService,
	events sse.Subscriber,
	jwtService jwt.Service,
	loc *time.Location,
) kiosk.KioskService {
	if loc == nil {
		loc = time.UTC
	}
	return &KioskServiceImpl{
		storeRepo:         storeRepo,
		staffRepo:         staffRepo,
		punchRepo:         punchRepo,
		attendanceService: attendanceService,
		events:            events,
		jwtService:        jwtService,
		loc:               loc,
		now:               time.Now,
	}
}

func (s *KioskServiceImpl) activeStore(ctx context.Context, storeID string) (store.Store, error) {
	st, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store: %w", err)
	}
	if !st.IsActive {
		return store.Store{}, store.ErrStoreInactive
	}
	return st, nil
}

func (s *KioskServiceImpl) Board(ctx context.Context, storeID string) (kiosk.BoardResponse, error) {
	st, err := s.activeStore(ctx, storeID)
	if err != nil {
		return kiosk.BoardResponse{}, err
	}

	active := staff.StatusActive
	members, err := s.staffRepo.List(ctx, staff.StaffFilter{StoreID: &storeID, Status: &active})
	if err != nil {
		return kiosk.BoardResponse{}, fmt.Errorf("failed to list staff: %w", err)
	}

	workDate := attendance.WorkDate(s.now(), s.loc)
	from, to := attendance.DayBounds(workDate, s.loc)
	latest, err := s.punchRepo.LatestByStoreBetween(ctx, storeID, from, to)
	if err != nil {
		return kiosk.BoardResponse{}, fmt.Errorf("failed to get latest punches: %w", err)
	}

	board := kiosk.BoardResponse{
		StoreID:   st.ID,
		StoreName: st.Name,
		WorkDate:  workDate.Format("2006-01-02"),
		Staff:     make([]kiosk.StaffStatusResponse, 0, len(members)),
	}
	for _, m := range members {
		var last *attendance.PunchEvent
		if p, ok := latest[m.ID]; ok {
			last = &p
		}
		status := kiosk.DeriveStatus(last)

		row := kiosk.StaffStatusResponse{
			StaffID:        m.ID,
			Name:           m.Name,
			Status:         status,
			StatusLabel:    status.Label(),
			AllowedPunches: status.AllowedNext(),
		}
		if last != nil {
			resp := attendance.NewPunchEventResponse(*last)
			row.LastPunch = &resp
		}
		board.Staff = append(board.Staff, row)
	}

	return board, nil
}

func (s *KioskServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (kiosk.PunchResponse, error) {
	if _, err := s.activeStore(ctx, req.StoreID); err != nil {
		return kiosk.PunchResponse{}, err
	}

	result, err := s.attendanceService.Punch(ctx, req)
	if err != nil {
		return kiosk.PunchResponse{}, err
	}

	name := ""
	if member, err := s.staffRepo.GetByID(ctx, req.StaffID); err == nil {
		name = member.Name
	}

	return kiosk.PunchResponse{
		Message:       fmt.Sprintf("%sさんの%sを記録しました", name, req.PunchType.Label()),
		PunchResponse: result,
	}, nil
}

func (s *KioskServiceImpl) Subscribe(storeID string) (<-chan sse.Event, func()) {
	return s.events.Subscribe(storeID)
}

func (s *KioskServiceImpl) IssueToken(ctx context.Context, storeID string) (kiosk.TokenResponse, error) {
	if _, err := s.activeStore(ctx, storeID); err != nil {
		return kiosk.TokenResponse{}, err
	}

	token, expiresAt, err := s.jwtService.GenerateKioskToken(storeID)
	if err != nil {
		return kiosk.TokenResponse{}, fmt.Errorf("failed to generate kiosk token: %w", err)
	}
	return kiosk.NewTokenResponse(storeID, token, expiresAt), nil
}
