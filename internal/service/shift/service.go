package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
	"golang.org/x/sync/errgroup"
)

type ShiftServiceImpl struct {
	templateRepo  shift.ShiftTemplateRepository
	shiftRepo     shift.ShiftRepository
	staffRepo     staff.StaffRepository
	storeRepo     store.StoreRepository
	policyService policy.PolicyService
	loc           *time.Location
	now           func() time.Time
}

func NewShiftService(
	templateRepo shift.ShiftTemplateRepository,
	shiftRepo shift.ShiftRepository,
	staffRepo staff.StaffRepository,
	storeRepo store.StoreRepository,
	policyService policy.PolicyService,
	loc *time.Location,
) shift.ShiftService {
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftServiceImpl{
		templateRepo:  templateRepo,
		shiftRepo:     shiftRepo,
		staffRepo:     staffRepo,
		storeRepo:     storeRepo,
		policyService: policyService,
		loc:           loc,
		now:           time.Now,
	}
}

// ==================== TEMPLATE OPERATIONS ====================

func (s *ShiftServiceImpl) CreateTemplate(ctx context.Context, req shift.CreateShiftTemplateRequest) (shift.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTemplateResponse{}, err
	}

	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		if errors.Is(err, store.ErrStoreNotFound) {
			return shift.ShiftTemplateResponse{}, store.ErrStoreNotFound
		}
		return shift.ShiftTemplateResponse{}, fmt.Errorf("failed to get store: %w", err)
	}

	entity := shift.ShiftTemplate{StoreID: req.StoreID, IsActive: true}
	req.Apply(&entity)

	created, err := s.templateRepo.Create(ctx, entity)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ShiftTemplateResponse{}, shift.ErrTemplateCodeExists
		}
		return shift.ShiftTemplateResponse{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return shift.NewShiftTemplateResponse(created), nil
}

func (s *ShiftServiceImpl) ListTemplates(ctx context.Context, storeID string, activeOnly bool) ([]shift.ShiftTemplateResponse, error) {
	templates, err := s.templateRepo.ListByStore(ctx, storeID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]shift.ShiftTemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, shift.NewShiftTemplateResponse(t))
	}
	return responses, nil
}

func (s *ShiftServiceImpl) UpdateTemplate(ctx context.Context, req shift.UpdateShiftTemplateRequest) (shift.ShiftTemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftTemplateResponse{}, err
	}

	existing, err := s.templateRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, shift.ErrTemplateNotFound) {
			return shift.ShiftTemplateResponse{}, shift.ErrTemplateNotFound
		}
		return shift.ShiftTemplateResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	req.Apply(&existing)

	updated, err := s.templateRepo.Update(ctx, existing)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.ShiftTemplateResponse{}, shift.ErrTemplateCodeExists
		}
		return shift.ShiftTemplateResponse{}, fmt.Errorf("failed to update shift template: %w", err)
	}
	return shift.NewShiftTemplateResponse(updated), nil
}

// DeactivateTemplate hides a template from new assignments. Existing shifts keep referencing it.
func (s *ShiftServiceImpl) DeactivateTemplate(ctx context.Context, id string) (shift.ShiftTemplateResponse, error) {
	updated, err := s.templateRepo.SetActive(ctx, id, false)
	if err != nil {
		if errors.Is(err, shift.ErrTemplateNotFound) {
			return shift.ShiftTemplateResponse{}, shift.ErrTemplateNotFound
		}
		return shift.ShiftTemplateResponse{}, fmt.Errorf("failed to deactivate shift template: %w", err)
	}
	return shift.NewShiftTemplateResponse(updated), nil
}

// ==================== CELL ASSIGNMENT ====================

func (s *ShiftServiceImpl) AssignCell(ctx context.Context, req shift.AssignCellRequest) (*shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return nil, staff.ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	if member.StoreID != req.StoreID {
		return nil, staff.ErrStaffStoreMismatch
	}

	if req.ShiftTemplateID == nil {
		if err := s.shiftRepo.DeleteByStaffAndDate(ctx, req.StaffID, workDate); err != nil {
			return nil, fmt.Errorf("failed to delete shift: %w", err)
		}
		return nil, nil
	}

	tmpl, err := s.templateRepo.GetByID(ctx, *req.ShiftTemplateID)
	if err != nil {
		if errors.Is(err, shift.ErrTemplateNotFound) {
			return nil, shift.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get shift template: %w", err)
	}
	if tmpl.StoreID != req.StoreID {
		return nil, shift.ErrTemplateStoreMismatch
	}
	if !tmpl.IsActive {
		return nil, shift.ErrTemplateInactive
	}

	saved, err := s.shiftRepo.Upsert(ctx, shift.Shift{
		StaffID:         req.StaffID,
		StoreID:         req.StoreID,
		WorkDate:        workDate,
		ShiftTemplateID: &tmpl.ID,
		Note:            req.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save shift: %w", err)
	}

	resp := shift.NewShiftResponse(saved)
	return &resp, nil
}

// ==================== GRID ====================

type gridInputs struct {
	store     store.Store
	members   []staff.Staff
	templates []shift.ShiftTemplate
	policy    policy.Policy
	dates     []time.Time
	shifts    []shift.Shift
}

// loadGrid fetches everything the grid needs. The independent reads run
// concurrently; shifts are read once the period is known.
func (s *ShiftServiceImpl) loadGrid(ctx context.Context, req shift.GridRequest) (gridInputs, error) {
	var in gridInputs

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := s.storeRepo.GetByID(gCtx, req.StoreID)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return store.ErrStoreNotFound
			}
			return fmt.Errorf("failed to get store: %w", err)
		}
		in.store = st
		return nil
	})

	g.Go(func() error {
		active := staff.StatusActive
		members, err := s.staffRepo.List(gCtx, staff.StaffFilter{StoreID: &req.StoreID, Status: &active})
		if err != nil {
			return fmt.Errorf("failed to list staff: %w", err)
		}
		in.members = members
		return nil
	})

	g.Go(func() error {
		templates, err := s.templateRepo.ListByStore(gCtx, req.StoreID, true)
		if err != nil {
			return fmt.Errorf("failed to list shift templates: %w", err)
		}
		in.templates = templates
		return nil
	})

	g.Go(func() error {
		p, err := s.policyService.Current(gCtx, req.StoreID, s.now().In(s.loc))
		if err != nil {
			return err
		}
		in.policy = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return gridInputs{}, err
	}

	startDay := in.policy.ShiftStartDay
	if startDay < 1 {
		startDay = 1
	}
	in.dates = shift.BuildPeriod(req.Year, time.Month(req.Month), startDay)

	shifts, err := s.shiftRepo.ListByStoreBetween(ctx, req.StoreID, in.dates[0], in.dates[len(in.dates)-1])
	if err != nil {
		return gridInputs{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	in.shifts = shifts

	return in, nil
}

func (s *ShiftServiceImpl) Grid(ctx context.Context, req shift.GridRequest) (shift.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.GridResponse{}, err
	}

	in, err := s.loadGrid(ctx, req)
	if err != nil {
		return shift.GridResponse{}, err
	}
	return buildGrid(req, in), nil
}

func buildGrid(req shift.GridRequest, in gridInputs) shift.GridResponse {
	templatesByID := make(map[string]shift.ShiftTemplate, len(in.templates))
	templateResponses := make([]shift.ShiftTemplateResponse, 0, len(in.templates))
	for _, t := range in.templates {
		templatesByID[t.ID] = t
		templateResponses = append(templateResponses, shift.NewShiftTemplateResponse(t))
	}

	byStaff := make(map[string]map[string]shift.Shift)
	for _, sh := range in.shifts {
		if byStaff[sh.StaffID] == nil {
			byStaff[sh.StaffID] = make(map[string]shift.Shift)
		}
		byStaff[sh.StaffID][shift.DateKey(sh.WorkDate)] = sh
	}

	groups := shift.GroupByEmploymentType(in.members)
	gridGroups := make([]shift.GridGroup, 0, len(groups))
	for _, group := range groups {
		rows := make([]shift.GridStaffRow, 0, len(group.Members))
		for _, m := range group.Members {
			cellsByDate := byStaff[m.ID]
			summary := shift.Summarize(in.dates, cellsByDate, templatesByID)

			cells := make([]shift.GridCell, 0, len(in.dates))
			for _, d := range in.dates {
				key := shift.DateKey(d)
				cell := shift.GridCell{Date: key}
				if sh, ok := cellsByDate[key]; ok {
					id := sh.ID
					cell.ShiftID = &id
					cell.TemplateID = sh.ShiftTemplateID
					tmpl := sh.Template
					if tmpl == nil && sh.ShiftTemplateID != nil {
						if t, found := templatesByID[*sh.ShiftTemplateID]; found {
							tmpl = &t
						}
					}
					if tmpl != nil {
						cell.ShortLabel = tmpl.ShortLabel
						cell.StartTime = tmpl.StartLabel()
						cell.Color = tmpl.Color
					}
				}
				cells = append(cells, cell)
			}

			rows = append(rows, shift.GridStaffRow{
				StaffID: m.ID,
				Name:    m.Name,
				Cells:   cells,
				Summary: shift.SummaryResponse{
					TotalScheduledHours: summary.TotalScheduledHours,
					TotalWorkedDays:     summary.TotalWorkedDays,
					TotalPaidLeaveDays:  summary.TotalPaidLeaveDays,
				},
			})
		}

		gridGroups = append(gridGroups, shift.GridGroup{
			EmploymentType: string(group.EmploymentType),
			Label:          group.EmploymentType.Label(),
			Staff:          rows,
		})
	}

	startDay := in.policy.ShiftStartDay
	if startDay < 1 {
		startDay = 1
	}

	return shift.GridResponse{
		StoreID:       in.store.ID,
		StoreName:     in.store.Name,
		Year:          req.Year,
		Month:         req.Month,
		ShiftStartDay: startDay,
		StartDate:     shift.DateKey(in.dates[0]),
		EndDate:       shift.DateKey(in.dates[len(in.dates)-1]),
		Dates:         shift.NewGridDates(in.dates),
		Templates:     templateResponses,
		Groups:        gridGroups,
	}
}

func (s *ShiftServiceImpl) ExportGrid(ctx context.Context, req shift.GridRequest) (spreadsheet.Document, error) {
	grid, err := s.Grid(ctx, req)
	if err != nil {
		return spreadsheet.Document{}, err
	}

	data, err := renderGridWorkbook(grid)
	if err != nil {
		return spreadsheet.Document{}, fmt.Errorf("failed to render shift grid: %w", err)
	}

	return spreadsheet.Document{
		FileName:    fmt.Sprintf("シフト表_%s_%d年%d月.xlsx", grid.StoreName, grid.Year, grid.Month),
		ContentType: spreadsheet.ContentTypeXLSX,
		Data:        data,
	}, nil
}
