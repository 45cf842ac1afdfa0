package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/export"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
)

const allStoresLabel = "全店舗"

type ExportServiceImpl struct {
	exportRepo    export.ExportRepository
	storeRepo     store.StoreRepository
	policyService policy.PolicyService
	loc           *time.Location
	now           func() time.Time
}

func NewExportService(
	exportRepo export.ExportRepository,
	storeRepo store.StoreRepository,
	policyService policy.PolicyService,
	loc *time.Location,
) export.ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportServiceImpl{
		exportRepo:    exportRepo,
		storeRepo:     storeRepo,
		policyService: policyService,
		loc:           loc,
		now:           time.Now,
	}
}

func (s *ExportServiceImpl) Report(ctx context.Context, req export.ExportRequest) (export.Report, error) {
	if err := req.Validate(); err != nil {
		return export.Report{}, err
	}

	storeName := allStoresLabel
	if req.StoreID != nil {
		st, err := s.storeRepo.GetByID(ctx, *req.StoreID)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return export.Report{}, store.ErrStoreNotFound
			}
			return export.Report{}, fmt.Errorf("failed to get store: %w", err)
		}
		storeName = st.Name
	}

	from, to := req.Period()
	records, err := s.exportRepo.ListRecords(ctx, from, to, req.StoreID)
	if err != nil {
		return export.Report{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	units, err := s.roundingUnits(ctx, records)
	if err != nil {
		return export.Report{}, err
	}

	report := export.Build(records, s.loc, units)
	report.Year = req.Year
	report.Month = req.Month
	report.StoreName = storeName
	return report, nil
}

// roundingUnits resolves the current policy once per store present in records.
func (s *ExportServiceImpl) roundingUnits(ctx context.Context, records []export.Record) (map[string]policy.RoundingUnit, error) {
	units := make(map[string]policy.RoundingUnit)
	for _, r := range records {
		if _, ok := units[r.StoreID]; ok {
			continue
		}
		p, err := s.policyService.Current(ctx, r.StoreID, s.now().In(s.loc))
		if err != nil {
			return nil, fmt.Errorf("failed to get policy for store %s: %w", r.StoreID, err)
		}
		units[r.StoreID] = p.RoundingUnit
	}
	return units, nil
}

func (s *ExportServiceImpl) Workbook(ctx context.Context, req export.ExportRequest) (spreadsheet.Document, error) {
	report, err := s.Report(ctx, req)
	if err != nil {
		return spreadsheet.Document{}, err
	}

	data, err := renderWorkbook(report)
	if err != nil {
		return spreadsheet.Document{}, fmt.Errorf("failed to render attendance workbook: %w", err)
	}

	return spreadsheet.Document{
		FileName:    report.FileName("xlsx"),
		ContentType: spreadsheet.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *ExportServiceImpl) CSV(ctx context.Context, req export.ExportRequest) (spreadsheet.Document, error) {
	report, err := s.Report(ctx, req)
	if err != nil {
		return spreadsheet.Document{}, err
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, r.Strings())
	}

	data, err := spreadsheet.CSV(export.FlatHeaders, rows)
	if err != nil {
		return spreadsheet.Document{}, fmt.Errorf("failed to render attendance csv: %w", err)
	}

	return spreadsheet.Document{
		FileName:    report.FileName("csv"),
		ContentType: spreadsheet.ContentTypeCSV,
		Data:        data,
	}, nil
}
