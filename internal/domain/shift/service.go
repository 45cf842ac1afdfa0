package shift

import (
	"context"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
)

type ShiftService interface {
	CreateTemplate(ctx context.Context, req CreateShiftTemplateRequest) (ShiftTemplateResponse, error)
	ListTemplates(ctx context.Context, storeID string, activeOnly bool) ([]ShiftTemplateResponse, error)
	UpdateTemplate(ctx context.Context, req UpdateShiftTemplateRequest) (ShiftTemplateResponse, error)
	DeactivateTemplate(ctx context.Context, id string) (ShiftTemplateResponse, error)

	// AssignCell overwrites the cell, or deletes it when no template is given (nil response).
	AssignCell(ctx context.Context, req AssignCellRequest) (*ShiftResponse, error)

	Grid(ctx context.Context, req GridRequest) (GridResponse, error)
	ExportGrid(ctx context.Context, req GridRequest) (spreadsheet.Document, error)
}
