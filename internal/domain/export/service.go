package export

import (
	"context"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
)

type ExportService interface {
	Report(ctx context.Context, req ExportRequest) (Report, error)
	Workbook(ctx context.Context, req ExportRequest) (spreadsheet.Document, error)
	CSV(ctx context.Context, req ExportRequest) (spreadsheet.Document, error)
}
