package export

import (
	"github.com/kintai-works/kintai-backend-go/internal/domain/export"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
)

const (
	flatSheetName    = "勤怠一覧"
	summarySheetName = "スタッフ別集計"
)

var detailWidths = []float64{12, 6, 10, 10, 10, 10, 12, 10, 8, 20}

// renderWorkbook writes the attendance list, the per staff summary and one
// detail sheet per staff member, in that order.
func renderWorkbook(report export.Report) ([]byte, error) {
	wb, err := spreadsheet.NewWorkbook()
	if err != nil {
		return nil, err
	}

	flat, err := wb.Sheet(flatSheetName)
	if err != nil {
		return nil, err
	}
	if err := flat.SetHeader(1, export.FlatHeaders); err != nil {
		return nil, err
	}
	for i, r := range report.Rows {
		if err := flat.SetRow(i+2, r.Values()); err != nil {
			return nil, err
		}
	}
	if err := flat.SetColWidths(repeat(15, len(export.FlatHeaders))...); err != nil {
		return nil, err
	}
	if err := flat.FreezePanes(1, 0); err != nil {
		return nil, err
	}

	summary, err := wb.Sheet(summarySheetName)
	if err != nil {
		return nil, err
	}
	if err := summary.SetHeader(1, export.SummaryHeaders); err != nil {
		return nil, err
	}
	for i, r := range report.Summary {
		if err := summary.SetRow(i+2, r.Values()); err != nil {
			return nil, err
		}
	}
	if err := summary.SetColWidths(repeat(18, len(export.SummaryHeaders))...); err != nil {
		return nil, err
	}

	for _, d := range report.Details {
		sheet, err := wb.Sheet(d.StaffName)
		if err != nil {
			return nil, err
		}
		if err := sheet.SetHeader(1, export.DetailHeaders); err != nil {
			return nil, err
		}
		for i, r := range d.Rows {
			if err := sheet.SetRow(i+2, r.Values()); err != nil {
				return nil, err
			}
		}
		if err := sheet.SetTotalRow(len(d.Rows)+2, d.Total.Values()); err != nil {
			return nil, err
		}
		if err := sheet.SetColWidths(detailWidths...); err != nil {
			return nil, err
		}
	}

	return wb.Bytes()
}

func repeat(width float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = width
	}
	return out
}
