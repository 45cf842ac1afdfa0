package shift

import (
	"fmt"

	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/spreadsheet"
)

const gridSheetName = "シフト表"

// renderGridWorkbook lays the grid out as a printable sheet. Each staff
// member takes two rows: start times above, short labels below.
func renderGridWorkbook(grid shift.GridResponse) ([]byte, error) {
	wb, err := spreadsheet.NewWorkbook()
	if err != nil {
		return nil, err
	}
	sheet, err := wb.Sheet(gridSheetName)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s  %d年%d月シフト表（%d日始まり）", grid.StoreName, grid.Year, grid.Month, grid.ShiftStartDay)
	if err := sheet.SetTitle(1, title); err != nil {
		return nil, err
	}

	days := []interface{}{"", ""}
	weekdays := []interface{}{"", ""}
	for _, d := range grid.Dates {
		days = append(days, d.Day)
		weekdays = append(weekdays, d.Weekday)
	}
	days = append(days, "予定時間", "出勤日数", "有給")
	weekdays = append(weekdays, "", "", "")
	if err := sheet.SetRow(2, days); err != nil {
		return nil, err
	}
	if err := sheet.SetRow(3, weekdays); err != nil {
		return nil, err
	}

	row := 4
	for i, group := range grid.Groups {
		for idx, member := range group.Staff {
			label := ""
			if idx == 0 {
				label = group.Label
			}
			upper := []interface{}{label, member.Name}
			lower := []interface{}{"", ""}
			for _, cell := range member.Cells {
				upper = append(upper, cell.StartTime)
				lower = append(lower, cell.ShortLabel)
			}
			upper = append(upper,
				member.Summary.TotalScheduledHours.InexactFloat64(),
				member.Summary.TotalWorkedDays,
				member.Summary.TotalPaidLeaveDays,
			)
			lower = append(lower, "", "", "")

			if err := sheet.SetRow(row, upper); err != nil {
				return nil, err
			}
			if err := sheet.SetRow(row+1, lower); err != nil {
				return nil, err
			}
			row += 2
		}
		// groups are separated by one empty row, even when a group has no members
		if i < len(grid.Groups)-1 {
			row++
		}
	}

	widths := []float64{8, 10}
	for range grid.Dates {
		widths = append(widths, 5)
	}
	widths = append(widths, 10, 8, 6)
	if err := sheet.SetColWidths(widths...); err != nil {
		return nil, err
	}
	if err := sheet.FreezePanes(3, 2); err != nil {
		return nil, err
	}

	return wb.Bytes()
}
