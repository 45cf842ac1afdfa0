package spreadsheet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"

	// maxSheetNameLen is the Excel limit on sheet names, counted in characters.
	maxSheetNameLen = 31
	defaultSheet    = "Sheet1"
)

// Document is a rendered file ready to be sent to the client.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Workbook wraps an excelize file with the styles shared by every report.
type Workbook struct {
	f           *excelize.File
	headerStyle int
	titleStyle  int
	totalStyle  int
	// sheets is keyed by lower-cased name; Excel compares sheet names case-insensitively.
	sheets map[string]bool
}

func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create title style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create total style: %w", err)
	}

	return &Workbook{
		f:           f,
		headerStyle: headerStyle,
		titleStyle:  titleStyle,
		totalStyle:  totalStyle,
		sheets:      make(map[string]bool),
	}, nil
}

// SheetName makes name safe for Excel: forbidden characters are replaced,
// surrounding quotes are dropped and the result is cut to 31 characters.
func SheetName(name string) string {
	replacer := strings.NewReplacer(
		":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
	)
	name = strings.TrimSpace(strings.Trim(strings.TrimSpace(replacer.Replace(name)), "'"))
	if name == "" {
		name = "Sheet"
	}
	if utf8.RuneCountInString(name) > maxSheetNameLen {
		name = strings.TrimRight(string([]rune(name)[:maxSheetNameLen]), "'")
	}
	return name
}

// Sheet creates a new sheet. Names are made safe and de-duplicated with a numeric suffix.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	base := SheetName(name)
	unique := base
	for i := 2; w.sheets[strings.ToLower(unique)]; i++ {
		suffix := fmt.Sprintf("(%d)", i)
		runes := []rune(base)
		if len(runes)+utf8.RuneCountInString(suffix) > maxSheetNameLen {
			runes = runes[:maxSheetNameLen-utf8.RuneCountInString(suffix)]
		}
		unique = string(runes) + suffix
	}

	// The first sheet takes over the default one so no name can collide with it.
	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(defaultSheet, unique); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", unique, err)
		}
	} else if _, err := w.f.NewSheet(unique); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", unique, err)
	}
	w.sheets[strings.ToLower(unique)] = true

	return &Sheet{wb: w, name: unique}, nil
}

// Bytes renders the workbook and releases it. The workbook must not be used afterwards.
func (w *Workbook) Bytes() ([]byte, error) {
	defer w.f.Close()

	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Sheet writes rows into one worksheet. Rows and columns are 1-based.
type Sheet struct {
	wb   *Workbook
	name string
}

func (s *Sheet) Name() string { return s.name }

// SetRow writes values starting at column A of row.
func (s *Sheet) SetRow(row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return s.wb.f.SetSheetRow(s.name, cell, &values)
}

// SetHeader writes values at row and applies the header style to them.
func (s *Sheet) SetHeader(row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := s.SetRow(row, cells); err != nil {
		return err
	}
	return s.styleRow(row, len(values), s.wb.headerStyle)
}

// SetTitle writes a single bold cell at A{row}.
func (s *Sheet) SetTitle(row int, title string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := s.wb.f.SetCellValue(s.name, cell, title); err != nil {
		return err
	}
	return s.wb.f.SetCellStyle(s.name, cell, cell, s.wb.titleStyle)
}

// SetTotalRow writes values and marks the row as a total line.
func (s *Sheet) SetTotalRow(row int, values []interface{}) error {
	if err := s.SetRow(row, values); err != nil {
		return err
	}
	return s.styleRow(row, len(values), s.wb.totalStyle)
}

func (s *Sheet) styleRow(row, width, style int) error {
	if width == 0 {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return s.wb.f.SetCellStyle(s.name, from, to, style)
}

// SetColWidths sets the width of columns A, B, ... in order.
func (s *Sheet) SetColWidths(widths ...float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.wb.f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// FreezePanes keeps the first rows and cols visible while scrolling.
func (s *Sheet) FreezePanes(rows, cols int) error {
	topLeft, err := excelize.CoordinatesToCellName(cols+1, rows+1)
	if err != nil {
		return err
	}
	return s.wb.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      rows,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}
