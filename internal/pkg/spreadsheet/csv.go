package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM lets Excel detect UTF-8 when it opens the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders header and rows as a BOM-prefixed, CRLF terminated CSV.
func CSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}
