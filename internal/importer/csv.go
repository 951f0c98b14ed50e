package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"kpidash/internal/parser"
)

const utf8BOM = "\ufeff"

// parseCSV 首行为表头，其余为数据行
func parseCSV(r io.Reader) (*parser.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("csv file is empty")
	}

	// Excel 另存为 CSV 时会带 BOM
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return parser.BuildRecords(header, rows[1:], 2)
}
