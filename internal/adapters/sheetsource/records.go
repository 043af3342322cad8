// Package sheetsource loads customer records from spreadsheet backends.
// The Google Sheets adapter reads a shared online sheet; the workbook
// adapter reads .xlsx files from a local directory. Both feed the same
// table shape through recordsFromTable.
package sheetsource

import (
	"fmt"
	"strings"

	"route-planner-service/internal/domain"
)

const (
	nameColumn    = "Name"
	addressColumn = "Address"
)

// recordsFromTable converts a raw cell table into customer records.
// The first row is the header and must contain Name and Address
// columns, matched exactly. Rows shorter than the header are padded
// with empty cells; rows with neither a name nor an address are
// skipped. A table with a valid header but no usable rows is an error.
func recordsFromTable(rows [][]string) ([]domain.CustomerRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	header := rows[0]
	nameIdx, addrIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			if nameIdx == -1 {
				nameIdx = i
			}
		case addressColumn:
			if addrIdx == -1 {
				addrIdx = i
			}
		}
	}

	var missing []string
	if nameIdx == -1 {
		missing = append(missing, nameColumn)
	}
	if addrIdx == -1 {
		missing = append(missing, addressColumn)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	records := make([]domain.CustomerRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, nameIdx))
		addr := strings.TrimSpace(cell(row, addrIdx))
		if name == "" && addr == "" {
			continue
		}
		records = append(records, domain.CustomerRecord{Name: name, Address: addr})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("sheet has no customer rows")
	}

	return records, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
