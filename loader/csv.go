package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/confirm-trends/schema"
)

var (
	countryHeaders = map[string]bool{
		"country/region": true,
		"country_region": true,
		"country":        true,
	}
	regionHeaders = map[string]bool{
		"province/state": true,
		"province_state": true,
		"province":       true,
		"state":          true,
	}
)

// ParseCSV reads a wide-format confirmed-case feed. Identity columns are
// located by header name, every other column is kept in Columns. Only cells
// under a date header are parsed. Blank, non-integer or negative cells are
// treated as absent.
func ParseCSV(r io.Reader) (schema.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return schema.RawTable{}, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}
	if nil != err {
		return schema.RawTable{}, err
	}

	countryIdx, regionIdx := -1, -1
	valueIdx := make([]int, 0, len(header))
	dateCol := make([]bool, 0, len(header))
	columns := make([]string, 0, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.Trim(h, "\ufeff\"")))
		switch {
		case countryHeaders[key] && countryIdx == -1:
			countryIdx = i
		case regionHeaders[key] && regionIdx == -1:
			regionIdx = i
		default:
			valueIdx = append(valueIdx, i)
			columns = append(columns, strings.TrimSpace(h))
			_, ok := ParseDate(strings.TrimSpace(h))
			dateCol = append(dateCol, ok)
		}
	}

	if countryIdx == -1 {
		return schema.RawTable{}, fmt.Errorf("%w: no country column", ErrMalformedInput)
	}

	table := schema.RawTable{Columns: columns}
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if nil != err {
			return schema.RawTable{}, err
		}

		row := schema.RawRow{
			Country: field(record, countryIdx),
			Region:  field(record, regionIdx),
			Values:  make([]int64, len(valueIdx)),
		}
		for j, idx := range valueIdx {
			if !dateCol[j] {
				continue
			}
			cell := field(record, idx)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseInt(cell, 10, 64)
			if nil != err || v < 0 {
				skipped++
				continue
			}
			row.Values[j] = v
		}
		table.Rows = append(table.Rows, row)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"rows":    len(table.Rows),
		"columns": len(table.Columns),
		"skipped": skipped,
	}).Debug("parse csv")

	return table, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(strings.Trim(record[idx], "\""))
}
