package loader

import (
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/confirm-trends/schema"
)

const (
	logPrefix = "loader"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrUnknownCountry = errors.New("unknown country")
)

type dateColumn struct {
	index int
	date  time.Time
}

// dateAxis resolves the date columns of a table in ascending order.
// Unparseable headers are skipped. When two headers name the same day the
// leftmost one wins.
func dateAxis(columns []string) []dateColumn {
	axis := make([]dateColumn, 0, len(columns))
	seen := make(map[time.Time]bool, len(columns))
	for i, c := range columns {
		d, ok := ParseDate(c)
		if !ok {
			continue
		}
		if seen[d] {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"column": c,
			}).Warn("duplicate date column")
			continue
		}
		seen[d] = true
		axis = append(axis, dateColumn{index: i, date: d})
	}

	sort.SliceStable(axis, func(i, j int) bool {
		return axis[i].date.Before(axis[j].date)
	})
	return axis
}

// Normalize aggregates the region rows of a raw table into one cumulative
// daily series per country. Rows without a country are dropped, absent and
// negative cells count as 0.
func Normalize(raw schema.RawTable) (*Dataset, error) {
	axis := dateAxis(raw.Columns)
	if len(axis) == 0 {
		return nil, fmt.Errorf("%w: no parseable date column in %d columns", ErrMalformedInput, len(raw.Columns))
	}

	totals := make(map[string][]int64)
	dropped := 0
	for _, row := range raw.Rows {
		if row.Country == "" {
			dropped++
			continue
		}

		sums, ok := totals[row.Country]
		if !ok {
			sums = make([]int64, len(axis))
			totals[row.Country] = sums
		}

		for i, col := range axis {
			if col.index < len(row.Values) && row.Values[col.index] > 0 {
				sums[i] += row.Values[col.index]
			}
		}
	}

	series := make(map[string]schema.CountryDailySeries, len(totals))
	for country, sums := range totals {
		points := make([]schema.DailyCount, len(axis))
		for i, col := range axis {
			points[i] = schema.DailyCount{Date: col.date, Total: sums[i]}
		}
		series[country] = schema.CountryDailySeries{Country: country, Points: points}
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"rows":      len(raw.Rows),
		"dropped":   dropped,
		"countries": len(series),
		"dates":     len(axis),
	}).Info("normalize confirm table")

	return NewDataset(series), nil
}
