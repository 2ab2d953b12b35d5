// Package trend derives the daily statistics of a country's cumulative
// confirmed series over a date range.
package trend

import (
	"errors"
	"fmt"
	"time"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
)

const (
	// SmoothingWindow is the trailing window of the daily average.
	SmoothingWindow = 7

	// DefaultRangeDays is the length of the range shown when none is given.
	DefaultRangeDays = 90
)

var (
	ErrInvalidRange = errors.New("start date is after end date")
)

// Compute derives the series and summary of the days of s within
// [start, end]. Deltas, smoothing and growth are taken over the full series
// before slicing, so the first day of the range is measured against its true
// predecessor.
func Compute(s schema.CountryDailySeries, start, end time.Time) (schema.DerivedSeries, schema.SummaryMetrics, error) {
	start, end = loader.Day(start), loader.Day(end)
	if start.After(end) {
		return schema.DerivedSeries{}, schema.SummaryMetrics{},
			fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	n := len(s.Points)
	daily := make([]int64, n)
	for i := 1; i < n; i++ {
		daily[i] = s.Points[i].Total - s.Points[i-1].Total
	}

	from, to := n, n
	for i, p := range s.Points {
		if p.Date.Before(start) {
			continue
		}
		if p.Date.After(end) {
			break
		}
		if from == n {
			from = i
		}
		to = i + 1
	}

	derived := schema.DerivedSeries{
		Dates:         make([]time.Time, 0, to-from),
		Cumulative:    make([]int64, 0, to-from),
		DailyNew:      make([]int64, 0, to-from),
		DailySmoothed: make([]float64, 0, to-from),
		GrowthRate:    make([]float64, 0, to-from),
	}

	for i := from; i < to; i++ {
		lo := i - SmoothingWindow + 1
		if lo < 0 {
			lo = 0
		}

		growth := float64(0)
		if i > 0 {
			growth = ChangeRate(float64(daily[i]), float64(daily[i-1]))
		}

		derived.Dates = append(derived.Dates, s.Points[i].Date)
		derived.Cumulative = append(derived.Cumulative, s.Points[i].Total)
		derived.DailyNew = append(derived.DailyNew, daily[i])
		derived.DailySmoothed = append(derived.DailySmoothed, mean(daily[lo:i+1]))
		derived.GrowthRate = append(derived.GrowthRate, growth)
	}

	return derived, Summarize(derived), nil
}

// Summarize reduces a derived series to its scalar metrics. An empty series
// summarizes to zero.
func Summarize(d schema.DerivedSeries) schema.SummaryMetrics {
	n := d.Len()
	if n == 0 {
		return schema.SummaryMetrics{}
	}

	peak := d.DailyNew[0]
	for _, v := range d.DailyNew[1:] {
		if v > peak {
			peak = v
		}
	}

	return schema.SummaryMetrics{
		Total:        d.Cumulative[n-1],
		LatestDaily:  d.DailyNew[n-1],
		AvgDaily:     mean(d.DailyNew),
		PeakDaily:    peak,
		LatestGrowth: d.GrowthRate[n-1],
	}
}

// Query looks a country up in the dataset and computes its range.
func Query(d *loader.Dataset, country string, start, end time.Time) (schema.DerivedSeries, schema.SummaryMetrics, error) {
	s, err := d.Series(country)
	if nil != err {
		return schema.DerivedSeries{}, schema.SummaryMetrics{}, err
	}

	return Compute(s, start, end)
}

// DefaultRange returns the last DefaultRangeDays days ending on the
// dataset's last date, clipped to its first date.
func DefaultRange(d *loader.Dataset) (time.Time, time.Time) {
	first, last := d.Span()
	start := last.AddDate(0, 0, -DefaultRangeDays)
	if start.Before(first) {
		start = first
	}
	return start, last
}
