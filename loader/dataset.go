package loader

import (
	"fmt"
	"sort"
	"time"

	"github.com/bitmark-inc/confirm-trends/schema"
)

// Dataset is the normalized result of one refresh. It is never mutated after
// construction, so it can be shared by concurrent queries.
type Dataset struct {
	series    map[string]schema.CountryDailySeries
	countries []string
	first     time.Time
	last      time.Time
}

// NewDataset builds a dataset from per-country series, copying and sorting
// the points by date.
func NewDataset(series map[string]schema.CountryDailySeries) *Dataset {
	d := &Dataset{
		series:    make(map[string]schema.CountryDailySeries, len(series)),
		countries: make([]string, 0, len(series)),
	}

	for country, s := range series {
		points := make([]schema.DailyCount, len(s.Points))
		copy(points, s.Points)
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})

		d.series[country] = schema.CountryDailySeries{Country: country, Points: points}
		d.countries = append(d.countries, country)

		if len(points) == 0 {
			continue
		}
		if d.first.IsZero() || points[0].Date.Before(d.first) {
			d.first = points[0].Date
		}
		if last := points[len(points)-1].Date; last.After(d.last) {
			d.last = last
		}
	}
	sort.Strings(d.countries)

	return d
}

// Countries returns the sorted country identifiers.
func (d *Dataset) Countries() []string {
	countries := make([]string, len(d.countries))
	copy(countries, d.countries)
	return countries
}

// Len returns the number of countries.
func (d *Dataset) Len() int {
	return len(d.countries)
}

// Series returns a copy of a country's series. The country must match
// exactly.
func (d *Dataset) Series(country string) (schema.CountryDailySeries, error) {
	s, ok := d.series[country]
	if !ok {
		return schema.CountryDailySeries{}, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	points := make([]schema.DailyCount, len(s.Points))
	copy(points, s.Points)
	return schema.CountryDailySeries{Country: s.Country, Points: points}, nil
}

// Span returns the first and last date across all countries. Both are zero
// for an empty dataset.
func (d *Dataset) Span() (time.Time, time.Time) {
	return d.first, d.last
}

// Dates returns the number of distinct days on the dataset's longest series.
func (d *Dataset) Dates() int {
	n := 0
	for _, s := range d.series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}
