package schema

import "time"

const (
	SeriesCollection  = "confirm_series"
	RefreshCollection = "confirm_refresh"
)

// RawRow is one region row of the wide-format feed. Values are aligned with
// RawTable.Columns; a row shorter than the header is zero-filled.
type RawRow struct {
	Country string  `json:"country"`
	Region  string  `json:"region"`
	Values  []int64 `json:"values"`
}

// RawTable is the region x date matrix of cumulative confirmed counts as
// delivered by the feed. Columns holds the raw date headers.
type RawTable struct {
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}

// DailyCount is the cumulative confirmed count of a country on one day.
type DailyCount struct {
	Date  time.Time `json:"date" bson:"date"`
	Total int64     `json:"total" bson:"total"`
}

// CountryDailySeries is the national cumulative series of a country, sorted
// ascending by date.
type CountryDailySeries struct {
	Country string       `json:"country" bson:"country"`
	Points  []DailyCount `json:"points" bson:"points"`
}

// DerivedSeries holds four index-aligned views of a country within a query
// range.
type DerivedSeries struct {
	Dates         []time.Time `json:"dates"`
	Cumulative    []int64     `json:"cumulative_total"`
	DailyNew      []int64     `json:"daily_new"`
	DailySmoothed []float64   `json:"daily_new_smoothed"`
	GrowthRate    []float64   `json:"growth_rate_pct"`
}

// Len returns the number of days in the series.
func (d DerivedSeries) Len() int {
	return len(d.Dates)
}

type SummaryMetrics struct {
	Total        int64   `json:"total"`
	LatestDaily  int64   `json:"latest_daily"`
	AvgDaily     float64 `json:"avg_daily"`
	PeakDaily    int64   `json:"peak_daily"`
	LatestGrowth float64 `json:"latest_growth"`
}

// Refresh describes one published dataset.
type Refresh struct {
	ID        string    `json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Countries int       `json:"countries" bson:"countries"`
	Dates     int       `json:"dates" bson:"dates"`
	FirstDate time.Time `json:"first_date" bson:"first_date"`
	LastDate  time.Time `json:"last_date" bson:"last_date"`
}

// StoredSeries is the mongo document of one country in one refresh.
type StoredSeries struct {
	RefreshID  string       `bson:"refresh_id"`
	Country    string       `bson:"country"`
	Points     []DailyCount `bson:"points"`
	UpdateTime int64        `bson:"update_time"`
}
