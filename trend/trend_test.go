package trend

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/confirm-trends/loader"
	"github.com/bitmark-inc/confirm-trends/schema"
)

func jan(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func series(totals ...int64) schema.CountryDailySeries {
	points := make([]schema.DailyCount, len(totals))
	for i, t := range totals {
		points[i] = schema.DailyCount{Date: jan(i + 1), Total: t}
	}
	return schema.CountryDailySeries{Country: "X", Points: points}
}

type changeRateTestCase struct {
	new                float64
	old                float64
	expectedChangeRate float64
}

func TestChangeRate(t *testing.T) {
	cases := []changeRateTestCase{
		{0, 0, 0},
		{10, 10, 0},
		{0, 10, -100},
		{10, 0, 0},
		{3, 5, -40},
		{3, 2, 50},
	}
	for _, c := range cases {
		assert.Equal(t, c.expectedChangeRate, ChangeRate(c.new, c.old), "%v -> %v", c.old, c.new)
	}
}

func TestComputeFullRange(t *testing.T) {
	derived, summary, err := Compute(series(10, 15, 15, 30), jan(1), jan(4))
	assert.Nil(t, err)

	assert.Equal(t, []time.Time{jan(1), jan(2), jan(3), jan(4)}, derived.Dates)
	assert.Equal(t, []int64{10, 15, 15, 30}, derived.Cumulative)
	assert.Equal(t, []int64{0, 5, 0, 15}, derived.DailyNew)
	assert.Equal(t, []float64{0, 0, -100, 0}, derived.GrowthRate)
	assert.Equal(t, []float64{0, 2.5, 5.0 / 3, 5}, derived.DailySmoothed)

	assert.Equal(t, schema.SummaryMetrics{
		Total:        30,
		LatestDaily:  15,
		AvgDaily:     5,
		PeakDaily:    15,
		LatestGrowth: 0,
	}, summary)
}

func TestComputeSinglePoint(t *testing.T) {
	derived, summary, err := Compute(series(42), jan(1), jan(1))
	assert.Nil(t, err)

	assert.Equal(t, []int64{0}, derived.DailyNew)
	assert.Equal(t, []float64{0}, derived.DailySmoothed)
	assert.Equal(t, []float64{0}, derived.GrowthRate)
	assert.Equal(t, int64(42), summary.Total)
	assert.Equal(t, int64(0), summary.PeakDaily)
}

func TestComputeSubRangeUsesTruePredecessor(t *testing.T) {
	s := series(1, 3, 6, 10, 15, 21, 28, 36, 45, 55)

	derived, summary, err := Compute(s, jan(8), jan(9))
	assert.Nil(t, err)

	assert.Equal(t, []time.Time{jan(8), jan(9)}, derived.Dates)
	assert.Equal(t, []int64{8, 9}, derived.DailyNew)

	// daily over the full series is 0,2,3,4,5,6,7,8,9,10
	assert.InDelta(t, float64(2+3+4+5+6+7+8)/7, derived.DailySmoothed[0], 1e-9)
	assert.InDelta(t, float64(3+4+5+6+7+8+9)/7, derived.DailySmoothed[1], 1e-9)
	assert.InDelta(t, float64(8-7)/7*100, derived.GrowthRate[0], 1e-9)
	assert.InDelta(t, 12.5, derived.GrowthRate[1], 1e-9)

	assert.Equal(t, int64(45), summary.Total)
	assert.Equal(t, int64(9), summary.PeakDaily)
	assert.Equal(t, 8.5, summary.AvgDaily)
}

func TestComputeSmoothingWindow(t *testing.T) {
	s := series(0, 4, 4, 10, 11, 30, 30, 31, 50, 51, 51, 70)
	derived, _, err := Compute(s, jan(1), jan(12))
	assert.Nil(t, err)

	for i := range derived.DailyNew {
		lo := i - 6
		if lo < 0 {
			lo = 0
		}
		var sum int64
		for _, v := range derived.DailyNew[lo : i+1] {
			sum += v
		}
		assert.InDelta(t, float64(sum)/float64(i+1-lo), derived.DailySmoothed[i], 1e-9, "index %d", i)
	}
}

func TestComputePrefixSumReconstructsTotal(t *testing.T) {
	s := series(5, 7, 7, 6, 20, 20, 19, 40)
	derived, _, err := Compute(s, jan(1), jan(8))
	assert.Nil(t, err)

	assert.Equal(t, int64(-1), derived.DailyNew[3], "corrections are not clipped")

	running := derived.Cumulative[0]
	for i := 1; i < derived.Len(); i++ {
		running += derived.DailyNew[i]
		assert.Equal(t, derived.Cumulative[i], running)
	}
}

func TestComputeGrowthAlwaysFinite(t *testing.T) {
	s := series(0, 0, 0, 3, 3, 3, 9, 9, 8, 8)
	derived, summary, err := Compute(s, jan(1), jan(10))
	assert.Nil(t, err)

	for i, g := range derived.GrowthRate {
		assert.False(t, math.IsNaN(g) || math.IsInf(g, 0), "index %d", i)
	}
	for i, v := range derived.DailySmoothed {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d", i)
	}
	assert.False(t, math.IsNaN(summary.LatestGrowth))
}

func TestComputeOutsideSpan(t *testing.T) {
	s := series(1, 2, 3)

	derived, summary, err := Compute(s, jan(10), jan(20))
	assert.Nil(t, err)
	assert.Equal(t, 0, derived.Len())
	assert.Empty(t, derived.DailyNew)
	assert.Equal(t, schema.SummaryMetrics{}, summary)

	derived, summary, err = Compute(schema.CountryDailySeries{Country: "X"}, jan(1), jan(2))
	assert.Nil(t, err)
	assert.Equal(t, 0, derived.Len())
	assert.Equal(t, schema.SummaryMetrics{}, summary)
}

func TestComputeAlignedLengths(t *testing.T) {
	derived, _, err := Compute(series(1, 2, 4, 8, 16), jan(2), jan(30))
	assert.Nil(t, err)

	assert.Equal(t, 4, derived.Len())
	assert.Len(t, derived.Cumulative, 4)
	assert.Len(t, derived.DailyNew, 4)
	assert.Len(t, derived.DailySmoothed, 4)
	assert.Len(t, derived.GrowthRate, 4)
}

func TestComputeRejectsReversedRange(t *testing.T) {
	derived, summary, err := Compute(series(1, 2, 3), jan(3), jan(1))
	assert.True(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, 0, derived.Len())
	assert.Equal(t, schema.SummaryMetrics{}, summary)
}

func TestComputeTruncatesTimeOfDay(t *testing.T) {
	start := jan(2).Add(15 * time.Hour)
	end := jan(3).Add(time.Hour)

	derived, _, err := Compute(series(1, 2, 3, 4), start, end)
	assert.Nil(t, err)
	assert.Equal(t, []time.Time{jan(2), jan(3)}, derived.Dates)
}

func TestQuery(t *testing.T) {
	dataset := loader.NewDataset(map[string]schema.CountryDailySeries{
		"X": series(10, 15, 15, 30),
	})

	_, summary, err := Query(dataset, "X", jan(1), jan(4))
	assert.Nil(t, err)
	assert.Equal(t, int64(30), summary.Total)

	_, _, err = Query(dataset, "Y", jan(1), jan(4))
	assert.True(t, errors.Is(err, loader.ErrUnknownCountry))
}

func TestDefaultRange(t *testing.T) {
	long := make([]int64, 120)
	dataset := loader.NewDataset(map[string]schema.CountryDailySeries{
		"X": series(long...),
	})
	start, end := DefaultRange(dataset)
	assert.Equal(t, jan(120), end)
	assert.Equal(t, jan(30), start)

	short := loader.NewDataset(map[string]schema.CountryDailySeries{
		"X": series(1, 2, 3),
	})
	start, end = DefaultRange(short)
	assert.Equal(t, jan(1), start)
	assert.Equal(t, jan(3), end)
}
