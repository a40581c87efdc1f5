package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/record"
)

type sale struct {
	date    string
	revenue *float64
	channel string
}

var (
	saleDate = record.Field[sale]{Key: "date", Kind: record.KindTime, Get: func(s sale) record.Value {
		return record.String(s.date)
	}}
	saleRevenue = record.Field[sale]{Key: "revenue", Kind: record.KindNumber, Get: func(s sale) record.Value {
		if s.revenue == nil {
			return record.Null()
		}
		return record.Number(*s.revenue)
	}}
	saleChannel = record.Field[sale]{Key: "channel", Kind: record.KindString, Get: func(s sale) record.Value {
		return record.String(s.channel)
	}}
)

func f64(v float64) *float64 { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSumField(t *testing.T) {
	rows := []sale{{revenue: f64(10)}, {revenue: nil}, {revenue: f64(2.5)}}
	assert.InDelta(t, 12.5, SumField(rows, saleRevenue), 1e-9)
	assert.Zero(t, SumField(nil, saleRevenue))

	// Non-numeric values contribute nothing.
	assert.Zero(t, SumField([]sale{{channel: "web"}}, saleChannel))
}

func TestAverage_MatchesMean(t *testing.T) {
	values := []float64{3, 7, 11, 19}
	rows := make([]sale, len(values))
	var mean float64
	for i, v := range values {
		rows[i] = sale{revenue: f64(v)}
		mean += v
	}
	mean /= float64(len(values))

	assert.InDelta(t, mean, Average(SumField(rows, saleRevenue), len(rows)), 1e-9)
	assert.Zero(t, Average(100, 0))
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"increase", 150, 100, 50},
		{"decrease", 50, 100, -50},
		{"flat", 100, 100, 0},
		{"zero baseline", 42, 0, 0},
		{"both zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GrowthRate(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestSummarizeAndGrowth(t *testing.T) {
	cur := Summarize([]sale{{revenue: f64(30)}, {revenue: f64(30)}}, saleRevenue)
	prev := Summarize([]sale{{revenue: f64(40)}}, saleRevenue)

	assert.Equal(t, Summary{Total: 60, Count: 2, Average: 30}, cur)
	assert.InDelta(t, 50, Growth(cur, prev), 1e-9)
	assert.Equal(t, Summary{}, Summarize[sale](nil, saleRevenue))
}

func TestGroupByDay_DenseSeries(t *testing.T) {
	rows := []sale{
		{date: "2024-01-01"},
		{date: "2024-01-03"},
	}

	got := GroupByDay(rows, saleDate, day(2024, 1, 1), day(2024, 1, 3))
	want := []Bucket{
		{Date: "2024-01-01", Count: 1},
		{Date: "2024-01-02", Count: 0},
		{Date: "2024-01-03", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupByDay mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByDay_SkipsMalformedAndOutOfRange(t *testing.T) {
	rows := []sale{
		{date: "garbage"},
		{date: ""},
		{date: "2023-12-31"},
		{date: "2024-01-02T23:59:59Z"},
		{date: "2024-01-02T10:00:00+05:00"},
	}

	got := GroupByDay(rows, saleDate, day(2024, 1, 1), day(2024, 1, 2))
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Count)
	assert.Equal(t, 2, got[1].Count)
}

func TestGroupByDay_Length(t *testing.T) {
	start := day(2024, 2, 20)
	for _, n := range []int{1, 7, 30, 90} {
		end := start.AddDate(0, 0, n-1)
		got := GroupByDay[sale](nil, saleDate, start, end)
		assert.Len(t, got, n)
		assert.Equal(t, n, DayCount(start, end))
	}

	assert.Empty(t, GroupByDay[sale](nil, saleDate, day(2024, 1, 5), day(2024, 1, 1)))
	assert.Zero(t, DayCount(day(2024, 1, 5), day(2024, 1, 1)))
}

func TestGroupByPeriod(t *testing.T) {
	rows := []sale{
		{date: "2024-01-01"}, // Monday, week of 2023-12-31
		{date: "2024-01-06"}, // Saturday, same week
		{date: "2024-01-07"}, // Sunday, next week
		{date: "2024-02-10"},
	}

	weeks := GroupByPeriod(rows, saleDate, ByWeek, day(2024, 1, 1), day(2024, 1, 10))
	assert.Equal(t, []Bucket{
		{Date: "2023-12-31", Count: 2},
		{Date: "2024-01-07", Count: 1},
	}, weeks)

	months := GroupByPeriod(rows, saleDate, ByMonth, day(2024, 1, 15), day(2024, 3, 1))
	assert.Equal(t, []Bucket{
		{Date: "2024-01", Count: 3},
		{Date: "2024-02", Count: 1},
		{Date: "2024-03", Count: 0},
	}, months)
}

func TestSumByDay(t *testing.T) {
	rows := []sale{
		{date: "2024-01-01", revenue: f64(10)},
		{date: "2024-01-01", revenue: f64(5)},
		{date: "2024-01-02", revenue: nil},
		{date: "bad", revenue: f64(99)},
	}

	got := SumByDay(rows, saleDate, saleRevenue, day(2024, 1, 1), day(2024, 1, 2))
	assert.Equal(t, []SumBucket{{Date: "2024-01-01", Total: 15}, {Date: "2024-01-02", Total: 0}}, got)
}

func TestBreakdown(t *testing.T) {
	rows := []sale{{channel: "web"}, {channel: "store"}, {channel: "web"}, {channel: "app"}}

	got := Breakdown(rows, saleChannel)
	assert.Equal(t, []Share{
		{Key: "web", Count: 2, Percentage: 50},
		{Key: "app", Count: 1, Percentage: 25},
		{Key: "store", Count: 1, Percentage: 25},
	}, got)
	assert.Empty(t, Breakdown[sale](nil, saleChannel))
}

func TestParseGranularity(t *testing.T) {
	assert.Equal(t, ByWeek, ParseGranularity("week"))
	assert.Equal(t, ByMonth, ParseGranularity("month"))
	assert.Equal(t, ByDay, ParseGranularity("year"))
}
