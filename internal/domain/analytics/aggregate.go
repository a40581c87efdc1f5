package analytics

import (
	"math"
	"sort"
	"time"

	"adminsuite/internal/core/record"
)

// Date keys used by period buckets.
const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// Granularity is the width of a trend bucket.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
)

// ParseGranularity returns the granularity named by s; unknown names are day.
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case ByWeek:
		return ByWeek
	case ByMonth:
		return ByMonth
	default:
		return ByDay
	}
}

// Bucket is one point of a dense time series.
type Bucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// SumBucket is one point of a dense series of summed values.
type SumBucket struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Share is a category count with its share of the whole.
type Share struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Summary is a derived total/count/average triple.
type Summary struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// SumField adds the numeric value of field across records.
// Nulls and non-numeric values contribute nothing.
func SumField[T any](records []T, field record.Field[T]) float64 {
	var total float64
	for _, rec := range records {
		if n, ok := field.Get(rec).Float(); ok {
			total += n
		}
	}
	return total
}

// Average returns total/count, or 0 when count is 0.
func Average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// GrowthRate returns the percentage change from previous to current.
// A zero baseline yields 0; it does not mean the metric was flat.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}

// Percentage returns part/whole as a whole-number percent, 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part) / float64(whole) * 100)
}

// Round1 rounds to one decimal place for presentation.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summarize reduces records to the total, count and average of field.
func Summarize[T any](records []T, field record.Field[T]) Summary {
	total := SumField(records, field)
	return Summary{
		Total:   total,
		Count:   len(records),
		Average: Average(total, len(records)),
	}
}

// Growth compares two same-shaped summaries by their totals.
func Growth(current, previous Summary) float64 {
	return GrowthRate(current.Total, previous.Total)
}

// GroupByDay counts records per UTC calendar day in [start, end].
// The result has one bucket per day, ascending, including empty days.
// Records whose date is null or malformed are left out.
func GroupByDay[T any](records []T, dateField record.Field[T], start, end time.Time) []Bucket {
	return GroupByPeriod(records, dateField, ByDay, start, end)
}

// GroupByPeriod counts records per period between start and end inclusive.
// Weeks start on Sunday and are keyed by that day; months are keyed YYYY-MM.
func GroupByPeriod[T any](records []T, dateField record.Field[T], g Granularity, start, end time.Time) []Bucket {
	keys := periodKeys(g, start, end)
	buckets := make([]Bucket, len(keys))
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		buckets[i] = Bucket{Date: k}
		pos[k] = i
	}

	for _, rec := range records {
		ts, ok := dateField.Get(rec).Timestamp()
		if !ok {
			continue
		}
		if i, ok := pos[periodKey(g, ts)]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// SumByDay sums valueField per UTC day in [start, end], dense and ascending.
func SumByDay[T any](records []T, dateField, valueField record.Field[T], start, end time.Time) []SumBucket {
	keys := periodKeys(ByDay, start, end)
	buckets := make([]SumBucket, len(keys))
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		buckets[i] = SumBucket{Date: k}
		pos[k] = i
	}

	for _, rec := range records {
		ts, ok := dateField.Get(rec).Timestamp()
		if !ok {
			continue
		}
		i, ok := pos[periodKey(ByDay, ts)]
		if !ok {
			continue
		}
		if n, ok := valueField.Get(rec).Float(); ok {
			buckets[i].Total += n
		}
	}
	return buckets
}

// Breakdown counts records per distinct text value of field, with each
// count's share of all records. Ordered by count desc, then key.
func Breakdown[T any](records []T, field record.Field[T]) []Share {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[field.Get(rec).Text()]++
	}

	shares := make([]Share, 0, len(counts))
	for k, c := range counts {
		shares = append(shares, Share{Key: k, Count: c, Percentage: Percentage(c, len(records))})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Key < shares[j].Key
	})
	return shares
}

// DayCount returns the number of UTC calendar days in [start, end], or 0.
func DayCount(start, end time.Time) int {
	s, e := truncateDay(start), truncateDay(end)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func periodStart(g Granularity, t time.Time) time.Time {
	d := truncateDay(t)
	switch g {
	case ByWeek:
		return d.AddDate(0, 0, -int(d.Weekday()))
	case ByMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

func periodKey(g Granularity, t time.Time) string {
	p := periodStart(g, t)
	if g == ByMonth {
		return p.Format(monthKeyLayout)
	}
	return p.Format(dayKeyLayout)
}

func periodKeys(g Granularity, start, end time.Time) []string {
	if truncateDay(start).After(truncateDay(end)) {
		return nil
	}

	last := periodStart(g, end)
	keys := make([]string, 0, DayCount(start, end))
	for cur := periodStart(g, start); !cur.After(last); {
		keys = append(keys, periodKey(g, cur))
		switch g {
		case ByWeek:
			cur = cur.AddDate(0, 0, 7)
		case ByMonth:
			cur = cur.AddDate(0, 1, 0)
		default:
			cur = cur.AddDate(0, 0, 1)
		}
	}
	return keys
}
