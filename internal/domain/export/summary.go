package export

import (
	"fmt"
	"time"

	"adminsuite/internal/core/record"
)

// Summary previews an export without rendering all of it.
type Summary struct {
	TotalRecords  int      `json:"totalRecords"`
	Fields        []string `json:"fields"`
	EstimatedSize string   `json:"estimatedSize"`
}

// Summarize estimates an export from its first record: the rendered size of
// one sample (headers included when requested) times the record count.
func Summarize[T any](records []T, schema *record.Schema[T], opts Options) Summary {
	cols := Columns(schema, opts)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = Title(c)
	}

	var sample int
	if len(records) > 0 {
		sample = len(ToCSV(records[:1], schema, opts))
	}

	return Summary{
		TotalRecords:  len(records),
		Fields:        titles,
		EstimatedSize: FormatSize(sample * len(records)),
	}
}

// FormatSize renders n bytes as "N bytes", "N.N KB" or "N.N MB".
func FormatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// Info describes a JSON export.
type Info struct {
	Type       string     `json:"type"`
	Format     string     `json:"format"`
	Count      int        `json:"count"`
	ExportedAt time.Time  `json:"exportedAt"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
}

// Envelope is the body of a JSON export.
type Envelope[T any] struct {
	Data       []T  `json:"data"`
	ExportInfo Info `json:"exportInfo"`
}

// NewEnvelope wraps records for a JSON export. Data is never null.
func NewEnvelope[T any](kind string, records []T, now time.Time, start, end *time.Time) Envelope[T] {
	if records == nil {
		records = []T{}
	}
	return Envelope[T]{
		Data: records,
		ExportInfo: Info{
			Type:       kind,
			Format:     "json",
			Count:      len(records),
			ExportedAt: now.UTC(),
			StartDate:  start,
			EndDate:    end,
		},
	}
}
