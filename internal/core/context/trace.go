package context

import (
	"context"
	"encoding/hex"

	"github.com/google/uuid"
)

// Trace correlates the log lines of one unit of work: an API request or an
// adminctl run. TraceID and SpanID mirror the OpenTelemetry span when one is
// recording.
type Trace struct {
	TraceID   string
	SpanID    string
	RequestID string
}

type traceKey struct{}

// WithTrace stores t in ctx.
func WithTrace(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// TraceFrom returns the trace stored in ctx.
func TraceFrom(ctx context.Context) (Trace, bool) {
	t, ok := ctx.Value(traceKey{}).(Trace)
	return t, ok
}

// RequestID returns the request ID of ctx, or "".
func RequestID(ctx context.Context) string {
	t, _ := TraceFrom(ctx)
	return t.RequestID
}

// NewTrace returns a trace with fresh random IDs, for work that did not
// arrive with one. The span ID is 16 hex characters as in W3C trace context.
func NewTrace() Trace {
	span := uuid.New()
	return Trace{
		TraceID:   uuid.NewString(),
		SpanID:    hex.EncodeToString(span[:8]),
		RequestID: uuid.NewString(),
	}
}
