// Package audit records account changes: who changed which record, when,
// and the field-level difference.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Action is the kind of change.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one recorded change.
type Entry struct {
	ID         int64           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     Action          `json:"action"`
	UserID     string          `json:"userId,omitempty"` // empty for self-registration
	Changes    json.RawMessage `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Log stores entries and reads them back.
type Log interface {
	// Record appends e. It joins the transaction carried by ctx.
	Record(ctx context.Context, e Entry) error

	// History returns up to limit entries of one entity, newest first.
	History(ctx context.Context, entityType, entityID string, limit int) ([]Entry, error)
}

// FieldChange is the old and new value of one field. Redacted marks a
// secret whose values are never stored.
type FieldChange struct {
	From     any  `json:"from,omitempty"`
	To       any  `json:"to,omitempty"`
	Redacted bool `json:"redacted,omitempty"`
}

// Changes maps JSON field names to their change.
type Changes map[string]FieldChange

// Diff compares the JSON forms of before and after. A nil side records a
// create or a delete; every field of the other side is then reported.
// Fields named in ignore are skipped.
func Diff(before, after any, ignore ...string) (Changes, error) {
	from, err := fields(before)
	if err != nil {
		return nil, err
	}
	to, err := fields(after)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(ignore))
	for _, f := range ignore {
		skip[f] = true
	}

	out := Changes{}
	for k, v := range to {
		if skip[k] {
			continue
		}
		if old, ok := from[k]; !ok || !reflect.DeepEqual(old, v) {
			out[k] = FieldChange{From: old, To: v}
		}
	}
	for k, v := range from {
		if _, ok := to[k]; !ok && !skip[k] {
			out[k] = FieldChange{From: v}
		}
	}
	return out, nil
}

// JSON encodes the change set; keys come out sorted.
func (c Changes) JSON() (json.RawMessage, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode changes: %w", err)
	}
	return raw, nil
}

func fields(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	return out, nil
}
