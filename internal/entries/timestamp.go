package entries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localISOLayout matches ISO-8601 date-times written without a zone offset,
// e.g. "2024-05-01T10:00:00.123456". Such values are read in the local zone.
const localISOLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is an ISO-8601 creation time. The text it was read from is kept
// and written back unchanged, so records saved by other writers survive a
// load/save cycle byte for byte.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp formats t as RFC 3339 with nanoseconds.
func NewTimestamp(t time.Time) Timestamp {
	t = t.Round(0)
	return Timestamp{Time: t, raw: t.Format(time.RFC3339Nano)}
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO-8601 date-times.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t, raw: s}, nil
	}
	t, err := time.ParseInLocation(localISOLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return Timestamp{Time: t, raw: s}, nil
}

func (ts Timestamp) String() string {
	if ts.raw != "" {
		return ts.raw
	}
	if ts.Time.IsZero() {
		return ""
	}
	return ts.Time.Format(time.RFC3339Nano)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw == "" && ts.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// UnmarshalJSON keeps text it cannot parse as the raw value with a zero time,
// so one odd timestamp never discards the rest of the store.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		*ts = Timestamp{raw: s}
		return nil
	}
	*ts = parsed
	return nil
}
