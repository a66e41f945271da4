package domain

import (
	"fmt"
	"strings"
	"time"
)

// Session log rows predating 2022 carry bogus clock values and are skipped.
const minSessionYear = 2022

const sessionFieldCount = 5

// SessionRecord is one user's start/end activity window from the session log.
// EnvironmentID and ObjectID are carried from the input but unused by the
// occupancy report.
type SessionRecord struct {
	Start         time.Time
	End           time.Time
	UserID        string
	EnvironmentID string
	ObjectID      string
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseSessionRecord maps one raw row onto the fixed five-field schema
// start_timestamp,end_timestamp,user_id,environment_id,object_id. Extra
// trailing fields are ignored; a short row is rejected rather than padded.
func ParseSessionRecord(fields []string) (SessionRecord, error) {
	if len(fields) < sessionFieldCount {
		return SessionRecord{}, fmt.Errorf("%w: got %d of %d fields", ErrMalformedRow, len(fields), sessionFieldCount)
	}

	start, err := ParseTimestamp(fields[0])
	if err != nil {
		return SessionRecord{}, fmt.Errorf("start_timestamp: %w", err)
	}

	end, err := ParseTimestamp(fields[1])
	if err != nil {
		return SessionRecord{}, fmt.Errorf("end_timestamp: %w", err)
	}

	return SessionRecord{
		Start:         start,
		End:           end,
		UserID:        fields[2],
		EnvironmentID: fields[3],
		ObjectID:      fields[4],
	}, nil
}

// ParseTimestamp parses ISO-8601-like text as a naive wall-clock date-time.
// Any trailing +offset is discarded before parsing. Fractional seconds are
// accepted.
func ParseTimestamp(raw string) (time.Time, error) {
	text := raw
	if i := strings.IndexByte(text, '+'); i >= 0 {
		text = text[:i]
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("parse timestamp %q", raw)
}

// FormatTimestamp renders a timestamp for the report: seconds precision, with
// microseconds appended only when the value carries sub-second precision.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond() != 0 {
		return t.Format("2006-01-02 15:04:05.000000")
	}

	return t.Format("2006-01-02 15:04:05")
}

// Valid reports whether both timestamps fall inside the reporting range.
// Invalid records contribute no events at all.
func (r SessionRecord) Valid() bool {
	return r.Start.Year() >= minSessionYear && r.End.Year() >= minSessionYear
}
