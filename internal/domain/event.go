package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Deltas carried by session boundary events.
const (
	SessionStart = 1
	SessionEnd   = -1
)

// Event is a single occupancy change at a point in time.
type Event struct {
	Time  time.Time
	Delta int
	User  string
}

// BuildEvents expands valid session records into start and end events with
// display names resolved once, sorted ascending by the compound key
// (time, delta, user). The key is total over distinct events, so the order is
// deterministic for identical inputs; ends sort ahead of starts that share a
// timestamp.
func BuildEvents(records []SessionRecord, users UserDirectory) []Event {
	events := make([]Event, 0, 2*len(records))
	for _, record := range records {
		if !record.Valid() {
			continue
		}

		name := users.DisplayName(record.UserID)
		events = append(events,
			Event{Time: record.Start, Delta: SessionStart, User: name},
			Event{Time: record.End, Delta: SessionEnd, User: name},
		)
	}

	slices.SortFunc(events, compareEvents)

	return events
}

func compareEvents(a, b Event) int {
	if c := a.Time.Compare(b.Time); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Delta, b.Delta); c != 0 {
		return c
	}

	return strings.Compare(a.User, b.User)
}
