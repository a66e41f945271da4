package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ReportRow is one line of the occupancy report: the event time, the running
// session total after applying the event, and the active-user snapshot.
type ReportRow struct {
	Time     time.Time
	Sessions int
	Users    string
}

// Summary aggregates what a sweep observed. First, Last and PeakAt stay zero
// when Events is zero; callers must not report a time span for an empty
// stream.
type Summary struct {
	Events       int
	PeakSessions int
	PeakAt       time.Time
	First        time.Time
	Last         time.Time
}

// Sweep walks an event stream already sorted by BuildEvents, maintaining the
// running session total and per-user open-session counts, and emits exactly
// one row per event in stream order. An end event for a user with no open
// session signals corrupted input pairs and aborts the sweep.
func Sweep(events []Event, emit func(ReportRow) error) (Summary, error) {
	var summary Summary
	sessions := 0
	active := make(map[string]int)

	for _, event := range events {
		sessions += event.Delta

		switch event.Delta {
		case SessionStart:
			active[event.User]++
		case SessionEnd:
			count, ok := active[event.User]
			if !ok {
				return Summary{}, fmt.Errorf("%w: %s at %s", ErrUnmatchedSessionEnd, event.User, FormatTimestamp(event.Time))
			}
			if count == 1 {
				delete(active, event.User)
			} else {
				active[event.User] = count - 1
			}
		}

		row := ReportRow{Time: event.Time, Sessions: sessions, Users: renderActive(active)}
		if err := emit(row); err != nil {
			return Summary{}, err
		}

		summary.Events++
		summary.Last = event.Time
		if summary.Events == 1 {
			summary.First = event.Time
		}
		if sessions > summary.PeakSessions {
			summary.PeakSessions = sessions
			summary.PeakAt = event.Time
		}
	}

	return summary, nil
}

// renderActive formats the open-session counts as space-separated name=count
// tokens, sorted ascending by name. Users whose count dropped to zero are
// already gone from the map and never rendered.
func renderActive(active map[string]int) string {
	if len(active) == 0 {
		return ""
	}

	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", name, active[name])
	}

	return b.String()
}
