package summary

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/alex-ip/EaaSI-sessions/internal/application"
	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

func renderView(result application.RunResult, s styles) string {
	lines := []string{
		s.title.Render("EaaSI Session Count"),
		s.fact.Render(fmt.Sprintf("There are %d users defined in %s", result.UsersDefined, result.UsersPath)),
		s.fact.Render(fmt.Sprintf("There are %d session start/end events read from %s", result.Events, result.SessionsPath)),
	}

	// A stream can be empty after the timestamp sanity filter; there is no
	// span to report then.
	if result.Summary.Events > 0 {
		lines = append(lines, s.peak.Render(fmt.Sprintf(
			"There was a maximum of %d concurrent sessions between %s and %s",
			result.Summary.PeakSessions,
			domain.FormatTimestamp(result.Summary.First),
			domain.FormatTimestamp(result.Summary.Last),
		)))
	} else {
		lines = append(lines, s.empty.Render("No session events to report"))
	}

	lines = append(lines, s.path.Render(fmt.Sprintf("Session information written to %s", result.OutputPath)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
