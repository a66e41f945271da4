package manifest

import "time"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Run     runSchema    `toml:"run"`
	Inputs  inputsSchema `toml:"inputs"`
	Report  reportSchema `toml:"report"`
}

type runSchema struct {
	ID       string `toml:"id"`
	Started  string `toml:"started"`
	Finished string `toml:"finished"`
}

type inputsSchema struct {
	SessionsPath string `toml:"sessions_path"`
	UsersPath    string `toml:"users_path"`
	UsersDefined int    `toml:"users_defined"`
	Records      int    `toml:"records"`
}

type reportSchema struct {
	Path         string `toml:"path"`
	Events       int    `toml:"events"`
	Rows         int    `toml:"rows"`
	PeakSessions int    `toml:"peak_sessions"`
	PeakAt       string `toml:"peak_at,omitempty"`
	FirstEvent   string `toml:"first_event,omitempty"`
	LastEvent    string `toml:"last_event,omitempty"`
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
