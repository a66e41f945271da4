package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-ip/EaaSI-sessions/internal/application"
	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

func sampleResult() application.RunResult {
	return application.RunResult{
		RunID:        "8a7b1f9e-0000-4000-8000-c0ffee000001",
		SessionsPath: "sessions_2023-03-14.csv",
		UsersPath:    "users_2023-03-14.json",
		OutputPath:   "session_count_2023-03-14.csv",
		UsersDefined: 2,
		Records:      3,
		Events:       4,
		Rows:         4,
		Summary: domain.Summary{
			Events:       4,
			PeakSessions: 2,
			PeakAt:       time.Date(2023, 3, 14, 10, 30, 0, 0, time.UTC),
			First:        time.Date(2023, 3, 14, 10, 0, 0, 0, time.UTC),
			Last:         time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC),
		},
		Started:  time.Date(2023, 3, 15, 9, 0, 0, 0, time.UTC),
		Finished: time.Date(2023, 3, 15, 9, 0, 1, 0, time.UTC),
	}
}

func TestWriterRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.toml")
	writer := NewWriter()

	require.NoError(t, writer.Write(context.Background(), path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file fileSchema
	require.NoError(t, toml.Unmarshal(data, &file))

	assert.Equal(t, currentSchemaVersion, file.Version)
	assert.Equal(t, "8a7b1f9e-0000-4000-8000-c0ffee000001", file.Run.ID)
	assert.Equal(t, "2023-03-15T09:00:00Z", file.Run.Started)
	assert.Equal(t, "2023-03-15T09:00:01Z", file.Run.Finished)
	assert.Equal(t, "sessions_2023-03-14.csv", file.Inputs.SessionsPath)
	assert.Equal(t, 2, file.Inputs.UsersDefined)
	assert.Equal(t, 3, file.Inputs.Records)
	assert.Equal(t, 4, file.Report.Events)
	assert.Equal(t, 2, file.Report.PeakSessions)
	assert.Equal(t, "2023-03-14T10:30:00Z", file.Report.PeakAt)
	assert.Equal(t, "2023-03-14T10:00:00Z", file.Report.FirstEvent)
	assert.Equal(t, "2023-03-14T12:00:00Z", file.Report.LastEvent)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(manifestFileMode), info.Mode().Perm())
}

func TestWriterOmitsSpanForEmptyStream(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Events = 0
	result.Rows = 0
	result.Summary = domain.Summary{}

	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, NewWriter().Write(context.Background(), path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var file fileSchema
	require.NoError(t, toml.Unmarshal(data, &file))
	assert.Empty(t, file.Report.PeakAt)
	assert.Empty(t, file.Report.FirstEvent)
	assert.Empty(t, file.Report.LastEvent)
	assert.Zero(t, file.Report.PeakSessions)
}

func TestWriterLeavesNoTempFilesBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	require.NoError(t, NewWriter().Write(context.Background(), path, sampleResult()))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".manifest-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriterFailsWhenDirectoryMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no-such-dir", "run.toml")
	err := NewWriter().Write(context.Background(), path, sampleResult())

	require.Error(t, err)
	assert.ErrorContains(t, err, "create temp manifest file")
}

func TestWriterHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewWriter().Write(ctx, filepath.Join(t.TempDir(), "run.toml"), sampleResult())

	require.ErrorIs(t, err, context.Canceled)
}
