package reportcsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, ".session-count-*.csv.tmp"))
	require.NoError(t, err)
	return matches
}

func TestStoreCommitPublishesReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "session_count_2023-03-14.csv")

	store := NewStore()
	sink, err := store.Create(context.Background(), target)
	require.NoError(t, err)

	at := time.Date(2023, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, sink.WriteRow(domain.ReportRow{Time: at, Sessions: 1, Users: "Alice=1"}))
	require.NoError(t, sink.WriteRow(domain.ReportRow{Time: at.Add(2 * time.Hour), Sessions: 0, Users: ""}))
	require.NoError(t, sink.Commit())
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t,
		"datetime,sessions,users\n"+
			"2023-03-14 10:00:00,1,Alice=1\n"+
			"2023-03-14 12:00:00,0,\n",
		string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(reportFileMode), info.Mode().Perm())
	assert.Empty(t, tempFiles(t, dir))
}

func TestStoreTargetInvisibleBeforeCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "session_count_2023-03-14.csv")

	store := NewStore()
	sink, err := store.Create(context.Background(), target)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	require.NoError(t, sink.WriteRow(domain.ReportRow{Time: time.Now(), Sessions: 1, Users: "Alice=1"}))

	_, err = os.Stat(target)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreCloseWithoutCommitDiscardsTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "session_count_2023-03-14.csv")

	store := NewStore()
	sink, err := store.Create(context.Background(), target)
	require.NoError(t, err)

	require.NoError(t, sink.WriteRow(domain.ReportRow{Time: time.Now(), Sessions: 1, Users: "Alice=1"}))
	require.NoError(t, sink.Close())

	_, err = os.Stat(target)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, tempFiles(t, dir))
}

func TestStoreCloseAfterCommitIsNoOp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "session_count_2023-03-14.csv")

	store := NewStore()
	sink, err := store.Create(context.Background(), target)
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestStoreCommitOverwritesExistingReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "session_count_2023-03-14.csv")
	require.NoError(t, os.WriteFile(target, []byte("stale content\n"), 0o644))

	store := NewStore()
	sink, err := store.Create(context.Background(), target)
	require.NoError(t, err)
	require.NoError(t, sink.Commit())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "datetime,sessions,users\n", string(data))
}

func TestStoreCreateFailsWhenDirectoryMissing(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "no-such-dir", "report.csv")

	store := NewStore()
	_, err := store.Create(context.Background(), target)

	require.Error(t, err)
	assert.ErrorContains(t, err, "create report file")
}

func TestStoreHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore()
	_, err := store.Create(ctx, filepath.Join(t.TempDir(), "report.csv"))

	require.ErrorIs(t, err, context.Canceled)
}
