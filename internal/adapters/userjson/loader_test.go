package userjson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

func writeUsers(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users_2023-03-14.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoaderDecodesEntriesInFileOrder(t *testing.T) {
	t.Parallel()

	data := `[
		{"id": "u-1", "username": "Alice", "email": "alice@example.org"},
		{"id": "u-2", "username": "Bob"},
		{"id": "u-1", "username": "Alice (renamed)"}
	]`

	loader := NewLoader()
	entries, err := loader.Entries(context.Background(), writeUsers(t, data))
	require.NoError(t, err)

	assert.Equal(t, []domain.UserEntry{
		{ID: "u-1", Username: "Alice"},
		{ID: "u-2", Username: "Bob"},
		{ID: "u-1", Username: "Alice (renamed)"},
	}, entries)
}

func TestLoaderEmptyArray(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	entries, err := loader.Entries(context.Background(), writeUsers(t, `[]`))
	require.NoError(t, err)

	assert.Empty(t, entries)
}

func TestLoaderRejectsStructuralProblems(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "missing id", data: `[{"username": "Alice"}]`, wantErr: "entry 0: missing id"},
		{name: "missing username", data: `[{"id": "u-1", "username": "Alice"}, {"id": "u-2"}]`, wantErr: "entry 1: missing username"},
		{name: "not an array", data: `{"id": "u-1"}`, wantErr: "decode users file"},
		{name: "truncated", data: `[{"id": "u-1",`, wantErr: "decode users file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader()
			_, err := loader.Entries(context.Background(), writeUsers(t, tc.data))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	_, err := loader.Entries(context.Background(), filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.ErrorContains(t, err, "read users file")
}

func TestLoaderHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader()
	_, err := loader.Entries(ctx, writeUsers(t, `[]`))

	require.ErrorIs(t, err, context.Canceled)
}
