// Package userjson loads the user directory exported alongside the session
// log: a JSON array of account objects carrying at least id and username.
package userjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
	"github.com/alex-ip/EaaSI-sessions/internal/ports"
)

type Loader struct{}

var _ ports.UserDirectorySource = (*Loader)(nil)

func NewLoader() *Loader {
	return &Loader{}
}

// entrySchema decodes id and username through pointers so an absent key is
// distinguishable from an empty value. Extra keys in the export are ignored.
type entrySchema struct {
	ID       *string `json:"id"`
	Username *string `json:"username"`
}

// Entries decodes the JSON array at path in file order, duplicates included.
// An entry missing id or username aborts with the zero-based entry index.
func (l *Loader) Entries(ctx context.Context, path string) ([]domain.UserEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var raw []entrySchema
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode users file %s: %w", path, err)
	}

	entries := make([]domain.UserEntry, 0, len(raw))
	for i, entry := range raw {
		if entry.ID == nil {
			return nil, fmt.Errorf("users file %s entry %d: missing id", path, i)
		}
		if entry.Username == nil {
			return nil, fmt.Errorf("users file %s entry %d: missing username", path, i)
		}

		entries = append(entries, domain.UserEntry{ID: *entry.ID, Username: *entry.Username})
	}

	return entries, nil
}
