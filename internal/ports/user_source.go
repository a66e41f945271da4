package ports

import (
	"context"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

type UserDirectorySource interface {
	Entries(ctx context.Context, path string) ([]domain.UserEntry, error)
}
