package ports

import (
	"context"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

type SessionSource interface {
	Records(ctx context.Context, path string) ([]domain.SessionRecord, error)
}
