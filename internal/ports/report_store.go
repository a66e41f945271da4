package ports

import (
	"context"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

type ReportStore interface {
	Create(ctx context.Context, path string) (ReportSink, error)
}

// ReportSink receives rows in stream order. Commit makes the report visible
// at its final path; Close without a prior Commit discards everything
// written so far. Close is safe to call after Commit.
type ReportSink interface {
	WriteRow(row domain.ReportRow) error
	Commit() error
	Close() error
}
