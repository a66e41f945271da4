package application

import (
	"go.uber.org/zap"

	"github.com/alex-ip/EaaSI-sessions/internal/ports"
)

type Service struct {
	sessions ports.SessionSource
	users    ports.UserDirectorySource
	reports  ports.ReportStore
	paths    ports.PathFinder
	clock    ports.Clock
	logger   *zap.Logger
}

func NewService(sessions ports.SessionSource, users ports.UserDirectorySource, reports ports.ReportStore, paths ports.PathFinder, clock ports.Clock) *Service {
	return NewServiceWithLogger(sessions, users, reports, paths, clock, nil)
}

// NewServiceWithLogger constructs a service with a specified logger. A nil
// logger discards all diagnostics.
func NewServiceWithLogger(sessions ports.SessionSource, users ports.UserDirectorySource, reports ports.ReportStore, paths ports.PathFinder, clock ports.Clock, logger *zap.Logger) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		sessions: sessions,
		users:    users,
		reports:  reports,
		paths:    paths,
		clock:    clock,
		logger:   logger,
	}
}
