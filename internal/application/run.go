package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
)

// RunRequest names the files of one reporting run. Empty paths are resolved
// through the path finder: the latest matching export for each input, and an
// output path derived from the sessions path.
type RunRequest struct {
	SessionsPath string
	UsersPath    string
	OutputPath   string
}

// RunResult captures what a completed run read and wrote.
type RunResult struct {
	RunID        string
	SessionsPath string
	UsersPath    string
	OutputPath   string
	UsersDefined int
	Records      int
	Events       int
	Rows         int
	Summary      domain.Summary
	Started      time.Time
	Finished     time.Time
}

// Run executes the whole pipeline: resolve paths, load the user directory
// and session records, build the event stream, and sweep it into a committed
// report. On any error the report target is left untouched.
func (s *Service) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	result := RunResult{
		RunID:   uuid.NewString(),
		Started: s.clock.Now(),
	}
	logger := s.logger.With(zap.String("run_id", result.RunID))

	var err error
	result.SessionsPath, result.UsersPath, result.OutputPath, err = s.resolvePaths(ctx, req)
	if err != nil {
		return RunResult{}, err
	}
	logger.Debug("paths resolved",
		zap.String("sessions_path", result.SessionsPath),
		zap.String("users_path", result.UsersPath),
		zap.String("output_path", result.OutputPath))

	entries, err := s.users.Entries(ctx, result.UsersPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("load user directory %s: %w", result.UsersPath, err)
	}
	result.UsersDefined = len(entries)
	directory := domain.NewUserDirectory(entries)
	logger.Debug("user directory loaded", zap.Int("users_defined", result.UsersDefined))

	records, err := s.sessions.Records(ctx, result.SessionsPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("load session records %s: %w", result.SessionsPath, err)
	}
	result.Records = len(records)

	events := domain.BuildEvents(records, directory)
	result.Events = len(events)
	logger.Debug("event stream built",
		zap.Int("records", result.Records),
		zap.Int("events", result.Events))

	sink, err := s.reports.Create(ctx, result.OutputPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("create report %s: %w", result.OutputPath, err)
	}
	defer func() { _ = sink.Close() }()

	summary, err := domain.Sweep(events, sink.WriteRow)
	if err != nil {
		return RunResult{}, fmt.Errorf("write report %s: %w", result.OutputPath, err)
	}

	if err := sink.Commit(); err != nil {
		return RunResult{}, fmt.Errorf("commit report %s: %w", result.OutputPath, err)
	}

	result.Summary = summary
	result.Rows = summary.Events
	result.Finished = s.clock.Now()
	logger.Debug("report committed",
		zap.Int("rows", result.Rows),
		zap.Int("peak_sessions", summary.PeakSessions))

	return result, nil
}

func (s *Service) resolvePaths(ctx context.Context, req RunRequest) (sessionsPath, usersPath, outputPath string, err error) {
	sessionsPath = req.SessionsPath
	if sessionsPath == "" {
		sessionsPath, err = s.paths.DefaultSessionsPath(ctx)
		if err != nil {
			return "", "", "", fmt.Errorf("discover sessions file: %w", err)
		}
	}

	usersPath = req.UsersPath
	if usersPath == "" {
		usersPath, err = s.paths.DefaultUsersPath(ctx)
		if err != nil {
			return "", "", "", fmt.Errorf("discover users file: %w", err)
		}
	}

	outputPath = req.OutputPath
	if outputPath == "" {
		outputPath, err = s.paths.DeriveOutputPath(sessionsPath)
		if err != nil {
			return "", "", "", fmt.Errorf("derive output path: %w", err)
		}
	}

	return sessionsPath, usersPath, outputPath, nil
}
