package cmd

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alex-ip/EaaSI-sessions/internal/adapters/discover"
	manifestadapter "github.com/alex-ip/EaaSI-sessions/internal/adapters/manifest"
	summaryadapter "github.com/alex-ip/EaaSI-sessions/internal/adapters/render/summary"
	"github.com/alex-ip/EaaSI-sessions/internal/adapters/reportcsv"
	"github.com/alex-ip/EaaSI-sessions/internal/adapters/sessioncsv"
	"github.com/alex-ip/EaaSI-sessions/internal/adapters/userjson"
	"github.com/alex-ip/EaaSI-sessions/internal/application"
	"github.com/alex-ip/EaaSI-sessions/internal/ports"
)

type app struct {
	sessions        ports.SessionSource
	users           ports.UserDirectorySource
	reports         ports.ReportStore
	paths           ports.PathFinder
	clock           ports.Clock
	summaryRenderer func(application.RunResult) (string, error)
	manifestWriter  *manifestadapter.Writer
	newLogger       func() (*zap.Logger, error)
}

func wireApp() (*app, error) {
	finder, err := discover.NewFinder(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire path finder: %w", err)
	}

	return &app{
		sessions:        sessioncsv.NewReader(),
		users:           userjson.NewLoader(),
		reports:         reportcsv.NewStore(),
		paths:           finder,
		clock:           ports.SystemClock{},
		summaryRenderer: summaryadapter.Render,
		manifestWriter:  manifestadapter.NewWriter(),
		newLogger:       newVerboseLogger,
	}, nil
}

// service builds the pipeline service for one invocation. The logger is
// per-invocation because it depends on the --verbose flag.
func (a *app) service(logger *zap.Logger) *application.Service {
	return application.NewServiceWithLogger(a.sessions, a.users, a.reports, a.paths, a.clock, logger)
}

func newVerboseLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}
