package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alex-ip/EaaSI-sessions/internal/application"
)

type reportOptions struct {
	asJSON   bool
	manifest string
	verbose  bool
}

// configureReportCmd attaches the reporting run to the root command itself:
// the tool's whole job is one pipeline run, so there is no subcommand.
func configureReportCmd(rootCmd *cobra.Command, app *app) {
	opts := &reportOptions{}

	rootCmd.Args = cobra.MaximumNArgs(3)
	rootCmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the run result as JSON instead of the summary")
	rootCmd.Flags().StringVar(&opts.manifest, "manifest", "", "also write a TOML run manifest to this path")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, app, opts, args)
	}
}

func runReport(cmd *cobra.Command, app *app, opts *reportOptions, args []string) error {
	req := application.RunRequest{}
	if len(args) >= 1 {
		req.SessionsPath = args[0]
	}
	if len(args) >= 2 {
		req.UsersPath = args[1]
	}
	if len(args) >= 3 {
		req.OutputPath = args[2]
	}

	var logger *zap.Logger
	if opts.verbose {
		verboseLogger, err := app.newLogger()
		if err != nil {
			return fmt.Errorf("build verbose logger: %w", err)
		}
		defer func() { _ = verboseLogger.Sync() }()
		logger = verboseLogger
	}

	service := app.service(logger)

	var result application.RunResult
	run := func(ctx context.Context) error {
		var runErr error
		result, runErr = service.Run(ctx, req)
		return runErr
	}

	// Log lines and spinner frames share stderr, and JSON output should not
	// carry stray frames either.
	if opts.asJSON || opts.verbose {
		if err := run(cmd.Context()); err != nil {
			return err
		}
	} else {
		if err := runReportSpinner(cmd.Context(), cmd.ErrOrStderr(), run); err != nil {
			return err
		}
	}

	if opts.manifest != "" {
		if err := app.manifestWriter.Write(cmd.Context(), opts.manifest, result); err != nil {
			return fmt.Errorf("write manifest %s: %w", opts.manifest, err)
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	rendered, err := app.summaryRenderer(result)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
