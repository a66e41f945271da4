// Package manifest records a completed run as a small TOML document, meant
// for whatever automation picks the report up afterwards.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/alex-ip/EaaSI-sessions/internal/application"
)

const (
	manifestFileMode = 0o644
	tempFilePattern  = ".manifest-*.toml.tmp"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Write publishes the manifest for result at path, atomically.
func (w *Writer) Write(ctx context.Context, path string, result application.RunResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := toml.Marshal(toSchema(result))
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp manifest file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp manifest file: %w", err)
	}

	if err := tempFile.Chmod(manifestFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp manifest file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp manifest file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace manifest file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(result application.RunResult) fileSchema {
	report := reportSchema{
		Path:         result.OutputPath,
		Events:       result.Events,
		Rows:         result.Rows,
		PeakSessions: result.Summary.PeakSessions,
	}
	if result.Summary.Events > 0 {
		report.PeakAt = formatTime(result.Summary.PeakAt)
		report.FirstEvent = formatTime(result.Summary.First)
		report.LastEvent = formatTime(result.Summary.Last)
	}

	return fileSchema{
		Version: currentSchemaVersion,
		Run: runSchema{
			ID:       result.RunID,
			Started:  formatTime(result.Started),
			Finished: formatTime(result.Finished),
		},
		Inputs: inputsSchema{
			SessionsPath: result.SessionsPath,
			UsersPath:    result.UsersPath,
			UsersDefined: result.UsersDefined,
			Records:      result.Records,
		},
		Report: report,
	}
}
