// Package reportcsv persists occupancy reports. Rows stream into a temp file
// in the target directory and the report only becomes visible on Commit, so
// an aborted run never leaves a partial report behind.
package reportcsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
	"github.com/alex-ip/EaaSI-sessions/internal/ports"
)

const (
	reportFileMode  = 0o644
	tempFilePattern = ".session-count-*.csv.tmp"
)

var reportHeader = []string{"datetime", "sessions", "users"}

type Store struct{}

var _ ports.ReportStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// Create opens a sink for the report at path. The header row is already
// written when Create returns.
func (s *Store) Create(ctx context.Context, path string) (ports.ReportSink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return nil, fmt.Errorf("create report file %s: %w", path, err)
	}

	snk := &sink{
		file:      tempFile,
		writer:    csv.NewWriter(tempFile),
		tempName:  tempFile.Name(),
		finalPath: path,
	}

	if err := snk.writer.Write(reportHeader); err != nil {
		_ = snk.Close()
		return nil, fmt.Errorf("write report header: %w", err)
	}

	return snk, nil
}

type sink struct {
	file      *os.File
	writer    *csv.Writer
	tempName  string
	finalPath string
	committed bool
	closed    bool
}

var _ ports.ReportSink = (*sink)(nil)

func (s *sink) WriteRow(row domain.ReportRow) error {
	record := []string{domain.FormatTimestamp(row.Time), strconv.Itoa(row.Sessions), row.Users}
	if err := s.writer.Write(record); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}

	return nil
}

func (s *sink) Commit() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("flush report rows: %w", err)
	}

	if err := s.file.Chmod(reportFileMode); err != nil {
		return fmt.Errorf("chmod temp report file: %w", err)
	}

	err := s.file.Close()
	s.closed = true
	if err != nil {
		return fmt.Errorf("close temp report file: %w", err)
	}

	if err := os.Rename(s.tempName, s.finalPath); err != nil {
		return fmt.Errorf("replace report file: %w", err)
	}

	s.committed = true
	return nil
}

// Close discards the temp file unless Commit already published it.
func (s *sink) Close() error {
	if s.committed {
		return nil
	}

	var err error
	if !s.closed {
		err = s.file.Close()
		s.closed = true
	}

	if removeErr := os.Remove(s.tempName); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) && err == nil {
		err = removeErr
	}

	return err
}
