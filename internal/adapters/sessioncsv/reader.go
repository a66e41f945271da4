// Package sessioncsv reads EaaSI session log exports. The exports arrive in
// whatever encoding the reporting tool used that day, so the reader sniffs
// for UTF-16 byte order marks and decodes through x/text before the CSV
// layer sees any bytes.
package sessioncsv

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alex-ip/EaaSI-sessions/internal/domain"
	"github.com/alex-ip/EaaSI-sessions/internal/ports"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Reader struct{}

var _ ports.SessionSource = (*Reader)(nil)

func NewReader() *Reader {
	return &Reader{}
}

// Records reads every row of the sessions CSV at path. The file carries no
// header row. Parse failures abort with the 1-based line number of the
// offending row; an empty file yields zero records.
func (r *Reader) Records(ctx context.Context, path string) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sessions file: %w", err)
	}
	defer func() { _ = file.Close() }()

	decoded, err := decodedReader(file)
	if err != nil {
		return nil, fmt.Errorf("sniff sessions file encoding: %w", err)
	}

	csvReader := csv.NewReader(decoded)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var records []domain.SessionRecord
	for {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sessions file %s: %w", path, err)
		}

		line, _ := csvReader.FieldPos(0)
		record, err := domain.ParseSessionRecord(row)
		if err != nil {
			return nil, fmt.Errorf("sessions file %s line %d: %w", path, line, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// decodedReader returns reader positioned at the first content byte, with
// UTF-16 input (either endianness, BOM required) transparently decoded and a
// UTF-8 BOM skipped.
func decodedReader(file *os.File) (io.Reader, error) {
	buffered := bufio.NewReader(file)

	head, err := buffered.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE {
		return transform.NewReader(buffered, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()), nil
	}
	if len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF {
		return transform.NewReader(buffered, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()), nil
	}
	if len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		if _, err := buffered.Discard(3); err != nil {
			return nil, err
		}
	}

	return buffered, nil
}
