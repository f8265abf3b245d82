package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// utf8bom keeps the flat files openable in spreadsheet tools.
var utf8bom = []byte{0xEF, 0xBB, 0xBF}

// Repository persists one record kind as a flat table of string cells.
// Reads return the whole table; writes replace the whole table. The
// file-backed implementation is the single source of truth, the in-memory
// one exists for tests.
type Repository interface {
	// ReadAll returns every record and whether the backing table exists at
	// all. A missing table is not an error.
	ReadAll() (records [][]string, exists bool, err error)

	// WriteAll replaces the backing table with the given records.
	WriteAll(records [][]string) error
}

type fileRepository struct {
	path string
}

// NewFileRepository returns a Repository backed by a CSV file at path.
func NewFileRepository(path string) Repository {
	return &fileRepository{path: path}
}

func (r *fileRepository) ReadAll() ([][]string, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	data = bytes.TrimPrefix(data, utf8bom)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Malformed lines are skipped, not fatal: the store's contract is to
	// always load and degrade bad content to safe defaults.
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, true, nil
}

func (r *fileRepository) WriteAll(records [][]string) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".orders-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(utf8bom); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

// MemoryRepository keeps the table in memory. Test double for the file
// repository; it honors the same exists semantics.
type MemoryRepository struct {
	Records [][]string
	Present bool
}

func (m *MemoryRepository) ReadAll() ([][]string, bool, error) {
	if !m.Present {
		return nil, false, nil
	}
	out := make([][]string, len(m.Records))
	for i, rec := range m.Records {
		out[i] = append([]string(nil), rec...)
	}
	return out, true, nil
}

func (m *MemoryRepository) WriteAll(records [][]string) error {
	m.Records = make([][]string, len(records))
	for i, rec := range records {
		m.Records[i] = append([]string(nil), rec...)
	}
	m.Present = true
	return nil
}
