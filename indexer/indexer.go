package indexer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/erraggy/oaslice/internal/fileutil"
)

// Manager streams index entries to a CSV file. Safe for concurrent use.
type Manager struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *csv.Writer
}

// NewManager creates a manager for the index at path. The file is created
// lazily on the first append.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the index file location.
func (m *Manager) Path() string {
	return m.path
}

// init opens the index file and writes the header row. Callers must hold mu.
func (m *Manager) init() error {
	if m.w != nil {
		return nil
	}
	file, err := os.OpenFile(m.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileutil.ReadableByAll)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", m.path, err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		file.Close()
		return fmt.Errorf("writing index header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("writing index header: %w", err)
	}
	m.file = file
	m.w = w
	return nil
}

// Append writes one entry and flushes it to disk.
func (m *Manager) Append(entry Entry) error {
	return m.AppendBatch([]Entry{entry})
}

// AppendBatch writes several entries under one lock acquisition.
func (m *Manager) AppendBatch(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.init(); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := m.w.Write(entry.row()); err != nil {
			return fmt.Errorf("appending index entry for %s %s: %w", entry.Method, entry.Path, err)
		}
	}
	m.w.Flush()
	if err := m.w.Error(); err != nil {
		return fmt.Errorf("flushing index: %w", err)
	}
	return nil
}

// Close flushes and closes the index file. A manager that never appended
// closes without creating the file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		return nil
	}
	m.w.Flush()
	flushErr := m.w.Error()
	closeErr := m.file.Close()
	m.file = nil
	m.w = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// ReadEntries loads every row from an index file. A missing file yields an
// empty slice, matching a batch that produced no output.
func ReadEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, record := range records[1:] {
		entry, err := entryFromRow(record)
		if err != nil {
			return nil, fmt.Errorf("index %s row %d: %w", path, i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func entryFromRow(record []string) (Entry, error) {
	if len(record) != len(Header) {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}
	sizeKB, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return Entry{}, fmt.Errorf("file_size_kb: %w", err)
	}
	schemaCount, err := strconv.Atoi(record[8])
	if err != nil {
		return Entry{}, fmt.Errorf("schema_count: %w", err)
	}
	parameterCount, err := strconv.Atoi(record[9])
	if err != nil {
		return Entry{}, fmt.Errorf("parameter_count: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, record[13])
	if err != nil {
		return Entry{}, fmt.Errorf("created_at: %w", err)
	}
	return Entry{
		Path:             record[0],
		Method:           record[1],
		Summary:          record[2],
		Description:      record[3],
		OperationID:      record[4],
		Tags:             record[5],
		Filename:         record[6],
		FileSizeKB:       sizeKB,
		SchemaCount:      schemaCount,
		ParameterCount:   parameterCount,
		ResponseCodes:    record[10],
		SecurityRequired: record[11] == "yes",
		Deprecated:       record[12] == "yes",
		CreatedAt:        createdAt,
		OutputVersion:    record[14],
	}, nil
}
