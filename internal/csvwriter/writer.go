package csvwriter

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Writer is a CSV writer that stamps a header row on creation.
type Writer struct {
	file   *os.File
	writer *csv.Writer
	logger *zap.Logger
	fields int
	mu     sync.Mutex
}

// NewWriter creates the file, writes the header and returns the writer.
func NewWriter(filePath string, header []string, logger *zap.Logger) (*Writer, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file: %w", err)
	}

	w := &Writer{
		file:   file,
		writer: csv.NewWriter(file),
		logger: logger,
		fields: len(header),
	}
	if len(header) > 0 {
		if err := w.writer.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
	}
	return w, nil
}

// Write writes a record to the CSV file. The record must have as many
// fields as the header.
func (w *Writer) Write(record []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fields > 0 && len(record) != w.fields {
		return fmt.Errorf("record has %d fields, header has %d", len(record), w.fields)
	}
	if err := w.writer.Write(record); err != nil {
		return fmt.Errorf("failed to write record to CSV: %w", err)
	}
	return nil
}

// Flush flushes any buffered data to the underlying file.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writer.Flush()
	return w.writer.Error()
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.logger.Warn("CSV flush failed on close", zap.Error(err))
	}
	return w.file.Close()
}
