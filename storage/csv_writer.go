package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"recruit-scraper/export"
)

// CSVWriter handles writing a flattened batch to a CSV file
type CSVWriter struct {
	filePath string
	log      *zap.SugaredLogger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, log *zap.SugaredLogger) *CSVWriter {
	return &CSVWriter{filePath: filePath, log: log}
}

// SaveTable writes the batch as CSV; the name selects the file suffix so one
// writer can persist several batches side by side. Null cells write empty.
func (w *CSVWriter) SaveTable(name string, table *export.Table) error {
	path := w.pathFor(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, 0, len(table.Columns))
		for _, column := range table.Columns {
			text, _ := table.CellString(row, column)
			record = append(record, text)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.log.Infof("wrote %s (%d rows)", path, len(table.Rows))
	return nil
}

// Close satisfies TableStorage; the writer holds no open resources between
// saves
func (w *CSVWriter) Close() error { return nil }

// pathFor inserts the batch name before the configured file extension
func (w *CSVWriter) pathFor(name string) string {
	if name == "" {
		return w.filePath
	}
	ext := filepath.Ext(w.filePath)
	base := w.filePath[:len(w.filePath)-len(ext)]
	return base + "_" + name + ext
}
