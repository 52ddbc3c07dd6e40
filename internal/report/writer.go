package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{"timestamp", "collection_name", "chain_id", "record_count", "last_create_time"}

// CSVWriter appends report rows to the dated report file, one file per
// calendar day. The header is written when the file is created.
type CSVWriter struct {
	Path string
}

// NewCSVWriter creates the output directory and the dated file with its
// header row, truncating any earlier file from the same day.
func NewCSVWriter(dir string, date string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("mongodb_report_%s.csv", date))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file '%s': %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	w.Flush()
	return &CSVWriter{Path: path}, w.Error()
}

// Append writes one row and flushes so partial runs still leave data on
// disk.
func (c *CSVWriter) Append(row Row) error {
	f, err := os.OpenFile(c.Path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open report file '%s': %w", c.Path, err)
	}
	defer f.Close()

	lastCreate := ""
	if row.Error != "" {
		lastCreate = "ERROR: " + row.Error
	} else if row.LastCreateTime != nil {
		lastCreate = row.LastCreateTime.Format("2006-01-02 15:04:05")
	}

	w := csv.NewWriter(f)
	record := []string{
		row.Timestamp.Format("2006-01-02 15:04:05"),
		row.Collection,
		row.ChainID,
		strconv.FormatInt(row.RecordCount, 10),
		lastCreate,
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
