// Package excel loads point-event sets from tabular sources (.xlsx or
// .csv) with x, y, and time columns.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"spacetime/domain/events"
	apperrors "spacetime/internal/errors"
)

// EventReader reads event coordinates from an Excel or CSV file.
type EventReader struct {
	filePath string
	fileType string // "xlsx" or "csv"

	xCol    string
	yCol    string
	timeCol string

	// inferTimestamp attempts to parse the time column as calendar
	// dates and convert them to integer day offsets from the earliest
	// date; on failure the column is treated as already numeric and a
	// diagnostic notice is logged.
	inferTimestamp bool
}

// NewEventReader creates a reader for the given file and column names.
func NewEventReader(filePath, xCol, yCol, timeCol string, inferTimestamp bool) *EventReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &EventReader{
		filePath:       filePath,
		fileType:       fileType,
		xCol:           xCol,
		yCol:           yCol,
		timeCol:        timeCol,
		inferTimestamp: inferTimestamp,
	}
}

// ReadEvents loads and validates the event set.
func (r *EventReader) ReadEvents(_ context.Context) (*events.EventSet, error) {
	log.Printf("[EventReader] reading %s file: %s", r.fileType, r.filePath)

	rows, err := r.readRows()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read event rows")
	}
	if len(rows) < 2 {
		return nil, apperrors.DataError(fmt.Sprintf("file %s has no data rows", r.filePath))
	}

	header := rows[0]
	xi, err := columnIndex(header, r.xCol)
	if err != nil {
		return nil, err
	}
	yi, err := columnIndex(header, r.yCol)
	if err != nil {
		return nil, err
	}
	ti, err := columnIndex(header, r.timeCol)
	if err != nil {
		return nil, err
	}

	space := make([][]float64, 0, len(rows)-1)
	rawTimes := make([]string, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if xi >= len(row) || yi >= len(row) || ti >= len(row) {
			return nil, apperrors.DataError(fmt.Sprintf("row %d is missing values", rowNum+2))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(row[xi]), 64)
		if err != nil {
			return nil, apperrors.DataError(fmt.Sprintf("row %d: bad %s value %q", rowNum+2, r.xCol, row[xi]))
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(row[yi]), 64)
		if err != nil {
			return nil, apperrors.DataError(fmt.Sprintf("row %d: bad %s value %q", rowNum+2, r.yCol, row[yi]))
		}
		space = append(space, []float64{x, y})
		rawTimes = append(rawTimes, strings.TrimSpace(row[ti]))
	}

	times, err := r.parseTimes(rawTimes)
	if err != nil {
		return nil, err
	}

	set, err := events.New(space, times)
	if err != nil {
		return nil, apperrors.Wrap(err, "invalid event coordinates")
	}
	log.Printf("[EventReader] loaded %d events", set.N())
	return set, nil
}

func (r *EventReader) readRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", r.filePath)
	}
	if r.fileType == "csv" {
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("[EventReader] close: %v", cerr)
		}
	}()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", r.filePath)
	}
	return f.GetRows(sheets[0])
}

// parseTimes converts the raw time column into temporal coordinates.
func (r *EventReader) parseTimes(raw []string) ([]float64, error) {
	if r.inferTimestamp {
		if dates, ok := parseDates(raw); ok {
			return dayOffsets(dates), nil
		}
		log.Printf("[EventReader] unable to parse time column as calendar dates, proceeding as numeric")
	}
	times := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, apperrors.DataError(fmt.Sprintf("row %d: bad %s value %q", i+2, r.timeCol, s))
		}
		times[i] = v
	}
	return times, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseDates parses every value with the first layout that fits the
// whole column; a single failure rejects the column.
func parseDates(raw []string) ([]time.Time, bool) {
	for _, layout := range dateLayouts {
		dates := make([]time.Time, len(raw))
		ok := true
		for i, s := range raw {
			d, err := time.Parse(layout, s)
			if err != nil {
				ok = false
				break
			}
			dates[i] = d
		}
		if ok {
			return dates, true
		}
	}
	return nil, false
}

// dayOffsets converts dates to whole-day offsets from the earliest
// date in the set.
func dayOffsets(dates []time.Time) []float64 {
	earliest := dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	offsets := make([]float64, len(dates))
	for i, d := range dates {
		offsets[i] = math.Round(d.Sub(earliest).Hours() / 24)
	}
	return offsets
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, apperrors.ValidationError(fmt.Sprintf("column %q not found in header", name))
}
