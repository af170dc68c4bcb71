// Package ingest turns tabular location-event exports into raw event rows.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"equiptrack/internal/models"
)

// fieldSynonyms lists, per canonical field, the accepted column names in lookup order.
var fieldSynonyms = []struct {
	field string
	names []string
}{
	{"device", []string{"device", "Device"}},
	{"location", []string{"location", "Location"}},
	{"status", []string{"status", "Status"}},
	{"in", []string{"in", "In", "timeIn"}},
	{"out", []string{"out", "Out", "timeOut"}},
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
}

// ErrUnrecognizedHeader is returned when no header cell names a known column.
var ErrUnrecognizedHeader = errors.New("no recognized columns in csv header")

// Result is the output of reading one export. Fields without a column are read
// as empty values, so every row reports them as missing.
type Result struct {
	Events         []models.RawEvent
	Errors         []models.RowError
	MissingColumns []string
}

// ParseTime accepts the timestamp layouts seen in tracking exports.
// Values without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// resolveColumns maps each canonical field to a column index, -1 when absent.
// Exact names win; otherwise a case-insensitive match against the synonym list
// is used.
func resolveColumns(header []string) (map[string]int, []string, error) {
	exact := make(map[string]int, len(header))
	folded := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		if _, ok := folded[strings.ToLower(h)]; !ok {
			folded[strings.ToLower(h)] = i
		}
	}

	cols := make(map[string]int, len(fieldSynonyms))
	var missing []string
	for _, fs := range fieldSynonyms {
		idx, ok := -1, false
		for _, name := range fs.names {
			if idx, ok = exact[name]; ok {
				break
			}
		}
		if !ok {
			for _, name := range fs.names {
				if idx, ok = folded[strings.ToLower(name)]; ok {
					break
				}
			}
		}
		if !ok {
			missing = append(missing, fs.field)
			idx = -1
		}
		cols[fs.field] = idx
	}
	if len(missing) == len(fieldSynonyms) {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnrecognizedHeader, strings.Join(header, ","))
	}
	return cols, missing, nil
}

// ReadCSV reads an export with a header row. Malformed records become row
// errors; only an unreadable header fails the whole read.
func ReadCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &Result{}

	header, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols, missing, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}
	result.MissingColumns = missing

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			result.Errors = append(result.Errors, models.RowError{Line: line, Error: err.Error()})
			continue
		}
		line, _ = reader.FieldPos(0)

		get := func(field string) string {
			if idx := cols[field]; idx >= 0 && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}

		result.Events = append(result.Events, models.RawEvent{
			Line:     line,
			Device:   get("device"),
			Location: get("location"),
			Status:   get("status"),
			In:       get("in"),
			Out:      get("out"),
		})
	}

	return result, nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// FromRecords converts keyed records (for example a JSON array) using the same
// synonym table. Records are numbered from 1.
func FromRecords(records []map[string]any) []models.RawEvent {
	events := make([]models.RawEvent, 0, len(records))
	for i, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		get := func(field string) string {
			for _, fs := range fieldSynonyms {
				if fs.field != field {
					continue
				}
				for _, name := range fs.names {
					if v, ok := rec[name]; ok {
						return stringify(v)
					}
				}
				for _, name := range fs.names {
					for _, k := range keys {
						if strings.EqualFold(k, name) {
							return stringify(rec[k])
						}
					}
				}
			}
			return ""
		}
		events = append(events, models.RawEvent{
			Line:     i + 1,
			Device:   get("device"),
			Location: get("location"),
			Status:   get("status"),
			In:       get("in"),
			Out:      get("out"),
		})
	}
	return events
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
