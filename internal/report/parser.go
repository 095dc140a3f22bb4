package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a malformed report: a missing required column, or a
// date/number field that cannot be coerced after normalization.
type ParseError struct {
	Line int // 1-based line in the report; 0 when the header itself is bad
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse report line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse report: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// requiredColumns must all be present in the header. Column order is not
// load-bearing and extra columns are ignored.
var requiredColumns = []string{"Date", "URL", "Device", "INP", "CLS", "LCP"}

// dateLayouts covers the date shapes seen in raw reports once the timezone
// suffix is stripped: canonical dates from archived slices and JS-style
// timestamps from the consolidated export.
var dateLayouts = []string{
	"2006-01-02",
	"Mon Jan 02 2006 15:04:05",
	"Mon Jan 2 2006 15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	time.RFC3339,
}

// NormalizeDate strips everything from a trailing "GMT" marker onward, trims
// whitespace, and canonicalizes the rest to a YYYY-MM-DD string.
func NormalizeDate(raw string) (string, error) {
	s := raw
	if i := strings.Index(s, "GMT"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

// ParseReport reads a tab-delimited performance report into typed rows. The
// header row drives column positions, so reports and archived slices can
// order columns differently. Dates are normalized to canonical form; rows
// that fail to coerce fail the whole parse with a *ParseError rather than
// propagating untyped values downstream.
func ParseReport(r io.Reader) ([]MetricRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("empty report")}
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &ParseError{Err: fmt.Errorf("missing required column %q", col)}
		}
	}

	var rows []MetricRow
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if isBlank(record) {
			continue
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := NormalizeDate(field("Date"))
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		device, err := ParseDevice(field("Device"))
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		url := field("URL")
		if url == "" {
			return nil, &ParseError{Line: line, Err: errors.New("empty URL")}
		}

		row := MetricRow{Date: date, URL: url, Device: device}
		for _, name := range MetricNames {
			score, err := parseScore(name, field(name))
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			switch name {
			case "INP":
				row.INP = score
			case "CLS":
				row.CLS = score
			case "LCP":
				row.LCP = score
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseScore(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s score %q", col, s)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
