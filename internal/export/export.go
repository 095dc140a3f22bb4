// Package export serializes pipeline outputs to CSV for download-style
// consumers. Column order follows the history schema.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
)

var columns = []string{"URL", "Device", "INP", "CLS", "LCP", "Date"}

// WriteHistoryCSV writes the full historical dataset.
func WriteHistoryCSV(w io.Writer, rows []report.MetricRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(record(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSnapshotCSV writes the latest snapshot, appending the computed
// per-row AllGreen flag after the schema columns.
func WriteSnapshotCSV(w io.Writer, snap *history.Snapshot) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, columns...), "AllGreen")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range snap.Rows {
		rec := append(record(r.MetricRow), strconv.FormatBool(r.Passed))
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(r report.MetricRow) []string {
	return []string{
		r.URL, string(r.Device),
		formatScore(r.INP), formatScore(r.CLS), formatScore(r.LCP),
		r.Date,
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
