package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// quietLogger returns a logger that discards everything.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// setupTestStore creates a history store in a temp directory.
func setupTestStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.NewStore(t.TempDir(), quietLogger())
	require.NoError(t, err)
	return store
}

// seedStore archives the given rows and fails the test on any error.
func seedStore(t *testing.T, store *history.Store, rows []report.MetricRow) {
	t.Helper()
	_, err := store.Archive(rows)
	require.NoError(t, err)
}

// testRows is a two-date, two-domain dataset used across command tests.
func testRows() []report.MetricRow {
	return []report.MetricRow{
		{Date: "2024-01-01", URL: "a.com", Device: report.Desktop, INP: 80, CLS: 80, LCP: 80},
		{Date: "2024-01-01", URL: "a.com", Device: report.Mobile, INP: 60, CLS: 90, LCP: 90},
		{Date: "2024-01-02", URL: "a.com", Device: report.Desktop, INP: 85, CLS: 85, LCP: 85},
		{Date: "2024-01-02", URL: "a.com", Device: report.Mobile, INP: 90, CLS: 90, LCP: 90},
		{Date: "2024-01-02", URL: "b.com", Device: report.Desktop, INP: 40, CLS: 85, LCP: 85},
		{Date: "2024-01-02", URL: "b.com", Device: report.Mobile, INP: 90, CLS: 90, LCP: 90},
	}
}
