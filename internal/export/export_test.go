package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
)

func TestWriteHistoryCSV(t *testing.T) {
	rows := []report.MetricRow{
		{Date: "2024-01-01", URL: "a.com", Device: report.Desktop, INP: 80, CLS: 80.5, LCP: 80},
		{Date: "2024-01-02", URL: "b.com", Device: report.Mobile, INP: 60, CLS: 90, LCP: 90},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "URL,Device,INP,CLS,LCP,Date", lines[0])
	assert.Equal(t, "a.com,desktop,80,80.5,80,2024-01-01", lines[1])
	assert.Equal(t, "b.com,mobile,60,90,90,2024-01-02", lines[2])
}

func TestWriteHistoryCSVNoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, nil))
	assert.Equal(t, "URL,Device,INP,CLS,LCP,Date", strings.TrimSpace(buf.String()))
}

func TestWriteSnapshotCSV(t *testing.T) {
	snap := &history.Snapshot{
		Date: "2024-01-01",
		Rows: []history.ScoredRow{
			{
				MetricRow: report.MetricRow{Date: "2024-01-01", URL: "a.com", Device: report.Desktop, INP: 80, CLS: 80, LCP: 80},
				Passed:    true,
			},
			{
				MetricRow: report.MetricRow{Date: "2024-01-01", URL: "a.com", Device: report.Mobile, INP: 60, CLS: 90, LCP: 90},
				Passed:    false,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshotCSV(&buf, snap))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "URL,Device,INP,CLS,LCP,Date,AllGreen", lines[0])
	assert.Equal(t, "a.com,desktop,80,80,80,2024-01-01,true", lines[1])
	assert.Equal(t, "a.com,mobile,60,90,90,2024-01-01,false", lines[2])
}
