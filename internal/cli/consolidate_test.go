package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidateArchivesNewDates(t *testing.T) {
	store := setupTestStore(t)
	cmd := &ConsolidateCommand{globals: &GlobalFlags{}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger(), "cwv_report.txt", testRows()))
	})

	assert.Contains(t, output, "Parsed 6 rows across 2 dates")
	assert.Contains(t, output, "2024-01-01")
	assert.Contains(t, output, "2024-01-02")

	dates, err := store.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, dates)
}

func TestConsolidateRerunSkipsEverything(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store, testRows())

	cmd := &ConsolidateCommand{globals: &GlobalFlags{}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger(), "cwv_report.txt", testRows()))
	})

	assert.Contains(t, output, "No new dates to archive")
	assert.Contains(t, output, "Already there:")
}

func TestConsolidateJSON(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store, testRows()[:2]) // only 2024-01-01 pre-archived

	cmd := &ConsolidateCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger(), "cwv_report.txt", testRows()))
	})

	var got consolidateJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got))

	assert.Equal(t, 6, got.Rows)
	assert.Equal(t, 2, got.Dates)
	assert.Equal(t, []string{"2024-01-02"}, got.Archived)
	assert.Equal(t, []string{"2024-01-01"}, got.Skipped)
}
