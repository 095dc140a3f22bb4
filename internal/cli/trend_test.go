package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwvhist/cwvhist/internal/history"
)

func TestTrendCombined(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store, testRows())

	cmd := &TrendCommand{globals: &GlobalFlags{}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger()))
	})

	assert.Contains(t, output, "2024-01-01")
	assert.Contains(t, output, "2024-01-02")
	// 2024-01-01: 1 of 2 rows passes; 2024-01-02: 3 of 4.
	assert.Contains(t, output, "50.0%")
	assert.Contains(t, output, "75.0%")
}

func TestTrendJSONOrdered(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store, testRows())

	cmd := &TrendCommand{globals: &GlobalFlags{JSON: true}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger()))
	})

	var got []trendPointJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.InDelta(t, 50.0, got[0].PassRatePct, 1e-9)
	assert.InDelta(t, 70.0, got[0].MeanINP, 1e-9)

	assert.Equal(t, "2024-01-02", got[1].Date)
	assert.InDelta(t, 75.0, got[1].PassRatePct, 1e-9)
}

func TestTrendByDevice(t *testing.T) {
	store := setupTestStore(t)
	seedStore(t, store, testRows())

	cmd := &TrendCommand{ByDevice: true, globals: &GlobalFlags{JSON: true}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, quietLogger()))
	})

	var got []deviceTrendPointJSON
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	require.Len(t, got, 4)

	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "desktop", got[0].Device)
	assert.InDelta(t, 100.0, got[0].PassRatePct, 1e-9)

	assert.Equal(t, "mobile", got[1].Device)
	assert.InDelta(t, 0.0, got[1].PassRatePct, 1e-9)

	// 2024-01-02 desktop: a.com passes, b.com fails.
	assert.Equal(t, "2024-01-02", got[2].Date)
	assert.InDelta(t, 50.0, got[2].PassRatePct, 1e-9)
}

func TestTrendEmptyStore(t *testing.T) {
	store := setupTestStore(t)

	cmd := &TrendCommand{globals: &GlobalFlags{}, version: "dev"}
	err := cmd.executeWithStore(store, quietLogger())

	assert.ErrorIs(t, err, history.ErrNoData)
}
