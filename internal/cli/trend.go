package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/vitals"
)

// trendPointJSON is one combined trend point in JSON output.
type trendPointJSON struct {
	Date        string  `json:"date"`
	PassRatePct float64 `json:"pass_rate_pct"`
	MeanINP     float64 `json:"mean_inp"`
	MeanCLS     float64 `json:"mean_cls"`
	MeanLCP     float64 `json:"mean_lcp"`
}

// deviceTrendPointJSON is one per-device trend point in JSON output.
type deviceTrendPointJSON struct {
	Date        string  `json:"date"`
	Device      string  `json:"device"`
	PassRatePct float64 `json:"pass_rate_pct"`
}

// Execute implements the go-flags Commander interface for TrendCommand.
func (c *TrendCommand) Execute(args []string) error {
	store, _, logger, err := openStore(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithStore(store, logger)
}

// executeWithStore runs trend against a provided store (for testing).
func (c *TrendCommand) executeWithStore(store *history.Store, logger *log.Logger) error {
	rows, err := store.LoadAll()
	if err != nil {
		// Unreadable slices are skipped, not fatal; the series still renders
		// from what loaded.
		logger.Warn("history loaded with errors", "err", err)
	}
	if len(rows) == 0 {
		return history.ErrNoData
	}

	if c.ByDevice {
		points, err := vitals.DailyTrendByDevice(rows)
		if err != nil {
			return err
		}
		if c.globals != nil && c.globals.JSON {
			out := make([]deviceTrendPointJSON, len(points))
			for i, p := range points {
				out[i] = deviceTrendPointJSON{Date: p.Date, Device: string(p.Device), PassRatePct: p.PassRate}
			}
			return encodeJSON(out)
		}
		fmt.Printf("%-12s %-8s %s\n", "Date", "Device", "Pass rate")
		for _, p := range points {
			fmt.Printf("%-12s %-8s %s\n", p.Date, p.Device, vitals.FormatPercent(p.PassRate))
		}
		return nil
	}

	points, err := vitals.DailyTrend(rows)
	if err != nil {
		return err
	}
	if c.globals != nil && c.globals.JSON {
		out := make([]trendPointJSON, len(points))
		for i, p := range points {
			out[i] = trendPointJSON{
				Date:        p.Date,
				PassRatePct: p.PassRate,
				MeanINP:     p.MeanINP,
				MeanCLS:     p.MeanCLS,
				MeanLCP:     p.MeanLCP,
			}
		}
		return encodeJSON(out)
	}

	fmt.Printf("%-12s %-10s %-8s %-8s %s\n", "Date", "Pass rate", "INP", "CLS", "LCP")
	for _, p := range points {
		fmt.Printf("%-12s %-10s %-8.2f %-8.2f %.2f\n", p.Date, vitals.FormatPercent(p.PassRate), p.MeanINP, p.MeanCLS, p.MeanLCP)
	}
	return nil
}

func encodeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
