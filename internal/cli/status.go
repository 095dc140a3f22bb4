package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
	"github.com/cwvhist/cwvhist/internal/vitals"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version          string                        `json:"version"`
	Date             string                        `json:"date"`
	TotalDomains     int                           `json:"total_domains"`
	AllGreenDomains  int                           `json:"all_green_domains"`
	SuccessRatePct   float64                       `json:"success_rate_pct"`
	ByDevice         map[string]deviceAveragesJSON `json:"by_device"`
	PassRateByMetric map[string]float64            `json:"pass_rate_by_metric_pct"`
}

type deviceAveragesJSON struct {
	MeanINP float64 `json:"mean_inp"`
	MeanCLS float64 `json:"mean_cls"`
	MeanLCP float64 `json:"mean_lcp"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	store, _, _, err := openStore(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithStore(store)
}

// executeWithStore runs status against a provided store (for testing).
func (c *StatusCommand) executeWithStore(store *history.Store) error {
	snap, err := store.LatestSnapshot()
	if err != nil {
		return err
	}

	rows := snap.MetricRows()
	records := vitals.MergeByURL(rows)
	greenCount := len(vitals.FilterByStatus(records, true))
	successRate := float64(greenCount) / float64(len(records)) * 100

	byDevice, err := vitals.ByDevice(rows)
	if err != nil {
		return fmt.Errorf("device averages: %w", err)
	}
	passRates, err := vitals.PassRateByMetric(rows)
	if err != nil {
		return fmt.Errorf("pass rates: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(snap, len(records), greenCount, successRate, byDevice, passRates)
	}
	return c.printStatusHuman(snap, len(records), greenCount, successRate, byDevice, passRates)
}

func (c *StatusCommand) printStatusHuman(snap *history.Snapshot, total, green int, successRate float64, byDevice map[report.Device]vitals.DeviceAverages, passRates map[string]float64) error {
	fmt.Println("Core Web Vitals Status")
	fmt.Println("======================")
	fmt.Printf("Date:          %s\n", snap.Date)
	fmt.Printf("Domains:       %d\n", total)
	fmt.Printf("All green:     %d\n", green)
	fmt.Printf("Success rate:  %s\n", vitals.FormatPercent(successRate))

	fmt.Println()
	fmt.Println("Device averages:")
	for _, device := range []report.Device{report.Desktop, report.Mobile} {
		avg, ok := byDevice[device]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s INP %6.2f  CLS %6.2f  LCP %6.2f\n", device, avg.MeanINP, avg.MeanCLS, avg.MeanLCP)
	}

	fmt.Println()
	fmt.Println("Pass rate by metric:")
	for _, name := range report.MetricNames {
		fmt.Printf("  %-4s %s\n", name, vitals.FormatPercent(passRates[name]))
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(snap *history.Snapshot, total, green int, successRate float64, byDevice map[report.Device]vitals.DeviceAverages, passRates map[string]float64) error {
	out := statusJSON{
		Version:          c.version,
		Date:             snap.Date,
		TotalDomains:     total,
		AllGreenDomains:  green,
		SuccessRatePct:   successRate,
		ByDevice:         make(map[string]deviceAveragesJSON, len(byDevice)),
		PassRateByMetric: passRates,
	}
	for device, avg := range byDevice {
		out.ByDevice[string(device)] = deviceAveragesJSON{
			MeanINP: avg.MeanINP,
			MeanCLS: avg.MeanCLS,
			MeanLCP: avg.MeanLCP,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
