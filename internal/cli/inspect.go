package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
	"github.com/cwvhist/cwvhist/internal/vitals"
)

// inspectJSON is the JSON output structure for the inspect command.
type inspectJSON struct {
	URL     string               `json:"url"`
	Date    string               `json:"date"`
	Desktop *deviceMetricsJSON   `json:"desktop"`
	Mobile  *deviceMetricsJSON   `json:"mobile"`
	History []inspectHistoryJSON `json:"history"`
}

type inspectHistoryJSON struct {
	Date   string  `json:"date"`
	Device string  `json:"device"`
	INP    float64 `json:"inp"`
	CLS    float64 `json:"cls"`
	LCP    float64 `json:"lcp"`
}

// Execute implements the go-flags Commander interface for InspectCommand.
func (c *InspectCommand) Execute(args []string) error {
	if c.URL == "" {
		return fmt.Errorf("--url is required")
	}
	store, _, logger, err := openStore(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithStore(store, logger)
}

// executeWithStore runs inspect against a provided store (for testing).
func (c *InspectCommand) executeWithStore(store *history.Store, logger *log.Logger) error {
	snap, err := store.LatestSnapshot()
	if err != nil {
		return err
	}

	var current *vitals.MergedDomainRecord
	for _, rec := range vitals.MergeByURL(snap.MetricRows()) {
		if rec.URL == c.URL {
			r := rec
			current = &r
			break
		}
	}

	allRows, err := store.LoadAll()
	if err != nil {
		logger.Warn("history loaded with errors", "err", err)
	}
	var histRows []report.MetricRow
	for _, r := range allRows {
		if r.URL == c.URL {
			histRows = append(histRows, r)
		}
	}

	if current == nil && len(histRows) == 0 {
		return fmt.Errorf("domain %q not found in snapshot or history", c.URL)
	}

	if c.globals != nil && c.globals.JSON {
		out := inspectJSON{
			URL:     c.URL,
			Date:    snap.Date,
			History: make([]inspectHistoryJSON, len(histRows)),
		}
		if current != nil {
			out.Desktop = metricsJSON(current.Desktop)
			out.Mobile = metricsJSON(current.Mobile)
		}
		for i, r := range histRows {
			out.History[i] = inspectHistoryJSON{
				Date: r.Date, Device: string(r.Device),
				INP: r.INP, CLS: r.CLS, LCP: r.LCP,
			}
		}
		return encodeJSON(out)
	}

	fmt.Printf("%s (%s)\n", c.URL, snap.Date)
	for _, device := range []report.Device{report.Desktop, report.Mobile} {
		fmt.Printf("\n%s:\n", deviceTitle(device))
		var m *vitals.DeviceMetrics
		if current != nil {
			if device == report.Desktop {
				m = current.Desktop
			} else {
				m = current.Mobile
			}
		}
		if m == nil {
			fmt.Println("  (no data)")
			continue
		}
		printMetric("INP", m.INP)
		printMetric("CLS", m.CLS)
		printMetric("LCP", m.LCP)
	}

	if len(histRows) > 0 {
		fmt.Println("\nHistory:")
		for _, r := range histRows {
			fmt.Printf("  %s  %-8s INP %6.2f  CLS %6.2f  LCP %6.2f\n", r.Date, r.Device, r.INP, r.CLS, r.LCP)
		}
	}
	return nil
}

func printMetric(name string, v float64) {
	mark := "pass"
	if v < report.PassThreshold {
		mark = "FAIL"
	}
	fmt.Printf("  %-4s %6.2f  %s\n", name, v, mark)
}

func deviceTitle(d report.Device) string {
	switch d {
	case report.Desktop:
		return "Desktop"
	case report.Mobile:
		return "Mobile"
	default:
		return string(d)
	}
}
