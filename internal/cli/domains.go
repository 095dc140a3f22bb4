package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/vitals"
)

// domainJSON is one merged record in JSON output. Device blocks are null
// when that device has no data for the URL.
type domainJSON struct {
	URL      string             `json:"url"`
	Desktop  *deviceMetricsJSON `json:"desktop"`
	Mobile   *deviceMetricsJSON `json:"mobile"`
	AllGreen bool               `json:"all_green"`
}

type deviceMetricsJSON struct {
	INP float64 `json:"inp"`
	CLS float64 `json:"cls"`
	LCP float64 `json:"lcp"`
}

// Execute implements the go-flags Commander interface for DomainsCommand.
func (c *DomainsCommand) Execute(args []string) error {
	store, _, _, err := openStore(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithStore(store)
}

// executeWithStore runs domains against a provided store (for testing).
func (c *DomainsCommand) executeWithStore(store *history.Store) error {
	snap, err := store.LatestSnapshot()
	if err != nil {
		return err
	}

	records := vitals.MergeByURL(snap.MetricRows())
	switch c.Status {
	case "", "all":
	case "green":
		records = vitals.FilterByStatus(records, true)
	case "failing":
		records = vitals.FilterByStatus(records, false)
	default:
		return fmt.Errorf("invalid status %q (use all, green, or failing)", c.Status)
	}

	if c.globals != nil && c.globals.JSON {
		return printDomainsJSON(records)
	}
	return printDomainsHuman(snap.Date, records)
}

func printDomainsHuman(date string, records []vitals.MergedDomainRecord) error {
	fmt.Printf("Domains for %s (%d entries)\n", date, len(records))
	fmt.Printf("%-30s %-20s %-20s %s\n", "URL", "Desktop INP/CLS/LCP", "Mobile INP/CLS/LCP", "Status")
	for _, rec := range records {
		status := "needs improvement"
		if rec.AllGreen {
			status = "all green"
		}
		fmt.Printf("%-30s %-20s %-20s %s\n", rec.URL, formatMetrics(rec.Desktop), formatMetrics(rec.Mobile), status)
	}
	return nil
}

func printDomainsJSON(records []vitals.MergedDomainRecord) error {
	out := make([]domainJSON, len(records))
	for i, rec := range records {
		out[i] = domainJSON{
			URL:      rec.URL,
			Desktop:  metricsJSON(rec.Desktop),
			Mobile:   metricsJSON(rec.Mobile),
			AllGreen: rec.AllGreen,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatMetrics(m *vitals.DeviceMetrics) string {
	if m == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f/%.1f/%.1f", m.INP, m.CLS, m.LCP)
}

func metricsJSON(m *vitals.DeviceMetrics) *deviceMetricsJSON {
	if m == nil {
		return nil
	}
	return &deviceMetricsJSON{INP: m.INP, CLS: m.CLS, LCP: m.LCP}
}
