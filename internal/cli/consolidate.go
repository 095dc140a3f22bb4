package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cwvhist/cwvhist/internal/history"
	"github.com/cwvhist/cwvhist/internal/report"
)

// consolidateJSON is the JSON output structure for the consolidate command.
type consolidateJSON struct {
	Report   string   `json:"report"`
	Rows     int      `json:"rows"`
	Dates    int      `json:"dates"`
	Archived []string `json:"archived"`
	Skipped  []string `json:"skipped"`
}

// Execute implements the go-flags Commander interface for ConsolidateCommand.
func (c *ConsolidateCommand) Execute(args []string) error {
	store, cfg, logger, err := openStore(c.globals)
	if err != nil {
		return err
	}

	path := reportPath(c.globals, cfg)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	rows, err := report.ParseReport(f)
	if err != nil {
		return fmt.Errorf("parse report %s: %w", path, err)
	}

	return c.executeWithStore(store, logger, path, rows)
}

// executeWithStore archives parsed rows into the given store (for testing).
func (c *ConsolidateCommand) executeWithStore(store *history.Store, logger *log.Logger, path string, rows []report.MetricRow) error {
	written, archiveErr := store.Archive(rows)
	if archiveErr != nil {
		logger.Warn("some dates failed to archive", "err", archiveErr)
	}

	dates := distinctDates(rows)
	skipped := diffDates(dates, written)

	if c.globals != nil && c.globals.JSON {
		out := consolidateJSON{
			Report:   path,
			Rows:     len(rows),
			Dates:    len(dates),
			Archived: emptyIfNil(written),
			Skipped:  emptyIfNil(skipped),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		return archiveErr
	}

	fmt.Printf("Parsed %d rows across %d dates from %s\n", len(rows), len(dates), path)
	if len(written) > 0 {
		fmt.Printf("Archived:      %s\n", strings.Join(written, ", "))
	}
	if len(skipped) > 0 {
		fmt.Printf("Already there: %s\n", strings.Join(skipped, ", "))
	}
	if len(written) == 0 {
		fmt.Println("No new dates to archive")
	}

	return archiveErr
}

// distinctDates returns the sorted set of canonical dates in rows.
func distinctDates(rows []report.MetricRow) []string {
	set := map[string]struct{}{}
	for _, r := range rows {
		set[r.Date] = struct{}{}
	}
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// diffDates returns the dates in all that are not in written, order preserved.
func diffDates(all, written []string) []string {
	wset := map[string]struct{}{}
	for _, d := range written {
		wset[d] = struct{}{}
	}
	var out []string
	for _, d := range all {
		if _, ok := wset[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
