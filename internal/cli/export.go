package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cwvhist/cwvhist/internal/export"
	"github.com/cwvhist/cwvhist/internal/history"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, _, logger, err := openStore(c.globals)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return c.executeWithStore(store, logger, out)
}

// executeWithStore writes the requested export to out (for testing).
func (c *ExportCommand) executeWithStore(store *history.Store, logger *log.Logger, out io.Writer) error {
	switch c.What {
	case "", "current":
		snap, err := store.LatestSnapshot()
		if err != nil {
			return err
		}
		return export.WriteSnapshotCSV(out, snap)
	case "history":
		rows, err := store.LoadAll()
		if err != nil {
			logger.Warn("history loaded with errors", "err", err)
		}
		if len(rows) == 0 {
			return history.ErrNoData
		}
		return export.WriteHistoryCSV(out, rows)
	default:
		return fmt.Errorf("invalid export target %q (use current or history)", c.What)
	}
}
