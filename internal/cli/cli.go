package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Consolidate *ConsolidateCommand
	Status      *StatusCommand
	Domains     *DomainsCommand
	Trend       *TrendCommand
	Inspect     *InspectCommand
	Export      *ExportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "cwvhist"
	parser.LongDescription = "Core Web Vitals snapshot consolidation, per-date history, and trend reporting."

	cmds := &commands{
		Consolidate: &ConsolidateCommand{globals: &globals, version: version},
		Status:      &StatusCommand{globals: &globals, version: version},
		Domains:     &DomainsCommand{globals: &globals, version: version},
		Trend:       &TrendCommand{globals: &globals, version: version},
		Inspect:     &InspectCommand{globals: &globals, version: version},
		Export:      &ExportCommand{globals: &globals, version: version},
	}

	parser.AddCommand("consolidate", "Archive the raw report into per-date history", "Parse the raw tab-delimited report and archive each previously-unseen date as an immutable slice. Safe to re-run.", cmds.Consolidate)
	parser.AddCommand("status", "Show the latest snapshot overview", "Show the latest snapshot date, domain counts, success rate, device averages, and per-metric pass rates.", cmds.Status)
	parser.AddCommand("domains", "List merged desktop/mobile records per domain", "List the latest snapshot's per-URL merged records, failing domains first, with an optional status filter.", cmds.Domains)
	parser.AddCommand("trend", "Show daily aggregate series", "Show the per-date pass-rate and metric-mean series over the full archived history.", cmds.Trend)
	parser.AddCommand("inspect", "Show one domain's metrics and history", "Show a single domain's latest desktop and mobile metrics with pass marks, plus its archived metric history.", cmds.Inspect)
	parser.AddCommand("export", "Export snapshot or history as CSV", "Write the latest snapshot or the full history as CSV to a file or stdout.", cmds.Export)

	return parser, &globals, cmds
}

// Run is the main entry point for the cwvhist CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("cwvhist %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
