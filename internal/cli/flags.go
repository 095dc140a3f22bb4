package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config     string `long:"config" description:"Path to config file" default:""`
	HistoryDir string `long:"history-dir" description:"Override history store directory"`
	Report     string `long:"report" description:"Override raw report path"`
	JSON       bool   `long:"json" description:"Output in JSON format"`
	Verbose    bool   `long:"verbose" description:"Enable verbose logging"`
	Version    bool   `long:"version" description:"Show version and exit"`
}

// ConsolidateCommand parses the raw report and archives new date slices.
type ConsolidateCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand prints the latest snapshot overview: domains, success rate, averages.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// DomainsCommand prints the merged per-URL desktop/mobile table for the latest snapshot.
type DomainsCommand struct {
	Status string `long:"status" description:"Filter by status: all | green | failing" default:"all"`

	globals *GlobalFlags
	version string
}

// TrendCommand prints the daily aggregate series over the full history.
type TrendCommand struct {
	ByDevice bool `long:"by-device" description:"Per-device pass-rate series instead of the combined trend"`

	globals *GlobalFlags
	version string
}

// InspectCommand prints one domain's latest metrics and metric history.
type InspectCommand struct {
	URL string `long:"url" description:"Domain URL to inspect (required)"`

	globals *GlobalFlags
	version string
}

// ExportCommand writes a CSV export of the latest snapshot or the full history.
type ExportCommand struct {
	What   string `long:"what" description:"What to export: current | history" default:"current"`
	Output string `long:"output" description:"Write to file instead of stdout"`

	globals *GlobalFlags
	version string
}
