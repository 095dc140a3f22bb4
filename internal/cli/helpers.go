package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cwvhist/cwvhist/internal/config"
	"github.com/cwvhist/cwvhist/internal/history"
)

// loadConfig resolves the config source: --config flag first, then the
// CWVHIST_CONFIG environment variable, then the default path (created with
// defaults on first use).
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	if env := os.Getenv("CWVHIST_CONFIG"); env != "" {
		return config.LoadOrCreateAt(env)
	}
	return config.LoadOrCreate()
}

// newLogger builds the CLI logger from the configured level; --verbose
// forces debug.
func newLogger(globals *GlobalFlags, cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if globals != nil && globals.Verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore loads the config, builds the logger, and opens the history
// store; --history-dir overrides the configured directory.
func openStore(globals *GlobalFlags) (*history.Store, *config.Config, *log.Logger, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(globals, cfg)

	dir := cfg.History.Dir
	if globals != nil && globals.HistoryDir != "" {
		dir = globals.HistoryDir
	}

	store, err := history.NewStore(dir, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, cfg, logger, nil
}

// reportPath resolves the raw report location (--report overrides config).
func reportPath(globals *GlobalFlags, cfg *config.Config) string {
	if globals != nil && globals.Report != "" {
		return globals.Report
	}
	return cfg.Report.Path
}
