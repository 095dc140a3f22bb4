package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Path: "cwv_report.txt",
		},
		History: HistoryConfig{
			Dir: "history",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
