package report

import (
	"fmt"
	"strings"
)

// Device identifies the form factor a measurement was taken on.
type Device string

const (
	Desktop Device = "desktop"
	Mobile  Device = "mobile"
)

// PassThreshold is the score each metric must reach to count as passing.
// Scores are normalized to a 0-100 scale upstream.
const PassThreshold = 75.0

// MetricNames lists the Core Web Vitals metrics in schema order.
var MetricNames = []string{"INP", "CLS", "LCP"}

// ParseDevice normalizes a raw device label. Only desktop and mobile are
// valid; anything else is a malformed row.
func ParseDevice(s string) (Device, error) {
	switch Device(strings.ToLower(strings.TrimSpace(s))) {
	case Desktop:
		return Desktop, nil
	case Mobile:
		return Mobile, nil
	default:
		return "", fmt.Errorf("unknown device %q", s)
	}
}

// MetricRow is one (date, URL, device) performance observation.
// Date is always a canonical YYYY-MM-DD string; (Date, URL, Device)
// uniquely identifies a row within one report.
type MetricRow struct {
	Date   string
	URL    string
	Device Device
	INP    float64
	CLS    float64
	LCP    float64
}

// Passed reports whether the row meets the pass threshold on all three metrics.
func (r MetricRow) Passed() bool {
	return r.INP >= PassThreshold && r.CLS >= PassThreshold && r.LCP >= PassThreshold
}

// Metric returns the named metric's score. Unknown names return 0; callers
// are expected to iterate MetricNames.
func (r MetricRow) Metric(name string) float64 {
	switch name {
	case "INP":
		return r.INP
	case "CLS":
		return r.CLS
	case "LCP":
		return r.LCP
	default:
		return 0
	}
}
