// Package vitals holds the pure transforms over metric rows: the
// desktop/mobile merge and the aggregate and trend computations.
package vitals

import (
	"sort"

	"github.com/cwvhist/cwvhist/internal/report"
)

// DeviceMetrics holds one device's three scores for a URL.
type DeviceMetrics struct {
	INP float64
	CLS float64
	LCP float64
}

func (m DeviceMetrics) allGreen() bool {
	return m.INP >= report.PassThreshold &&
		m.CLS >= report.PassThreshold &&
		m.LCP >= report.PassThreshold
}

// MergedDomainRecord joins a URL's desktop and mobile rows side by side.
// A nil device pointer means no row was observed for that device.
//
// AllGreen is true only when both devices are present and all six metrics
// meet the pass threshold. An unmeasured device is not evidence of green,
// so a missing device forces AllGreen false; the record still carries the
// present device's metrics rather than being dropped.
type MergedDomainRecord struct {
	URL      string
	Desktop  *DeviceMetrics
	Mobile   *DeviceMetrics
	AllGreen bool
}

// MergeByURL performs a full outer join of desktop and mobile rows on URL.
// Every URL present in either device subset appears exactly once. Records
// are ordered for triage: failing domains first, URL ascending within each
// status group.
func MergeByURL(rows []report.MetricRow) []MergedDomainRecord {
	byURL := make(map[string]*MergedDomainRecord)
	for _, r := range rows {
		rec, ok := byURL[r.URL]
		if !ok {
			rec = &MergedDomainRecord{URL: r.URL}
			byURL[r.URL] = rec
		}
		m := &DeviceMetrics{INP: r.INP, CLS: r.CLS, LCP: r.LCP}
		switch r.Device {
		case report.Desktop:
			rec.Desktop = m
		case report.Mobile:
			rec.Mobile = m
		}
	}

	records := make([]MergedDomainRecord, 0, len(byURL))
	for _, rec := range byURL {
		rec.AllGreen = rec.Desktop != nil && rec.Mobile != nil &&
			rec.Desktop.allGreen() && rec.Mobile.allGreen()
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].AllGreen != records[j].AllGreen {
			return !records[i].AllGreen
		}
		return records[i].URL < records[j].URL
	})
	return records
}

// FilterByStatus returns the records whose AllGreen flag matches want,
// preserving order and leaving the input untouched.
func FilterByStatus(records []MergedDomainRecord, want bool) []MergedDomainRecord {
	var out []MergedDomainRecord
	for _, rec := range records {
		if rec.AllGreen == want {
			out = append(out, rec)
		}
	}
	return out
}
