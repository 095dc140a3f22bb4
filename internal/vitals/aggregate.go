package vitals

import (
	"errors"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/cwvhist/cwvhist/internal/report"
)

// ErrEmptyGroup signals an aggregate requested over zero rows. Callers get
// an explicit error instead of a NaN or a misleading 0%, so "no data" stays
// distinguishable from a genuine 0% rate.
var ErrEmptyGroup = errors.New("vitals: aggregate over empty group")

// DeviceAverages holds the per-metric means for one group of rows.
type DeviceAverages struct {
	MeanINP float64
	MeanCLS float64
	MeanLCP float64
}

// TrendPoint is one date's aggregate across both devices.
type TrendPoint struct {
	Date     string
	PassRate float64 // percent of rows passing all three metrics
	MeanINP  float64
	MeanCLS  float64
	MeanLCP  float64
}

// DeviceTrendPoint is one (date, device) joint pass rate.
type DeviceTrendPoint struct {
	Date     string
	Device   report.Device
	PassRate float64
}

// ByDevice computes per-device metric means over the given rows.
func ByDevice(rows []report.MetricRow) (map[report.Device]DeviceAverages, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGroup
	}

	groups := make(map[report.Device][]report.MetricRow)
	for _, r := range rows {
		groups[r.Device] = append(groups[r.Device], r)
	}

	out := make(map[report.Device]DeviceAverages, len(groups))
	for device, g := range groups {
		avg, err := averages(g)
		if err != nil {
			return nil, err
		}
		out[device] = avg
	}
	return out, nil
}

// PassRateByMetric computes, independently per metric, the percentage of
// rows meeting the pass threshold. This is not the joint all-green rate:
// a row failing INP still counts toward the CLS and LCP rates.
func PassRateByMetric(rows []report.MetricRow) (map[string]float64, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGroup
	}

	out := make(map[string]float64, len(report.MetricNames))
	for _, name := range report.MetricNames {
		passed := 0
		for _, r := range rows {
			if r.Metric(name) >= report.PassThreshold {
				passed++
			}
		}
		out[name] = float64(passed) / float64(len(rows)) * 100
	}
	return out, nil
}

// DailyTrend groups the full history by date and computes, per date, the
// joint pass rate across both devices plus the metric means. Points are
// ordered by date ascending.
func DailyTrend(history []report.MetricRow) ([]TrendPoint, error) {
	if len(history) == 0 {
		return nil, ErrEmptyGroup
	}

	groups := make(map[string][]report.MetricRow)
	for _, r := range history {
		groups[r.Date] = append(groups[r.Date], r)
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	for _, date := range dates {
		g := groups[date]
		avg, err := averages(g)
		if err != nil {
			return nil, err
		}
		points = append(points, TrendPoint{
			Date:     date,
			PassRate: jointPassRate(g),
			MeanINP:  avg.MeanINP,
			MeanCLS:  avg.MeanCLS,
			MeanLCP:  avg.MeanLCP,
		})
	}
	return points, nil
}

// DailyTrendByDevice computes the joint pass rate per (date, device) group,
// ordered by date then device.
func DailyTrendByDevice(history []report.MetricRow) ([]DeviceTrendPoint, error) {
	if len(history) == 0 {
		return nil, ErrEmptyGroup
	}

	type key struct {
		date   string
		device report.Device
	}
	groups := make(map[key][]report.MetricRow)
	for _, r := range history {
		k := key{date: r.Date, device: r.Device}
		groups[k] = append(groups[k], r)
	}
	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].device < keys[j].device
	})

	points := make([]DeviceTrendPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, DeviceTrendPoint{
			Date:     k.date,
			Device:   k.device,
			PassRate: jointPassRate(groups[k]),
		})
	}
	return points, nil
}

// FormatPercent renders a rate for display with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// averages computes the three metric means for a non-empty group.
func averages(rows []report.MetricRow) (DeviceAverages, error) {
	if len(rows) == 0 {
		return DeviceAverages{}, ErrEmptyGroup
	}

	inp := make([]float64, len(rows))
	cls := make([]float64, len(rows))
	lcp := make([]float64, len(rows))
	for i, r := range rows {
		inp[i] = r.INP
		cls[i] = r.CLS
		lcp[i] = r.LCP
	}

	var avg DeviceAverages
	var err error
	if avg.MeanINP, err = mean(inp); err != nil {
		return DeviceAverages{}, err
	}
	if avg.MeanCLS, err = mean(cls); err != nil {
		return DeviceAverages{}, err
	}
	if avg.MeanLCP, err = mean(lcp); err != nil {
		return DeviceAverages{}, err
	}
	return avg, nil
}

func mean(values []float64) (float64, error) {
	m, err := stats.Mean(values)
	if err != nil {
		return 0, ErrEmptyGroup
	}
	return m, nil
}

// jointPassRate is the percentage of rows passing all three metrics.
// Callers guarantee a non-empty group.
func jointPassRate(rows []report.MetricRow) float64 {
	passed := 0
	for _, r := range rows {
		if r.Passed() {
			passed++
		}
	}
	return float64(passed) / float64(len(rows)) * 100
}
