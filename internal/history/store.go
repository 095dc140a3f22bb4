// Package history is the flat-file archive of Core Web Vitals date slices:
// one immutable tab-separated file per calendar date, written at most once.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/cwvhist/cwvhist/internal/report"
)

// Slice files are named <date>_cwv_report.txt under the store directory.
const sliceSuffix = "_cwv_report.txt"

// sliceColumns is the on-disk column order of one date slice. Loading is
// header-driven, so the order matters only for writing.
var sliceColumns = []string{"URL", "Device", "INP", "CLS", "LCP", "Date"}

// ErrNoData signals a request against an empty history store.
var ErrNoData = errors.New("history: no archived data")

// PersistenceError reports a failure reading or writing one date slice.
type PersistenceError struct {
	Date string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history slice %s (%s): %v", e.Date, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is a flat-file history store. Archive never rewrites an existing
// date, so a store is an append-only set of per-date slices.
type Store struct {
	dir    string
	logger *log.Logger
}

// NewStore opens (creating if necessary) a history store rooted at dir.
// A nil logger falls back to the package default.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) slicePath(date string) string {
	return filepath.Join(s.dir, date+sliceSuffix)
}

// Dates enumerates the archived canonical date keys, sorted ascending.
func (s *Store) Dates() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, sliceSuffix) {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, sliceSuffix))
	}
	sort.Strings(dates)
	return dates, nil
}

// Archive groups rows by canonical date and persists each previously-unseen
// date as a new slice. Existing dates are skipped, so re-running consolidation
// over the same or an overlapping report never mutates the archive. A failure
// on one date is logged and collected; the remaining dates still archive.
// Returns the dates newly written, sorted ascending.
func (s *Store) Archive(rows []report.MetricRow) ([]string, error) {
	byDate := make(map[string][]report.MetricRow)
	for _, r := range rows {
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var written []string
	var errs error
	for _, date := range dates {
		created, err := s.writeSlice(date, byDate[date])
		if err != nil {
			s.logger.Warn("archiving date slice failed", "date", date, "err", err)
			errs = multierr.Append(errs, err)
			continue
		}
		if created {
			s.logger.Debug("archived date slice", "date", date, "rows", len(byDate[date]))
			written = append(written, date)
		} else {
			s.logger.Debug("date already archived, skipping", "date", date)
		}
	}
	return written, errs
}

// writeSlice persists one date slice with exclusive-create semantics. The
// O_EXCL open makes the write-once check atomic: when two archivers race on
// the same date, whoever creates the file first wins and the other sees it
// as already present.
func (s *Store) writeSlice(date string, rows []report.MetricRow) (bool, error) {
	path := s.slicePath(date)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		// Only a regular file counts as an archived slice.
		if info, serr := os.Stat(path); serr == nil && info.Mode().IsRegular() {
			return false, nil
		}
		return false, &PersistenceError{Date: date, Path: path, Err: err}
	}
	if err != nil {
		return false, &PersistenceError{Date: date, Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	werr := w.Write(sliceColumns)
	for _, r := range rows {
		if werr != nil {
			break
		}
		werr = w.Write([]string{
			r.URL, string(r.Device),
			formatScore(r.INP), formatScore(r.CLS), formatScore(r.LCP),
			r.Date,
		})
	}
	if werr == nil {
		w.Flush()
		werr = w.Error()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		// A half-written slice would claim the date forever; drop it so a
		// retry can create it again.
		os.Remove(path)
		return false, &PersistenceError{Date: date, Path: path, Err: werr}
	}
	return true, nil
}

// LoadAll reads and concatenates every archived slice into the full
// historical dataset. An empty store yields (nil, nil): the explicit
// "no data" signal. A slice that fails to load is skipped, logged, and
// reported through the returned error; rows from the remaining slices are
// still returned.
func (s *Store) LoadAll() ([]report.MetricRow, error) {
	dates, err := s.Dates()
	if err != nil {
		return nil, err
	}

	var rows []report.MetricRow
	var errs error
	for _, date := range dates {
		sliceRows, err := s.loadSlice(date)
		if err != nil {
			s.logger.Warn("skipping unreadable date slice", "date", date, "err", err)
			errs = multierr.Append(errs, err)
			continue
		}
		rows = append(rows, sliceRows...)
	}
	return rows, errs
}

func (s *Store) loadSlice(date string) ([]report.MetricRow, error) {
	path := s.slicePath(date)
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistenceError{Date: date, Path: path, Err: err}
	}
	defer f.Close()

	rows, err := report.ParseReport(f)
	if err != nil {
		return nil, &PersistenceError{Date: date, Path: path, Err: err}
	}
	return rows, nil
}

// ScoredRow is a MetricRow augmented with the joint pass/fail flag.
type ScoredRow struct {
	report.MetricRow
	Passed bool
}

// Snapshot is the latest archived date slice with per-row pass flags.
type Snapshot struct {
	Date string
	Rows []ScoredRow
}

// MetricRows strips the pass flags, returning the snapshot's plain rows.
func (s *Snapshot) MetricRows() []report.MetricRow {
	rows := make([]report.MetricRow, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = r.MetricRow
	}
	return rows
}

// LatestSnapshot loads only the most recent date slice. Canonical YYYY-MM-DD
// keys sort correctly lexicographically, so the max key is the newest date.
// Fails with ErrNoData when the store is empty.
func (s *Store) LatestSnapshot() (*Snapshot, error) {
	dates, err := s.Dates()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoData
	}

	latest := dates[len(dates)-1]
	rows, err := s.loadSlice(latest)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Date: latest, Rows: make([]ScoredRow, len(rows))}
	for i, r := range rows {
		snap.Rows[i] = ScoredRow{MetricRow: r, Passed: r.Passed()}
	}
	return snap, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
