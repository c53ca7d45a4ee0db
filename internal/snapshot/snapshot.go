// Package snapshot aggregates weekly store sales into an immutable value
// that every dashboard view reads from.
package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/stats"
)

// AllStores names the aggregate across every store.
const AllStores = "All Stores"

// ErrMissingColumns is returned when Date, Store or Weekly_Sales cannot be found.
var ErrMissingColumns = errors.New("missing required columns (Date, Store, Weekly_Sales)")

var dateLayouts = []string{"01/02/2006", "1/2/2006", "2006-01-02", "1/2/06"}

type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type MonthValue struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
}

type DeptTotal struct {
	Dept  string  `json:"dept"`
	Total float64 `json:"total"`
}

// Snapshot is built once from a table and never modified. Views return fresh slices.
type Snapshot struct {
	series map[string][]Point
	depts  map[string]map[string]float64
	stores []string

	// Rows counts data rows seen; Skipped counts rows dropped for missing or bad cells.
	Rows    int
	Skipped int
	From    time.Time
	To      time.Time
}

type columns struct{ date, store, weekly, dept int }

func findColumns(header []string) (columns, error) {
	c := columns{-1, -1, -1, -1}
	for i, h := range header {
		k := strings.ToLower(strings.NewReplacer(`"`, "", " ", "").Replace(strings.TrimSpace(h)))
		switch k {
		case "date":
			c.date = i
		case "store":
			c.store = i
		case "weekly_sales", "weeklysales":
			c.weekly = i
		case "dept", "department":
			c.dept = i
		}
	}
	if c.date < 0 || c.store < 0 || c.weekly < 0 {
		return c, fmt.Errorf("%w: found %v", ErrMissingColumns, header)
	}
	return c, nil
}

// Build aggregates rows in one pass: sales summed per store and date, and
// per store and department when a Dept column exists.
func Build(header []string, rows [][]string) (*Snapshot, error) {
	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]map[time.Time]float64)
	s := &Snapshot{depts: make(map[string]map[string]float64)}

	for _, r := range rows {
		s.Rows++
		dateStr, store, weeklyStr := cell(r, cols.date), cell(r, cols.store), cell(r, cols.weekly)
		if dateStr == "" || store == "" || weeklyStr == "" {
			s.Skipped++
			continue
		}
		d, ok := parseDate(dateStr)
		if !ok {
			s.Skipped++
			continue
		}
		weekly, ok := profile.ParseNumber(weeklyStr)
		if !ok {
			s.Skipped++
			continue
		}

		if byDate[store] == nil {
			byDate[store] = make(map[time.Time]float64)
		}
		byDate[store][d] += weekly
		if dept := cell(r, cols.dept); dept != "" {
			if s.depts[store] == nil {
				s.depts[store] = make(map[string]float64)
			}
			s.depts[store][dept] += weekly
		}
		if s.From.IsZero() || d.Before(s.From) {
			s.From = d
		}
		if d.After(s.To) {
			s.To = d
		}
	}

	s.series = make(map[string][]Point, len(byDate))
	for store, m := range byDate {
		s.series[store] = sortedPoints(m)
		s.stores = append(s.stores, store)
	}
	sort.Slice(s.stores, func(i, j int) bool {
		a, b := strings.ToLower(s.stores[i]), strings.ToLower(s.stores[j])
		if a == b {
			return s.stores[i] < s.stores[j]
		}
		return a < b
	})
	return s, nil
}

// Stores lists the store keys, case-insensitively sorted, with AllStores first.
func (s *Snapshot) Stores() []string {
	return append([]string{AllStores}, s.stores...)
}

// TimeSeries returns the daily totals for store within [from, to]. A zero
// bound is open.
func (s *Snapshot) TimeSeries(store string, from, to time.Time) []Point {
	var out []Point
	for _, p := range s.points(store) {
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MovingAverage smooths TimeSeries with a trailing window of points.
func (s *Snapshot) MovingAverage(store string, from, to time.Time, window int) []Point {
	pts := s.TimeSeries(store, from, to)
	vals := make([]float64, len(pts))
	for i, p := range pts {
		vals[i] = p.Value
	}
	for i, v := range stats.MovingAverage(vals, window) {
		pts[i].Value = v
	}
	return pts
}

// ByDepartment returns department totals sorted by department name.
func (s *Snapshot) ByDepartment(store string) []DeptTotal {
	sum := make(map[string]float64)
	for st, m := range s.depts {
		if store != AllStores && st != store {
			continue
		}
		for d, v := range m {
			sum[d] += v
		}
	}
	out := make([]DeptTotal, 0, len(sum))
	for d, v := range sum {
		out = append(out, DeptTotal{Dept: d, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dept < out[j].Dept })
	return out
}

// MonthlyTotals buckets the store's sales by calendar month, oldest first.
func (s *Snapshot) MonthlyTotals(store string) []MonthValue {
	var out []MonthValue
	for _, p := range s.points(store) {
		key := fmt.Sprintf("%04d-%02d", p.Date.Year(), int(p.Date.Month()))
		if n := len(out); n > 0 && out[n-1].Month == key {
			out[n-1].Value += p.Value
			continue
		}
		out = append(out, MonthValue{Month: key, Value: p.Value})
	}
	return out
}

// PercentChange is the month-over-month change of MonthlyTotals in percent.
// The first month and any month after a zero total report 0.
func (s *Snapshot) PercentChange(store string) []MonthValue {
	months := s.MonthlyTotals(store)
	vals := make([]float64, len(months))
	for i, m := range months {
		vals[i] = m.Value
	}
	for i, v := range stats.PercentChange(vals) {
		months[i].Value = v
	}
	return months
}

// points returns a copy of the sorted series for store; AllStores sums every store per date.
func (s *Snapshot) points(store string) []Point {
	if store != AllStores {
		return append([]Point(nil), s.series[store]...)
	}
	sum := make(map[time.Time]float64)
	for _, pts := range s.series {
		for _, p := range pts {
			sum[p.Date] += p.Value
		}
	}
	return sortedPoints(sum)
}

func sortedPoints(m map[time.Time]float64) []Point {
	out := make([]Point, 0, len(m))
	for d, v := range m {
		out = append(out, Point{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cell(r []string, c int) string {
	if c < 0 || c >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[c])
}
