package recommend

import (
	"time"

	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/stats"
)

// ChartKind is the outcome of the auto-chart cascade.
type ChartKind string

const (
	Histogram ChartKind = "histogram"
	Line      ChartKind = "line"
	Bar       ChartKind = "bar"
	Scatter   ChartKind = "scatter"
	Table     ChartKind = "table"
)

// DefaultBins is the histogram width used when none is configured.
const DefaultBins = 10

type TimePoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

type XYPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ChartChoice is a single chart recommendation together with the data it plots.
// Only the series matching Kind is populated.
type ChartChoice struct {
	Kind    ChartKind       `json:"kind"`
	XColumn string          `json:"x_column,omitempty"`
	YColumn string          `json:"y_column,omitempty"`
	Reason  string          `json:"reason"`
	Bins    []stats.Bin     `json:"bins,omitempty"`
	Series  []TimePoint     `json:"series,omitempty"`
	Totals  []CategoryTotal `json:"totals,omitempty"`
	Points  []XYPoint       `json:"points,omitempty"`
}

// Charter runs the one-shot auto-chart cascade.
type Charter struct {
	// Bins is the histogram bin count; 0 means DefaultBins.
	Bins int
}

// RecommendChart picks a chart with the default Charter.
func RecommendChart(rows [][]string, profiles []profile.ColumnProfile) ChartChoice {
	return Charter{}.Recommend(rows, profiles)
}

// Recommend evaluates the cascade against the whole-dataset schema in fixed
// order: histogram, line, bar, scatter, then a table fallback. Rows whose
// relevant cells fail to parse are skipped.
func (c Charter) Recommend(rows [][]string, profiles []profile.ColumnProfile) ChartChoice {
	bins := c.Bins
	if bins <= 0 {
		bins = DefaultBins
	}
	dateIdx := indexOf(profiles, func(t profile.SemanticType) bool { return t == profile.DateTime })
	numIdx := indexOf(profiles, profile.SemanticType.IsNumeric)
	catIdx := indexOf(profiles, func(t profile.SemanticType) bool { return t == profile.Categorical })

	switch {
	case len(profiles) == 1 && numIdx == 0:
		return ChartChoice{
			Kind:    Histogram,
			XColumn: profiles[0].Name,
			Reason:  "single numeric column shows distribution",
			Bins:    stats.Histogram(numbers(rows, 0), bins),
		}
	case len(profiles) >= 2 && dateIdx >= 0 && numIdx >= 0:
		pattern := profiles[dateIdx].DatePattern
		var series []TimePoint
		for _, r := range rows {
			d, ok := profile.ParseDate(cell(r, dateIdx), pattern)
			if !ok {
				continue
			}
			v, ok := profile.ParseNumber(cell(r, numIdx))
			if !ok {
				continue
			}
			series = append(series, TimePoint{Time: d, Value: v})
		}
		return ChartChoice{
			Kind:    Line,
			XColumn: profiles[dateIdx].Name,
			YColumn: profiles[numIdx].Name,
			Reason:  "numeric values over time",
			Series:  series,
		}
	case len(profiles) >= 2 && catIdx >= 0 && numIdx >= 0:
		return ChartChoice{
			Kind:    Bar,
			XColumn: profiles[catIdx].Name,
			YColumn: profiles[numIdx].Name,
			Reason:  "categories compared by numeric values",
			Totals:  sumByCategory(rows, catIdx, numIdx),
		}
	case len(profiles) == 2 && profiles[0].Type.IsNumeric() && profiles[1].Type.IsNumeric():
		var pts []XYPoint
		for _, r := range rows {
			x, okx := profile.ParseNumber(cell(r, 0))
			y, oky := profile.ParseNumber(cell(r, 1))
			if okx && oky {
				pts = append(pts, XYPoint{X: x, Y: y})
			}
		}
		return ChartChoice{
			Kind:    Scatter,
			XColumn: profiles[0].Name,
			YColumn: profiles[1].Name,
			Reason:  "two numeric columns reveal correlations",
			Points:  pts,
		}
	default:
		return ChartChoice{Kind: Table, Reason: "no strong chart recommendation, fall back to table"}
	}
}

func sumByCategory(rows [][]string, catIdx, numIdx int) []CategoryTotal {
	pos := make(map[string]int)
	var out []CategoryTotal
	for _, r := range rows {
		v, ok := profile.ParseNumber(cell(r, numIdx))
		if !ok {
			continue
		}
		k := cell(r, catIdx)
		i, seen := pos[k]
		if !seen {
			i = len(out)
			pos[k] = i
			out = append(out, CategoryTotal{Category: k})
		}
		out[i].Total += v
	}
	return out
}

func numbers(rows [][]string, c int) []float64 {
	var out []float64
	for _, r := range rows {
		if v, ok := profile.ParseNumber(cell(r, c)); ok {
			out = append(out, v)
		}
	}
	return out
}

func cell(r []string, c int) string {
	if c < len(r) {
		return r[c]
	}
	return ""
}

func indexOf(profiles []profile.ColumnProfile, match func(profile.SemanticType) bool) int {
	for i, p := range profiles {
		if match(p.Type) {
			return i
		}
	}
	return -1
}
