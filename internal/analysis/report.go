package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/vizadvisor-cli/internal/domain"
	"github.com/KaramelBytes/vizadvisor-cli/internal/ingest"
	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/recommend"
	"github.com/KaramelBytes/vizadvisor-cli/internal/stats"
)

// Options controls analysis behavior for tabular data.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// SampleValues bounds the per-column sample kept in each profile.
	SampleValues int
	// MinCorrelation is the |r| a measure pair must reach to be reported.
	MinCorrelation float64
	// HistogramBins is used when the auto chart is a histogram.
	HistogramBins int
	// Classifier profiles each column; nil uses profile.Heuristic with SampleValues.
	Classifier profile.ColumnClassifier
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{
		SampleRows:     5,
		SampleValues:   profile.DefaultSampleSize,
		MinCorrelation: 0.5,
		HistogramBins:  recommend.DefaultBins,
	}
}

type FindingKind string

const (
	TrendFinding       FindingKind = "trend"
	CorrelationFinding FindingKind = "correlation"
)

// Finding is a trend on one measure or a correlation between two.
// Strength is in [0,1]; for correlations it is |r|.
type Finding struct {
	Kind      FindingKind `json:"kind"`
	Columns   []string    `json:"columns"`
	Direction string      `json:"direction"`
	Strength  float64     `json:"strength"`
}

// Report is the full analysis of one dataset.
type Report struct {
	ID             string                              `json:"id"`
	Name           string                              `json:"name"`
	GeneratedAt    time.Time                           `json:"generated_at"`
	Rows           int                                 `json:"rows"`
	Processed      int                                 `json:"processed"`
	Domain         domain.Label                        `json:"domain"`
	DomainScores   map[domain.Label]int                `json:"domain_scores"`
	Columns        []profile.ColumnProfile             `json:"columns"`
	Findings       []Finding                           `json:"findings"`
	Chart          recommend.ChartChoice               `json:"chart"`
	Visualizations []recommend.VisualizationSuggestion `json:"visualizations"`
	Metrics        []recommend.MetricSuggestion        `json:"metrics"`
	Targets        []recommend.Target                  `json:"targets"`
	Groupings      []string                            `json:"groupings"`
	Samples        [][]string                          `json:"samples,omitempty"`
	Warnings       []string                            `json:"warnings,omitempty"`
}

// Analyze runs the whole pipeline over t: classify, detect the domain, find
// patterns, then recommend. It never fails; degenerate tables produce a
// report with notes instead.
func Analyze(t *ingest.Table, opt Options) *Report {
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	rep := &Report{
		ID:          uuid.NewString(),
		Name:        t.Name,
		GeneratedAt: time.Now().UTC(),
		Rows:        t.TotalRows,
		Processed:   len(t.Rows),
	}

	cl := opt.Classifier
	if cl == nil {
		cl = profile.Heuristic{SampleSize: opt.SampleValues}
	}
	rep.Columns = profile.ProfileWith(cl, t.Header, t.Rows)
	names := profile.Names(rep.Columns)
	rep.DomainScores = domain.Scores(names)
	rep.Domain = domain.Detect(names)

	rep.Findings = findPatterns(t.Rows, rep.Columns, opt.MinCorrelation)

	rep.Chart = recommend.Charter{Bins: opt.HistogramBins}.Recommend(t.Rows, rep.Columns)
	rep.Visualizations = recommend.RecommendVisualizations(rep.Columns, rep.Domain)
	rep.Metrics = recommend.RecommendMetrics(rep.Columns, rep.Domain)
	rep.Targets = recommend.Targets(rep.Columns)
	rep.Groupings = recommend.GroupingStrategies(rep.Columns)

	for i := 0; i < len(t.Rows) && i < opt.SampleRows; i++ {
		rep.Samples = append(rep.Samples, t.Rows[i])
	}

	if t.Truncated() {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Only the first %d of %d rows were analyzed.", len(t.Rows), t.TotalRows))
	}
	if len(t.Rows) == 0 {
		rep.Warnings = append(rep.Warnings, "Dataset has a header but no data rows.")
	} else if len(profile.Measures(rep.Columns)) == 0 {
		rep.Warnings = append(rep.Warnings, "No numeric measure detected; metrics and targets are empty.")
	}
	return rep
}

// findPatterns reports a trend for every measure whose direction is not none,
// in row order, then a correlation for every measure pair with |r| at least
// minCorr. Pairs are aligned on rows where both cells parse.
func findPatterns(rows [][]string, cols []profile.ColumnProfile, minCorr float64) []Finding {
	var idx []int
	for i, c := range cols {
		if c.Type == profile.NumericMeasure {
			idx = append(idx, i)
		}
	}

	var out []Finding
	for _, c := range idx {
		var series []float64
		for _, r := range rows {
			if v, ok := profile.ParseNumber(cellAt(r, c)); ok {
				series = append(series, v)
			}
		}
		tr := stats.DetectTrend(series)
		if tr.Direction == stats.None {
			continue
		}
		out = append(out, Finding{Kind: TrendFinding, Columns: []string{cols[c].Name}, Direction: string(tr.Direction), Strength: tr.Strength})
	}

	for i := 0; i < len(idx); i++ {
		for j := i + 1; j < len(idx); j++ {
			var a, b []float64
			for _, r := range rows {
				x, okx := profile.ParseNumber(cellAt(r, idx[i]))
				y, oky := profile.ParseNumber(cellAt(r, idx[j]))
				if okx && oky {
					a = append(a, x)
					b = append(b, y)
				}
			}
			rv := stats.Correlate(a, b)
			if rv == 0 || math.Abs(rv) < minCorr {
				continue
			}
			dir := "positive"
			if rv < 0 {
				dir = "negative"
			}
			out = append(out, Finding{
				Kind:      CorrelationFinding,
				Columns:   []string{cols[idx[i]].Name, cols[idx[j]].Name},
				Direction: dir,
				Strength:  math.Abs(rv),
			})
		}
	}
	return out
}

func cellAt(r []string, c int) string {
	if c < len(r) {
		return r[c]
	}
	return ""
}
