package recommend

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/vizadvisor-cli/internal/domain"
	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
)

// Aggregation kinds. The set is open; callers may see values not listed here.
const (
	AggSum        = "SUM"
	AggAvg        = "AVG"
	AggCount      = "COUNT"
	AggCalculated = "CALCULATED"
	AggIndex      = "INDEX"
	AggVariance   = "VARIANCE"
	AggRatio      = "RATIO"
	AggCountBy    = "COUNT_BY"
	AggTenure     = "TENURE"
	AggGrowth     = "GROWTH"
)

// Visualization chart types.
const (
	LineChart      = "LINE_CHART"
	AreaChart      = "AREA_CHART"
	PieChart       = "PIE_CHART"
	BarChart       = "BAR_CHART"
	ScatterPlot    = "SCATTER_PLOT"
	HeatmapChart   = "HEATMAP"
	WaterfallChart = "WATERFALL_CHART"
	TreemapChart   = "TREEMAP"
)

type MetricSuggestion struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	RequiredColumns []string `json:"required_columns"`
	Aggregation     string   `json:"aggregation"`
}

type VisualizationSuggestion struct {
	ChartType string   `json:"chart_type"`
	Title     string   `json:"title"`
	XColumns  []string `json:"x_columns"`
	YColumns  []string `json:"y_columns"`
	Priority  int      `json:"priority"`
}

// Target is a naive growth goal for one measure: 110% and 125% of its mean.
type Target struct {
	Column  string  `json:"column"`
	Default float64 `json:"default"`
	Stretch float64 `json:"stretch"`
}

const (
	defaultTargetFactor = 1.10
	stretchTargetFactor = 1.25
)

// RecommendVisualizations scores chart candidates and returns all of them,
// highest priority first. Equal priorities keep insertion order.
func RecommendVisualizations(profiles []profile.ColumnProfile, d domain.Label) []VisualizationSuggestion {
	measures := profile.Measures(profiles)
	categories := profile.Categoricals(profiles)
	timeIdx := profile.TimeColumn(profiles)

	var out []VisualizationSuggestion
	if timeIdx >= 0 && len(measures) > 0 {
		tc, m := profiles[timeIdx].Name, measures[0].Name
		out = append(out,
			VisualizationSuggestion{LineChart, m + " Over Time", []string{tc}, []string{m}, 100},
			VisualizationSuggestion{AreaChart, "Trend Analysis: " + m, []string{tc}, []string{m}, 90},
		)
	}

	for _, c := range categories {
		if c.UniquenessRatio <= 0.05 || c.UniquenessRatio >= 0.5 {
			continue
		}
		measure, y := "Count", []string{"COUNT"}
		if len(measures) > 0 {
			measure, y = measures[0].Name, []string{measures[0].Name}
		}
		out = append(out, VisualizationSuggestion{PieChart, measure + " by " + c.Name, []string{c.Name}, y, 80})
	}

	if len(categories) > 0 && len(measures) > 0 {
		top := categories[0]
		for _, c := range categories {
			if c.UniquenessRatio < 0.3 {
				top = c
				break
			}
		}
		m := measures[0].Name
		out = append(out, VisualizationSuggestion{BarChart, m + " by " + top.Name, []string{top.Name}, []string{m}, 85})
	}

	if len(measures) >= 2 {
		a, b := measures[0].Name, measures[1].Name
		out = append(out, VisualizationSuggestion{ScatterPlot, a + " vs " + b, []string{a}, []string{b}, 70})
	}

	switch d {
	case domain.SalesCommerce:
		if sc, ok := firstNamed(profiles, "sales"); ok {
			out = append(out, VisualizationSuggestion{HeatmapChart, "Sales Performance Heatmap", []string{"month", "category"}, []string{sc}, 75})
		}
	case domain.Financial:
		out = append(out, VisualizationSuggestion{WaterfallChart, "Budget Variance Analysis", []string{"category"}, []string{"variance"}, 80})
	case domain.HRPeople:
		out = append(out, VisualizationSuggestion{TreemapChart, "Employee Distribution", []string{"department", "level"}, []string{"count"}, 75})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// RecommendMetrics suggests KPIs: SUM, AVG and COUNT per measure, domain
// extras, and a growth rate when a time column exists.
func RecommendMetrics(profiles []profile.ColumnProfile, d domain.Label) []MetricSuggestion {
	measures := profile.Measures(profiles)

	var out []MetricSuggestion
	for _, m := range measures {
		cols := []string{m.Name}
		out = append(out,
			MetricSuggestion{"Total " + m.Name, "Sum of all " + m.Name + " values", cols, AggSum},
			MetricSuggestion{"Average " + m.Name, "Average " + m.Name + " per record", cols, AggAvg},
			MetricSuggestion{"Count of Records", "Total number of records", cols, AggCount},
		)
	}

	switch d {
	case domain.SalesCommerce:
		sales, hasSales := firstNamed(profiles, "sales", "revenue")
		qty, hasQty := firstNamed(profiles, "quantity", "qty")
		if hasSales && hasQty {
			out = append(out, MetricSuggestion{"Average Sale Price", "Average price per unit sold", []string{sales, qty}, AggCalculated})
		}
		if !hasSales && len(profiles) > 0 {
			sales = profiles[0].Name
		}
		if sales != "" {
			out = append(out, MetricSuggestion{"Sales Performance Index", "Relative performance compared to average", []string{sales}, AggIndex})
		}
	case domain.Financial:
		out = append(out,
			MetricSuggestion{"Budget Variance", "Difference between actual and budgeted amounts", []string{"actual", "budget"}, AggVariance},
			MetricSuggestion{"Cost Ratio", "Cost as percentage of total", []string{"cost", "total"}, AggRatio},
		)
	case domain.HRPeople:
		out = append(out,
			MetricSuggestion{"Headcount by Department", "Number of employees per department", []string{"department"}, AggCountBy},
			MetricSuggestion{"Average Tenure", "Average employee tenure", []string{"start_date"}, AggTenure},
		)
	}

	if ti := profile.TimeColumn(profiles); ti >= 0 && len(measures) > 0 {
		m := measures[0].Name
		out = append(out, MetricSuggestion{"Growth Rate", "Period-over-period growth in " + m, []string{m, profiles[ti].Name}, AggGrowth})
	}
	return out
}

// Targets returns a default and a stretch target for every measure, in column order.
func Targets(profiles []profile.ColumnProfile) []Target {
	var out []Target
	for _, m := range profile.Measures(profiles) {
		mean := m.Mean()
		out = append(out, Target{Column: m.Name, Default: mean * defaultTargetFactor, Stretch: mean * stretchTargetFactor})
	}
	return out
}

// GroupingStrategies lists categorical columns with usable cardinality,
// followed by calendar groupings when the dataset has a time column.
func GroupingStrategies(profiles []profile.ColumnProfile) []string {
	var out []string
	for _, c := range profile.Categoricals(profiles) {
		if c.UniquenessRatio > 0.01 && c.UniquenessRatio < 0.5 {
			out = append(out, c.Name)
		}
	}
	if profile.TimeColumn(profiles) >= 0 {
		out = append(out, "Month", "Quarter", "Year")
	}
	return out
}

func firstNamed(profiles []profile.ColumnProfile, subs ...string) (string, bool) {
	for _, p := range profiles {
		lower := strings.ToLower(p.Name)
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return p.Name, true
			}
		}
	}
	return "", false
}
