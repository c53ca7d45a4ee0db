package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Direction labels a trend or correlation sign.
type Direction string

const (
	Increasing Direction = "increasing"
	Decreasing Direction = "decreasing"
	Flat       Direction = "flat"
	None       Direction = "none"
)

// Summary holds the numeric summary of a column.
type Summary struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
}

// Trend is the outcome of DetectTrend.
type Trend struct {
	Direction Direction `json:"direction" yaml:"direction"`
	Strength  float64   `json:"strength" yaml:"strength"`
}

// Bin is one fixed-width histogram bucket, [Lower, Upper).
// The last bin also includes its upper edge.
type Bin struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
	Count int     `json:"count" yaml:"count"`
}

// Summarize computes min, max, mean, median and population standard deviation.
// The median is sorted[n/2]: for even n it is the upper-middle element, not
// the average of the two middle elements.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	minV, _ := mstats.Min(values)
	maxV, _ := mstats.Max(values)
	mean, _ := mstats.Mean(values)
	std, _ := mstats.StandardDeviationPopulation(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Min:    minV,
		Max:    maxV,
		Mean:   mean,
		Median: sorted[len(sorted)/2],
		StdDev: std,
	}
}

// DetectTrend walks the series pairwise and compares strict increases with
// strict decreases. Equal neighbours count as neither.
func DetectTrend(series []float64) Trend {
	if len(series) < 3 {
		return Trend{Direction: None}
	}
	var inc, dec int
	for i := 1; i < len(series); i++ {
		switch {
		case series[i] > series[i-1]:
			inc++
		case series[i] < series[i-1]:
			dec++
		}
	}
	if inc+dec == 0 {
		return Trend{Direction: Flat}
	}
	diff := inc - dec
	if diff < 0 {
		diff = -diff
	}
	t := Trend{Strength: float64(diff) / float64(inc+dec), Direction: Decreasing}
	if inc > dec {
		t.Direction = Increasing
	}
	return t
}

// Correlate returns the Pearson coefficient over the first min(len(a), len(b))
// positions. Too few points or a constant series yield 0.
func Correlate(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	x, y := a[:n], b[:n]
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// Histogram splits the finite values into fixed-width bins between min and max.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	out := make([]Bin, bins)
	if lo == hi {
		for i := range out {
			out[i] = Bin{Lower: lo, Upper: hi}
		}
		out[0].Count = len(sorted)
		return out
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	if math.IsInf(hi-lo, 0) {
		// range overflows float64; interpolate each edge without forming hi-lo
		for i := range edges {
			f := float64(i) / float64(bins)
			edges[i] = lo*(1-f) + hi*f
		}
		edges[0], edges[bins] = lo, hi
	}
	// stat.Histogram wants x < last divider; nudge it so max lands in the last bin.
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	for i := range out {
		out[i] = Bin{Lower: edges[i], Upper: edges[i+1], Count: int(counts[i])}
	}
	return out
}

// MovingAverage returns the trailing mean over up to window points ending at each index.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		from := i - window + 1
		if from < 0 {
			from = 0
		}
		var sum float64
		for j := from; j <= i; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(i-from+1)
	}
	return out
}

// PercentChange returns period-over-period change in percent. The first
// period, and any period following a zero, reports 0.
func PercentChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		out[i] = (values[i] - prev) / prev * 100.0
	}
	return out
}
