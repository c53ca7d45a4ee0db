package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{5000, 7000, 6200})
	assert.Equal(t, 5000.0, s.Min)
	assert.Equal(t, 7000.0, s.Max)
	assert.InDelta(t, 6066.67, s.Mean, 0.01)
	assert.Equal(t, 6200.0, s.Median)
	assert.InDelta(t, 821.92, s.StdDev, 0.01)
}

func TestSummarize_EvenLengthMedianIsUpperMiddle(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})
	assert.Equal(t, 3.0, s.Median)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestDetectTrend(t *testing.T) {
	tests := []struct {
		name     string
		series   []float64
		dir      Direction
		strength float64
	}{
		{"increasing", []float64{1, 2, 3, 4, 5}, Increasing, 1.0},
		{"flat", []float64{5, 5, 5}, Flat, 0},
		{"too short", []float64{1, 2}, None, 0},
		{"decreasing", []float64{9, 7, 8, 4, 1}, Decreasing, 0.5},
		{"tie goes to decreasing", []float64{1, 2, 1}, Decreasing, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectTrend(tt.series)
			assert.Equal(t, tt.dir, got.Direction)
			assert.InDelta(t, tt.strength, got.Strength, 1e-12)
		})
	}
}

func TestCorrelate(t *testing.T) {
	assert.InDelta(t, 1.0, Correlate([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, Correlate([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
}

func TestCorrelate_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, Correlate([]float64{1}, []float64{2}))
	assert.Equal(t, 0.0, Correlate([]float64{1, 1, 1}, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, Correlate(nil, []float64{1, 2, 3}))
}

func TestCorrelate_TruncatesToShorterSeries(t *testing.T) {
	r := Correlate([]float64{1, 2, 3, 100}, []float64{2, 4, 6})
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestCorrelate_Deterministic(t *testing.T) {
	a := []float64{3.2, 1.1, 8.7, 4.4, 5.0}
	b := []float64{2.0, 0.5, 9.1, 3.3, 6.2}
	assert.Equal(t, Correlate(a, b), Correlate(a, b))
}

func TestHistogram(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := Histogram(values, 10)
	require.Len(t, bins, 10)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(values), total)
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[9].Upper)
	// the maximum lands in the last bin together with 9
	assert.Equal(t, 2, bins[9].Count)
}

func TestHistogram_ExtremeRange(t *testing.T) {
	var bins []Bin
	require.NotPanics(t, func() { bins = Histogram([]float64{-1e308, 0, 1e308}, 10) })
	require.Len(t, bins, 10)
	total := 0
	for i, b := range bins {
		assert.LessOrEqual(t, b.Lower, b.Upper)
		if i > 0 {
			assert.Equal(t, bins[i-1].Upper, b.Lower)
		}
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, -1e308, bins[0].Lower)
	assert.Equal(t, 1e308, bins[9].Upper)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[9].Count)
}

func TestHistogram_SkipsNonFinite(t *testing.T) {
	bins := Histogram([]float64{math.NaN(), 1, 2, math.Inf(1)}, 2)
	require.Len(t, bins, 2)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[1].Count)
	assert.Nil(t, Histogram([]float64{math.Inf(-1)}, 2))
}

func TestHistogram_ConstantValues(t *testing.T) {
	bins := Histogram([]float64{3, 3, 3}, 10)
	require.Len(t, bins, 10)
	assert.Equal(t, 3, bins[0].Count)
	assert.Equal(t, 0, bins[9].Count)
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	assert.Equal(t, []float64{1, 1.5, 2.5, 3.5}, got)
}

func TestPercentChange(t *testing.T) {
	got := PercentChange([]float64{100, 110, 0, 50})
	assert.Equal(t, []float64{0, 10, -100, 0}, got)
}
