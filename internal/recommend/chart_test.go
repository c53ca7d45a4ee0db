package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
)

func choose(header []string, rows [][]string) ChartChoice {
	return RecommendChart(rows, profile.ProfileTable(header, rows))
}

func TestRecommendChart_Histogram(t *testing.T) {
	var rows [][]string
	for _, v := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"} {
		rows = append(rows, []string{v})
	}
	c := choose([]string{"Value"}, rows)
	require.Equal(t, Histogram, c.Kind)
	require.Len(t, c.Bins, DefaultBins)
	total := 0
	for _, b := range c.Bins {
		total += b.Count
	}
	assert.Equal(t, 10, total)

	c = Charter{Bins: 4}.Recommend(rows, profile.ProfileTable([]string{"Value"}, rows))
	assert.Len(t, c.Bins, 4)
}

func TestRecommendChart_LineSkipsUnparsableRows(t *testing.T) {
	rows := [][]string{
		{"2021-01-01", "10"},
		{"bad", "5"},
		{"2021-01-03", "8"},
		{"2021-01-04", "7"},
	}
	c := choose([]string{"Date", "Sales"}, rows)
	require.Equal(t, Line, c.Kind)
	assert.Equal(t, "Date", c.XColumn)
	assert.Equal(t, "Sales", c.YColumn)
	require.Len(t, c.Series, 3)
	assert.Equal(t, 10.0, c.Series[0].Value)
	assert.Equal(t, 3, c.Series[1].Time.Day())
}

func TestRecommendChart_LineTakesPrecedenceOverBar(t *testing.T) {
	rows := [][]string{
		{"North", "2021-01-01", "10"},
		{"South", "2021-01-02", "5"},
		{"North", "2021-01-03", "8"},
	}
	c := choose([]string{"Region", "Date", "Sales"}, rows)
	assert.Equal(t, Line, c.Kind)
}

func TestRecommendChart_BarSumsInFirstSeenOrder(t *testing.T) {
	rows := [][]string{
		{"North", "10"},
		{"South", "5"},
		{"North", "2.5"},
	}
	c := choose([]string{"Region", "Sales"}, rows)
	require.Equal(t, Bar, c.Kind)
	assert.Equal(t, []CategoryTotal{{"North", 12.5}, {"South", 5}}, c.Totals)
}

func TestRecommendChart_Scatter(t *testing.T) {
	rows := [][]string{{"1", "2"}, {"2", "4"}, {"3", "6"}}
	c := choose([]string{"A", "B"}, rows)
	require.Equal(t, Scatter, c.Kind)
	assert.Equal(t, []XYPoint{{1, 2}, {2, 4}, {3, 6}}, c.Points)
}

func TestRecommendChart_TableFallback(t *testing.T) {
	rows := [][]string{{"North"}, {"South"}, {"North"}}
	c := choose([]string{"Region"}, rows)
	assert.Equal(t, Table, c.Kind)

	assert.Equal(t, Table, RecommendChart(nil, nil).Kind)
}
