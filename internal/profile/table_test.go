package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyKeyColumns(t *testing.T) {
	in := []ColumnProfile{
		{Name: "Date", Type: DateTime},
		{Name: "Shipped", Type: DateTime},
		{Name: "Units", Type: NumericMeasure, UniquenessRatio: 0.9},
		{Name: "Sales", Type: NumericMeasure, UniquenessRatio: 0.95},
		{Name: "Profit", Type: NumericMeasure, UniquenessRatio: 0.95},
		{Name: "Country", Type: Categorical, UniquenessRatio: 0.05},
		{Name: "Region", Type: Categorical, UniquenessRatio: 0.4},
		{Name: "City", Type: Categorical, UniquenessRatio: 0.5},
	}
	out := IdentifyKeyColumns(in)
	require.Len(t, out, len(in))

	assert.True(t, out[0].IsTimeColumn)
	assert.False(t, out[1].IsTimeColumn)
	assert.False(t, out[2].IsKey)
	assert.True(t, out[3].IsKey, "first of the tied highest-uniqueness measures")
	assert.False(t, out[4].IsKey)
	assert.False(t, out[5].IsKey)
	assert.True(t, out[6].IsKey)
	assert.False(t, out[7].IsKey)

	for _, p := range in {
		assert.False(t, p.IsKey || p.IsTimeColumn, "input must not be modified")
	}
}

func TestProfileTable_PadsShortRows(t *testing.T) {
	header := []string{"Date", "Region", "Weekly_Sales"}
	rows := [][]string{
		{"2021-01-01", "North", "5000"},
		{"2021-01-08", "South", "7000"},
		{"2021-01-15", "North"},
	}
	profiles := ProfileTable(header, rows)
	require.Len(t, profiles, 3)
	assert.Equal(t, DateTime, profiles[0].Type)
	assert.True(t, profiles[0].IsTimeColumn)
	assert.Equal(t, NumericMeasure, profiles[2].Type)
	assert.Equal(t, 1, profiles[2].NullCount)
	assert.True(t, profiles[2].IsKey)
}

type fixedClassifier map[string]SemanticType

func (f fixedClassifier) Classify(name string, values []string) ColumnProfile {
	return ColumnProfile{Name: name, Type: f[name], UniquenessRatio: 0.5, NonNull: len(values)}
}

func TestProfileWith_UsesClassifier(t *testing.T) {
	header := []string{"When", "Amount"}
	rows := [][]string{{"x", "y"}, {"z"}}
	profiles := ProfileWith(fixedClassifier{"When": DateTime, "Amount": NumericMeasure}, header, rows)
	require.Len(t, profiles, 2)
	assert.Equal(t, DateTime, profiles[0].Type)
	assert.True(t, profiles[0].IsTimeColumn)
	assert.Equal(t, NumericMeasure, profiles[1].Type)
	assert.Equal(t, 2, profiles[1].NonNull)
	assert.True(t, profiles[1].IsKey)
}

func TestHelpers(t *testing.T) {
	profiles := []ColumnProfile{
		{Name: "Region", Type: Categorical},
		{Name: "Date", Type: DateTime},
		{Name: "Sales", Type: NumericMeasure},
		{Name: "Units", Type: NumericMeasure},
	}
	assert.Equal(t, 1, TimeColumn(profiles))
	assert.Equal(t, -1, TimeColumn(profiles[2:]))
	assert.Equal(t, []string{"Sales", "Units"}, Names(Measures(profiles)))
	assert.Equal(t, []string{"Region"}, Names(Categoricals(profiles)))
	assert.Equal(t, []string{"", "b"}, Column([][]string{{"a"}, {"a", "b"}}, 1))
}
