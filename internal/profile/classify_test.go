package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DateByHeader(t *testing.T) {
	p := Classify("Date", []string{"2021-01-01", "2021-02-01"})
	assert.Equal(t, DateTime, p.Type)
	assert.Equal(t, "yyyy-MM-dd", p.DatePattern)
	assert.Nil(t, p.Numeric)
}

func TestClassify_DateByValue(t *testing.T) {
	p := Classify("When", []string{"01/15/2021", "02/15/2021"})
	assert.Equal(t, DateTime, p.Type)
	assert.Equal(t, "MM/dd/yyyy", p.DatePattern)
}

func TestClassify_DateKeywordWithoutPattern(t *testing.T) {
	p := Classify("Year", []string{"2020", "2021"})
	assert.Equal(t, DateTime, p.Type)
	assert.Empty(t, p.DatePattern)
}

func TestClassify_NumericMeasure(t *testing.T) {
	p := Classify("Weekly_Sales", []string{"5000", "7000", "6200"})
	assert.Equal(t, NumericMeasure, p.Type)
	require.NotNil(t, p.Numeric)
	assert.InDelta(t, 6066.67, p.Numeric.Mean, 0.01)
	assert.Equal(t, 5000.0, p.Numeric.Min)
	assert.Equal(t, 7000.0, p.Numeric.Max)
	assert.Equal(t, 1.0, p.UniquenessRatio)
}

func TestClassify_NumericCheckPrecedesID(t *testing.T) {
	// all-unique integers are numeric first; uniqueness above 0.7 makes them a measure
	for _, name := range []string{"CustomerID", "Visitors"} {
		p := Classify(name, []string{"1", "2", "3", "4", "5"})
		assert.Equal(t, NumericMeasure, p.Type, name)
	}
}

func TestClassify_NumericDimension(t *testing.T) {
	p := Classify("Store", []string{"1", "1", "2"})
	assert.Equal(t, NumericDimension, p.Type)
	require.NotNil(t, p.Numeric)
}

func TestClassify_CurrencyFormatting(t *testing.T) {
	p := Classify("Revenue", []string{"$1,200", "$800", "$1,200"})
	assert.Equal(t, NumericMeasure, p.Type)
	assert.Equal(t, 1200.0, p.Numeric.Max)
}

func TestClassify_UnparsableAfterProbeCountsAsZero(t *testing.T) {
	vals := []string{"10", "10", "10", "10", "10", "10", "10", "10", "10", "10", "n/a"}
	p := Classify("Amount", vals)
	assert.Equal(t, NumericMeasure, p.Type)
	assert.Equal(t, 0.0, p.Numeric.Min)
	assert.InDelta(t, 100.0/11.0, p.Numeric.Mean, 1e-9)
}

func TestClassify_TextID(t *testing.T) {
	p := Classify("OrderRef", []string{"A1", "A2", "A3"})
	assert.Equal(t, TextID, p.Type)
}

func TestClassify_Boolean(t *testing.T) {
	p := Classify("Flag", []string{"true", "false", "TRUE", "false"})
	assert.Equal(t, Boolean, p.Type)
}

func TestClassify_Description(t *testing.T) {
	p := Classify("Notes", []string{"see above", "see above"})
	assert.Equal(t, TextDescription, p.Type)
}

func TestClassify_Categorical(t *testing.T) {
	p := Classify("Region", []string{"North", "South", "North", "East"})
	assert.Equal(t, Categorical, p.Type)
	assert.Equal(t, 0.75, p.UniquenessRatio)
	assert.Equal(t, 2, p.ValueCounts["North"])
}

func TestClassify_AllEmpty(t *testing.T) {
	p := Classify("Anything", []string{"", "  "})
	assert.Equal(t, TextDescription, p.Type)
	assert.Equal(t, 2, p.NullCount)
	assert.Zero(t, p.UniquenessRatio)
	assert.Empty(t, p.SampleValues)
}

func TestClassify_NullsAreCountedAndDropped(t *testing.T) {
	p := Classify("Weekly_Sales", []string{"5000", "", "7000"})
	assert.Equal(t, 1, p.NullCount)
	assert.Equal(t, 2, p.NonNull)
	assert.Equal(t, 6000.0, p.Numeric.Mean)
}

func TestClassify_SampleValuesAreBounded(t *testing.T) {
	vals := make([]string, 12)
	for i := range vals {
		vals[i] = "x"
	}
	p := Classify("Region", vals)
	assert.Len(t, p.SampleValues, DefaultSampleSize)

	p = Heuristic{SampleSize: 3}.Classify("Region", vals)
	assert.Len(t, p.SampleValues, 3)
}

func TestClassify_Idempotent(t *testing.T) {
	vals := []string{"North", "South", "", "North"}
	assert.Equal(t, Classify("Region", vals), Classify("Region", vals))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 1,234.5 ", 1234.5, true},
		{"$99", 99, true},
		{"NaN", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2021-03-04", "yyyy-MM-dd")
	require.True(t, ok)
	assert.Equal(t, 3, int(d.Month()))

	d, ok = ParseDate("03/04/2021", "")
	require.True(t, ok)
	assert.Equal(t, 4, d.Day())

	_, ok = ParseDate("not a date", "yyyy-MM-dd")
	assert.False(t, ok)
}
