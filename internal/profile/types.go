package profile

import "github.com/KaramelBytes/vizadvisor-cli/internal/stats"

// SemanticType is the role a column plays in a dataset.
type SemanticType string

const (
	NumericMeasure   SemanticType = "numeric_measure"   // aggregated: revenue, quantity, score
	NumericDimension SemanticType = "numeric_dimension" // grouped: year, category code
	Categorical      SemanticType = "categorical"
	DateTime         SemanticType = "date_time"
	TextID           SemanticType = "text_id"
	TextDescription  SemanticType = "text_description"
	Boolean          SemanticType = "boolean"
)

// IsNumeric reports whether the type carries a numeric summary.
func (t SemanticType) IsNumeric() bool {
	return t == NumericMeasure || t == NumericDimension
}

// ColumnProfile captures the inferred semantic type and statistics of one column.
// Profiles are built once per dataset and never mutated afterwards.
type ColumnProfile struct {
	Name            string         `json:"name" yaml:"name"`
	Type            SemanticType   `json:"type" yaml:"type"`
	UniquenessRatio float64        `json:"uniqueness_ratio" yaml:"uniqueness_ratio"`
	NullCount       int            `json:"null_count" yaml:"null_count"`
	SampleValues    []string       `json:"sample_values,omitempty" yaml:"sample_values,omitempty"`
	ValueCounts     map[string]int `json:"value_counts,omitempty" yaml:"value_counts,omitempty"`
	Numeric         *stats.Summary `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	DatePattern     string         `json:"date_pattern,omitempty" yaml:"date_pattern,omitempty"`
	IsKey           bool           `json:"is_key" yaml:"is_key"`
	IsTimeColumn    bool           `json:"is_time_column" yaml:"is_time_column"`
	// NonNull is the number of values the profile was computed over.
	NonNull int `json:"non_null" yaml:"non_null"`
}

// Mean returns the numeric mean, or 0 for non-numeric columns.
func (c ColumnProfile) Mean() float64 {
	if c.Numeric == nil {
		return 0
	}
	return c.Numeric.Mean
}
