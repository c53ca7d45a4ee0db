package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/vizadvisor-cli/internal/stats"
)

// DefaultSampleSize bounds ColumnProfile.SampleValues.
const DefaultSampleSize = 10

const (
	dateProbe    = 5
	numericProbe = 10

	measureUniqueness     = 0.7
	idUniqueness          = 0.95
	maxBooleanCardinality = 3
	descriptionMeanLength = 50.0
)

var (
	dateKeywords        = []string{"date", "time", "created", "updated", "timestamp", "day", "month", "year"}
	measureKeywords     = []string{"sales", "revenue", "amount", "total", "sum", "value", "price", "cost", "profit", "quantity", "count", "score", "rating"}
	idKeywords          = []string{"id", "key", "code", "number", "ref", "identifier"}
	descriptionKeywords = []string{"description", "comment", "note", "detail", "summary"}

	booleanTokens = map[string]struct{}{
		"true": {}, "false": {}, "yes": {}, "no": {}, "y": {}, "n": {},
		"1": {}, "0": {}, "active": {}, "inactive": {},
	}
)

// datePatterns are tried in order; the first full match on the first value names the layout.
var datePatterns = []struct {
	re     *regexp.Regexp
	layout string
	goFmt  string
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "yyyy-MM-dd", "2006-01-02"},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "MM/dd/yyyy", "01/02/2006"},
	{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), "yyyy/MM/dd", "2006/01/02"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "MM-dd-yyyy", "01-02-2006"},
	{regexp.MustCompile(`^\d{8}$`), "yyyyMMdd", "20060102"},
}

// ColumnClassifier assigns a semantic profile to a named column of raw cells.
type ColumnClassifier interface {
	Classify(name string, values []string) ColumnProfile
}

// Heuristic is the rule-cascade classifier shared by every front end.
type Heuristic struct {
	// SampleSize bounds SampleValues; 0 means DefaultSampleSize.
	SampleSize int
}

// Classify profiles a column with the default Heuristic.
func Classify(name string, values []string) ColumnProfile {
	return Heuristic{}.Classify(name, values)
}

// Classify runs the ordered rule cascade; the first matching rule wins and
// Categorical is the fallback, so it never fails.
func (h Heuristic) Classify(name string, values []string) ColumnProfile {
	p := ColumnProfile{Name: name}

	vals := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			p.NullCount++
			continue
		}
		vals = append(vals, v)
	}
	p.NonNull = len(vals)
	if len(vals) == 0 {
		p.Type = TextDescription
		return p
	}

	p.ValueCounts = make(map[string]int)
	for _, v := range vals {
		p.ValueCounts[v]++
	}
	p.UniquenessRatio = float64(len(p.ValueCounts)) / float64(len(vals))

	size := h.SampleSize
	if size <= 0 {
		size = DefaultSampleSize
	}
	p.SampleValues = append([]string(nil), vals[:min(size, len(vals))]...)

	lower := strings.ToLower(name)
	switch {
	case isDateColumn(lower, vals):
		p.Type = DateTime
		p.DatePattern = detectDatePattern(vals[0])
	case isNumericColumn(vals):
		p.Type = NumericDimension
		if p.UniquenessRatio > measureUniqueness || containsAny(lower, measureKeywords) {
			p.Type = NumericMeasure
		}
		s := stats.Summarize(coerceNumbers(vals))
		p.Numeric = &s
	case p.UniquenessRatio > idUniqueness || containsAny(lower, idKeywords):
		p.Type = TextID
	case isBooleanColumn(vals):
		p.Type = Boolean
	case containsAny(lower, descriptionKeywords) || meanLength(vals) > descriptionMeanLength:
		p.Type = TextDescription
	default:
		p.Type = Categorical
	}
	return p
}

// ParseNumber strips thousands separators and a dollar sign before parsing.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.ReplaceAll(s, "$", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func isDateColumn(lowerName string, vals []string) bool {
	if containsAny(lowerName, dateKeywords) {
		return true
	}
	for _, v := range vals[:min(dateProbe, len(vals))] {
		for _, p := range datePatterns {
			if p.re.MatchString(v) {
				return true
			}
		}
	}
	return false
}

func detectDatePattern(first string) string {
	for _, p := range datePatterns {
		if p.re.MatchString(first) {
			return p.layout
		}
	}
	return ""
}

// ParseDate parses s with the layout named by pattern, falling back to every
// known layout when pattern is empty or does not fit.
func ParseDate(s, pattern string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, p := range datePatterns {
		if p.layout == pattern {
			if t, err := time.Parse(p.goFmt, s); err == nil {
				return t, true
			}
			break
		}
	}
	for _, p := range datePatterns {
		if t, err := time.Parse(p.goFmt, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isNumericColumn(vals []string) bool {
	for _, v := range vals[:min(numericProbe, len(vals))] {
		if _, ok := ParseNumber(v); !ok {
			return false
		}
	}
	return true
}

// coerceNumbers substitutes 0 for cells that fail to parse. This skews the
// summary towards zero when a numeric column carries stray text after the
// sampled prefix.
func coerceNumbers(vals []string) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i], _ = ParseNumber(v)
	}
	return out
}

func isBooleanColumn(vals []string) bool {
	distinct := make(map[string]struct{})
	for _, v := range vals {
		lv := strings.ToLower(v)
		if _, ok := booleanTokens[lv]; !ok {
			return false
		}
		distinct[lv] = struct{}{}
		if len(distinct) > maxBooleanCardinality {
			return false
		}
	}
	return true
}

func meanLength(vals []string) float64 {
	var total int
	for _, v := range vals {
		total += utf8.RuneCountInString(v)
	}
	return float64(total) / float64(len(vals))
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
