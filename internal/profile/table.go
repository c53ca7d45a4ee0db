package profile

const (
	minCategoricalKeyUniqueness = 0.1
	maxCategoricalKeyUniqueness = 0.8
)

// IdentifyKeyColumns returns a copy of profiles with the time column and key
// columns marked. The input slice is left untouched.
//
//   - the first DateTime column becomes the time column
//   - the NumericMeasure with the highest uniqueness is a key (first wins ties)
//   - the first Categorical with uniqueness in (0.1, 0.8) is a key
func IdentifyKeyColumns(profiles []ColumnProfile) []ColumnProfile {
	out := make([]ColumnProfile, len(profiles))
	copy(out, profiles)

	for i := range out {
		if out[i].Type == DateTime {
			out[i].IsTimeColumn = true
			break
		}
	}

	best := -1
	for i := range out {
		if out[i].Type != NumericMeasure {
			continue
		}
		if best < 0 || out[i].UniquenessRatio > out[best].UniquenessRatio {
			best = i
		}
	}
	if best >= 0 {
		out[best].IsKey = true
	}

	for i := range out {
		u := out[i].UniquenessRatio
		if out[i].Type == Categorical && u > minCategoricalKeyUniqueness && u < maxCategoricalKeyUniqueness {
			out[i].IsKey = true
			break
		}
	}
	return out
}

// ProfileTable classifies every column of a row-major table with the default
// Heuristic and marks key columns.
func ProfileTable(header []string, rows [][]string) []ColumnProfile {
	return Heuristic{}.ProfileTable(header, rows)
}

// ProfileTable classifies every column of a row-major table and marks key
// columns.
func (h Heuristic) ProfileTable(header []string, rows [][]string) []ColumnProfile {
	return ProfileWith(h, header, rows)
}

// ProfileWith classifies every column with cl, then marks key columns. Rows
// shorter than the header are padded with empty cells.
func ProfileWith(cl ColumnClassifier, header []string, rows [][]string) []ColumnProfile {
	profiles := make([]ColumnProfile, len(header))
	for c, name := range header {
		profiles[c] = cl.Classify(name, Column(rows, c))
	}
	return IdentifyKeyColumns(profiles)
}

// Column extracts column c from rows; missing cells come back empty.
func Column(rows [][]string, c int) []string {
	col := make([]string, len(rows))
	for i, r := range rows {
		if c < len(r) {
			col[i] = r[c]
		}
	}
	return col
}

// TimeColumn returns the index of the first DateTime column, or -1.
func TimeColumn(profiles []ColumnProfile) int {
	for i, p := range profiles {
		if p.Type == DateTime {
			return i
		}
	}
	return -1
}

// Measures returns the NumericMeasure profiles in column order.
func Measures(profiles []ColumnProfile) []ColumnProfile {
	return filter(profiles, NumericMeasure)
}

// Categoricals returns the Categorical profiles in column order.
func Categoricals(profiles []ColumnProfile) []ColumnProfile {
	return filter(profiles, Categorical)
}

// Names lists the column names in order.
func Names(profiles []ColumnProfile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}

func filter(profiles []ColumnProfile, t SemanticType) []ColumnProfile {
	var out []ColumnProfile
	for _, p := range profiles {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
