package domain

import "strings"

// Label is the business domain inferred from a dataset's column names.
type Label string

const (
	SalesCommerce Label = "sales_commerce"
	Financial     Label = "financial"
	Operational   Label = "operational"
	HRPeople      Label = "hr_people"
	Marketing     Label = "marketing"
	Generic       Label = "generic"
)

// Display returns a human-readable form of the label.
func (l Label) Display() string {
	switch l {
	case SalesCommerce:
		return "Sales & Commerce"
	case Financial:
		return "Financial"
	case Operational:
		return "Operational"
	case HRPeople:
		return "HR & People"
	case Marketing:
		return "Marketing"
	default:
		return "Generic"
	}
}

type rule struct {
	label    Label
	keywords []string
}

// rules are in tie-break order.
var rules = []rule{
	{SalesCommerce, []string{"sales", "revenue", "product", "customer", "order", "purchase", "store"}},
	{Financial, []string{"budget", "expense", "profit", "cost", "financial", "accounting"}},
	{HRPeople, []string{"employee", "salary", "department", "manager", "hr", "staff"}},
}

// Scores counts, per scored domain, how many of its keywords occur as
// substrings of the lower-cased, concatenated column names.
func Scores(columnNames []string) map[Label]int {
	joined := strings.ToLower(strings.Join(columnNames, " "))
	out := make(map[Label]int, len(rules))
	for _, r := range rules {
		n := 0
		for _, k := range r.keywords {
			if strings.Contains(joined, k) {
				n++
			}
		}
		out[r.label] = n
	}
	return out
}

// Detect returns the domain with the highest keyword score. Ties go to the
// earlier of Sales, Financial, HR; no hits at all yields Generic.
func Detect(columnNames []string) Label {
	scores := Scores(columnNames)
	best, bestScore := Generic, 0
	for _, r := range rules {
		if s := scores[r.label]; s > bestScore {
			best, bestScore = r.label, s
		}
	}
	return best
}
