package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/recommend"
)

// Markdown renders the report in bracketed sections, suitable for terminals
// and for pasting into prompts.
func (r *Report) Markdown() string {
	return r.render(func(s string) string { return "[" + s + "]\n" })
}

// JSON returns the indented JSON form of the report.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return b, nil
}

// HTML renders the report as a standalone HTML page. Cell values are
// untrusted, so the rendered body is sanitized before it is wrapped.
func (r *Report) HTML() []byte {
	md := r.render(func(s string) string { return "## " + s + "\n\n" })
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HardLineBreak)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := bluemonday.UGCPolicy().SanitizeBytes(markdown.Render(p.Parse([]byte(md)), renderer))

	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n  <title>")
	template.HTMLEscape(&b, []byte("vizadvisor: "+safeName(r.Name)))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}

func (r *Report) render(section func(string) string) string {
	var b strings.Builder
	b.WriteString(section("DATASET SUMMARY"))
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Processed > 0 && r.Processed < r.Rows {
		b.WriteString(fmt.Sprintf("Rows: ~%d (processed %d)\n", r.Rows, r.Processed))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Columns)))
	b.WriteString(fmt.Sprintf("Domain: %s\n\n", r.Domain.Display()))

	b.WriteString(section("SCHEMA"))
	for _, c := range r.Columns {
		total := c.NonNull + c.NullCount
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.NullCount) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%, unique %.2f)", safeName(c.Name), c.Type, c.NonNull, missPct, c.UniquenessRatio))
		switch {
		case c.Numeric != nil:
			n := c.Numeric
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, median %.4g, std %.4g", n.Min, n.Max, n.Mean, n.Median, n.StdDev))
		case c.Type == profile.DateTime && c.DatePattern != "":
			b.WriteString(fmt.Sprintf(": pattern %s", c.DatePattern))
		case c.Type == profile.Categorical && len(c.SampleValues) > 0:
			b.WriteString(": e.g., ")
			for i, v := range c.SampleValues[:min(3, len(c.SampleValues))] {
				if i > 0 {
					b.WriteString(" | ")
				}
				b.WriteString(safeVal(v))
			}
		}
		var tags []string
		if c.IsTimeColumn {
			tags = append(tags, "time")
		}
		if c.IsKey {
			tags = append(tags, "key")
		}
		if len(tags) > 0 {
			b.WriteString(" [" + strings.Join(tags, ", ") + "]")
		}
		b.WriteString("\n")
	}

	if len(r.Findings) > 0 {
		b.WriteString("\n" + section("FINDINGS"))
		for _, f := range r.Findings {
			switch f.Kind {
			case TrendFinding:
				b.WriteString(fmt.Sprintf("- %s trend %s (strength %.2f)\n", f.Columns[0], f.Direction, f.Strength))
			case CorrelationFinding:
				b.WriteString(fmt.Sprintf("- %s ~ %s: %s correlation (|r|=%.3f)\n", f.Columns[0], f.Columns[1], f.Direction, f.Strength))
			}
		}
	}

	b.WriteString("\n" + section("RECOMMENDED CHART"))
	b.WriteString(fmt.Sprintf("- %s: %s", r.Chart.Kind, r.Chart.Reason))
	if r.Chart.XColumn != "" {
		b.WriteString(" (x=" + r.Chart.XColumn)
		if r.Chart.YColumn != "" {
			b.WriteString(", y=" + r.Chart.YColumn)
		}
		b.WriteString(")")
	}
	b.WriteString("\n")

	if len(r.Visualizations) > 0 {
		b.WriteString("\n" + section("VISUALIZATIONS"))
		for _, v := range r.Visualizations {
			b.WriteString(fmt.Sprintf("- [%d] %s: %s\n", v.Priority, v.ChartType, v.Title))
		}
	}
	if len(r.Metrics) > 0 {
		b.WriteString("\n" + section("METRICS"))
		for _, m := range r.Metrics {
			b.WriteString(fmt.Sprintf("- %s (%s): %s\n", m.Name, m.Aggregation, m.Description))
		}
	}
	if len(r.Targets) > 0 {
		b.WriteString("\n" + section("TARGETS"))
		for _, t := range r.Targets {
			b.WriteString(fmt.Sprintf("- %s: target %.4g, stretch %.4g\n", t.Column, t.Default, t.Stretch))
		}
	}
	if len(r.Groupings) > 0 {
		b.WriteString("\n" + section("GROUPINGS"))
		b.WriteString("- " + strings.Join(r.Groupings, ", ") + "\n")
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n" + section("HEAD AND SAMPLE ROWS"))
		writeSampleTable(&b, r.Columns, r.Samples)
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n" + section("NOTES"))
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeSampleTable(b *strings.Builder, cols []profile.ColumnProfile, rows [][]string) {
	b.WriteString("| ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(c.Name))
	}
	b.WriteString(" |\n| ")
	for i := range cols {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if utf8.RuneCountInString(val) > 80 {
				val = string([]rune(val)[:77]) + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
}

// ChartSummary is a short human description of a chart choice, used by the chart command.
func ChartSummary(c recommend.ChartChoice) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s chart: %s\n", c.Kind, c.Reason))
	switch c.Kind {
	case recommend.Histogram:
		for _, bin := range c.Bins {
			b.WriteString(fmt.Sprintf("  [%.4g, %.4g) %d\n", bin.Lower, bin.Upper, bin.Count))
		}
	case recommend.Line:
		for _, p := range c.Series {
			b.WriteString(fmt.Sprintf("  %s %.4g\n", p.Time.Format("2006-01-02"), p.Value))
		}
	case recommend.Bar:
		for _, t := range c.Totals {
			b.WriteString(fmt.Sprintf("  %s %.4g\n", safeVal(t.Category), t.Total))
		}
	case recommend.Scatter:
		for _, p := range c.Points {
			b.WriteString(fmt.Sprintf("  (%.4g, %.4g)\n", p.X, p.Y))
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
