package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/mixsplit/internal/mixed"
)

// Options controls report rendering.
type Options struct {
	// TopValues limits the categories listed per column; 0 means 8.
	TopValues int
	// SampleRows is how many example rows to include per column.
	SampleRows int
}

// DefaultOptions returns reasonable defaults for split reports.
func DefaultOptions() Options {
	return Options{TopValues: 8, SampleRows: 5}
}

// Report is a markdown-friendly summary of the splits applied to a dataset.
type Report struct {
	Name     string
	RunID    string
	Rows     int
	Naming   string
	Cols     []ColumnSummary
	Warnings []string
}

// ColumnSummary captures how one column split.
type ColumnSummary struct {
	Name        string
	Strategy    string
	NumericName string
	CatName     string
	Rows        int
	// Per-row outcome counts; they add up to Rows.
	NumericOnly     int
	CategoricalOnly int
	Both            int
	Neither         int
	Malformed       []int
	Width           mixed.Width
	Unique          int
	TopValues       []mixed.ValueCount
	Samples         []Sample
}

// Sample is one raw cell next to its derived pair.
type Sample struct {
	Raw, Numeric, Categorical string
}

// Summarize computes the summary of one split. raw is the input column and
// must be aligned with res.
func Summarize(name, strategy string, raw mixed.Column, res mixed.SplitResult, opt Options) ColumnSummary {
	s := ColumnSummary{
		Name:      name,
		Strategy:  strategy,
		Rows:      res.Len(),
		Malformed: res.Malformed,
		Width:     mixed.Narrow(res.Numeric),
	}
	for i := range res.Numeric {
		n, c := res.Numeric[i].Valid, res.Categorical[i].Valid
		switch {
		case n && c:
			s.Both++
		case n:
			s.NumericOnly++
		case c:
			s.CategoricalOnly++
		default:
			s.Neither++
		}
		if len(s.Samples) < opt.SampleRows && i < len(raw) && !raw[i].IsAbsent() {
			s.Samples = append(s.Samples, Sample{
				Raw:         raw[i].String(),
				Numeric:     res.Numeric[i].String(),
				Categorical: res.Categorical[i].Value,
			})
		}
	}
	tops := mixed.Counts(res.Categorical)
	s.Unique = len(tops)
	limit := opt.TopValues
	if limit <= 0 {
		limit = 8
	}
	if len(tops) > limit {
		tops = tops[:limit]
	}
	s.TopValues = tops
	return s
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[SPLIT SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	if r.Naming != "" {
		b.WriteString(fmt.Sprintf("Naming: %s\n", r.Naming))
	}
	b.WriteString(fmt.Sprintf("Columns split: %d\n", len(r.Cols)))

	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("\n[COLUMN %s]\n", safeName(c.Name)))
		b.WriteString(fmt.Sprintf("- strategy: %s\n", c.Strategy))
		if c.NumericName != "" || c.CatName != "" {
			b.WriteString(fmt.Sprintf("- outputs: %s, %s\n", c.NumericName, c.CatName))
		}
		b.WriteString(fmt.Sprintf("- numeric only %d, categorical only %d, both %d, neither %d\n",
			c.NumericOnly, c.CategoricalOnly, c.Both, c.Neither))
		b.WriteString(fmt.Sprintf("- numeric width: %s\n", c.Width))
		if len(c.Malformed) > 0 {
			b.WriteString(fmt.Sprintf("- malformed rows: %d (first at row %d)\n", len(c.Malformed), c.Malformed[0]+1))
		}
		if len(c.TopValues) > 0 {
			b.WriteString("- top: ")
			for i, kv := range c.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if c.Unique > len(c.TopValues) {
				b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
			}
			b.WriteString("\n")
		}
		if len(c.Samples) > 0 {
			b.WriteString("\n| raw | numeric | categorical |\n| --- | --- | --- |\n")
			for _, s := range c.Samples {
				raw := truncate(s.Raw, 80)
				b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", safeVal(raw), safeVal(s.Numeric), safeVal(s.Categorical)))
			}
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CountsMarkdown renders value counts as a table a charting tool can consume.
func CountsMarkdown(title string, counts []mixed.ValueCount) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[VALUE COUNTS] %s\n\n| value | count |\n| --- | --- |\n", safeName(title)))
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", safeVal(c.Value), c.Count))
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
