package mixed

import (
	"fmt"
	"regexp"
	"strconv"
)

// Extractor pulls the numeric side out of a cell's text.
type Extractor interface {
	Extract(s string) (string, bool)
}

// Selector picks the categorical side out of a cell's text.
type Selector interface {
	Select(s string) (string, bool)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(s string) (string, bool)

func (f ExtractorFunc) Extract(s string) (string, bool) { return f(s) }

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(s string) (string, bool)

func (f SelectorFunc) Select(s string) (string, bool) { return f(s) }

// RegexpExtractor returns the first capture group of the first match, or the
// whole match when the expression has no groups.
type RegexpExtractor struct {
	re *regexp.Regexp
}

// NewRegexpExtractor compiles expr into an Extractor.
func NewRegexpExtractor(expr string) (*RegexpExtractor, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile digit pattern: %w", err)
	}
	return &RegexpExtractor{re: re}, nil
}

func (x *RegexpExtractor) Extract(s string) (string, bool) {
	m := x.re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], m[1] != ""
	}
	return m[0], m[0] != ""
}

var digitRun = &RegexpExtractor{re: regexp.MustCompile(`[0-9]+`)}

// DigitRun matches the first maximal run of decimal digits.
func DigitRun() Extractor { return digitRun }

// Prefix selects the first n characters; cells shorter than n yield absent.
func Prefix(n int) Selector {
	if n < 1 {
		n = 1
	}
	return SelectorFunc(func(s string) (string, bool) {
		r := []rune(s)
		if len(r) < n {
			return "", false
		}
		return string(r[:n]), true
	})
}

// FirstChar selects the first character of the cell.
func FirstChar() Selector { return Prefix(1) }

type pattern struct {
	digits   Extractor
	category Selector
}

// Pattern returns the pattern-extraction strategy. The numeric and
// categorical sides are computed independently; nil arguments fall back to
// DigitRun and FirstChar.
func Pattern(digits Extractor, category Selector) Strategy {
	if digits == nil {
		digits = DigitRun()
	}
	if category == nil {
		category = FirstChar()
	}
	return pattern{digits: digits, category: category}
}

func (pattern) Name() string { return "pattern" }

func (p pattern) SplitCell(c Cell) (Number, Category, error) {
	if c.IsAbsent() {
		return Number{}, Category{}, nil
	}
	s := c.String()
	var num Number
	if m, ok := p.digits.Extract(s); ok {
		num = Number{Literal: m, Valid: true}
		// the literal is authoritative; Value is best effort
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			num.Value = f
		}
	}
	var cat Category
	if v, ok := p.category.Select(s); ok {
		cat = category(v)
	}
	return num, cat, nil
}

// SplitPattern applies the pattern-extraction strategy to col.
func SplitPattern(col Column, digits Extractor, category Selector) SplitResult {
	res, _ := Split(Pattern(digits, category), col)
	return res
}
