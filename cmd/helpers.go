package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/mixsplit/internal/config"
	"github.com/KaramelBytes/mixsplit/internal/dataset"
	"github.com/KaramelBytes/mixsplit/internal/mixed"
)

// inputFlags are the dataset loading flags shared by split and counts.
type inputFlags struct {
	delimiter  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}

func loadTable(path string, in inputFlags, c *cfgpkg.Global) (*dataset.Table, error) {
	opt := dataset.DefaultOptions()
	if c.NullValues != nil {
		opt.NullValues = c.NullValues
	}
	delim := in.delimiter
	if delim == "" {
		delim = c.Delimiter
	}
	d, err := parseDelimiter(delim)
	if err != nil {
		return nil, err
	}
	opt.Delimiter = d
	opt.MaxRows = c.MaxRows
	if in.maxRows > 0 {
		opt.MaxRows = in.maxRows
	}
	opt.SheetName, opt.SheetIndex = in.sheetName, in.sheetIndex
	return dataset.Load(path, opt)
}

// parseRule reads "Column=strategy".
func parseRule(s string) (cfgpkg.Rule, error) {
	col, strategy, ok := strings.Cut(s, "=")
	col, strategy = strings.TrimSpace(col), strings.TrimSpace(strategy)
	if !ok || col == "" || strategy == "" {
		return cfgpkg.Rule{}, fmt.Errorf("invalid --rule %q (use Column=strategy)", s)
	}
	return cfgpkg.Rule{Column: col, Strategy: strategy}, nil
}

// strategyFor resolves a rule's strategy; rule settings win over flag
// overrides, which win over config defaults.
func strategyFor(r cfgpkg.Rule, c *cfgpkg.Global, digitPattern string, categoryWidth int) (mixed.Strategy, error) {
	opt := mixed.PatternOptions{DigitPattern: c.DigitPattern, CategoryWidth: c.CategoryWidth}
	if digitPattern != "" {
		opt.DigitPattern = digitPattern
	}
	if categoryWidth > 0 {
		opt.CategoryWidth = categoryWidth
	}
	if r.DigitPattern != "" {
		opt.DigitPattern = r.DigitPattern
	}
	if r.CategoryWidth > 0 {
		opt.CategoryWidth = r.CategoryWidth
	}
	s, err := mixed.Lookup(r.Strategy, opt)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w (available: %s)", r.Column, err, strings.Join(mixed.Names(), ", "))
	}
	return s, nil
}
