package mixed

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTokens marks a present, non-empty cell that tokenizes to nothing.
	ErrNoTokens = errors.New("cell has no tokens")
	// ErrUnknownStrategy is returned by Lookup for unregistered names.
	ErrUnknownStrategy = errors.New("unknown split strategy")
)

// MalformedCellError reports a row that violates a strategy's minimum
// assumption about its input. The row still yields absent outputs.
type MalformedCellError struct {
	Row int
	Raw string
	Err error
}

func (e *MalformedCellError) Error() string {
	return fmt.Sprintf("row %d: malformed cell %q: %v", e.Row, e.Raw, e.Err)
}

func (e *MalformedCellError) Unwrap() error { return e.Err }

// SplitResult holds the two derived columns, aligned row for row with the
// input column.
type SplitResult struct {
	Numeric     []Number
	Categorical []Category
	// Malformed lists rows, ascending, that were reported as malformed.
	Malformed []int
}

// Len returns the number of rows in the result.
func (r SplitResult) Len() int { return len(r.Numeric) }

// Strategy derives one numeric and one categorical entry from a single cell.
// Implementations must be pure: the output depends only on the cell.
type Strategy interface {
	Name() string
	SplitCell(c Cell) (Number, Category, error)
}

// Split runs s over every row of col. A per-cell error never stops the
// scan; the affected rows are recorded in Malformed and the errors are
// joined into the returned error alongside a complete result.
func Split(s Strategy, col Column) (SplitResult, error) {
	res := newResult(len(col))
	errs := splitRange(s, col, res, 0, len(col))
	return finish(res, errs)
}

func newResult(n int) SplitResult {
	return SplitResult{
		Numeric:     make([]Number, n),
		Categorical: make([]Category, n),
	}
}

// splitRange fills res rows [lo, hi) and returns the malformed-cell errors
// for that range in row order.
func splitRange(s Strategy, col Column, res SplitResult, lo, hi int) []*MalformedCellError {
	var errs []*MalformedCellError
	for i := lo; i < hi; i++ {
		num, cat, err := s.SplitCell(col[i])
		if err != nil {
			errs = append(errs, &MalformedCellError{Row: i, Raw: col[i].String(), Err: err})
			continue
		}
		res.Numeric[i] = num
		res.Categorical[i] = cat
	}
	return errs
}

func finish(res SplitResult, errs []*MalformedCellError) (SplitResult, error) {
	if len(errs) == 0 {
		return res, nil
	}
	joined := make([]error, len(errs))
	res.Malformed = make([]int, len(errs))
	for i, e := range errs {
		joined[i] = e
		res.Malformed[i] = e.Row
	}
	return res, errors.Join(joined...)
}

// PatternOptions configures the pattern strategy when resolved by name.
type PatternOptions struct {
	// DigitPattern overrides the default digit-run expression.
	DigitPattern string
	// CategoryWidth is the number of leading characters taken for the
	// category; 0 means 1.
	CategoryWidth int
}

// Lookup resolves a strategy by name: direct, pattern or tokenized.
func Lookup(name string, opt PatternOptions) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct":
		return Direct(), nil
	case "pattern":
		ext := DigitRun()
		if opt.DigitPattern != "" {
			re, err := NewRegexpExtractor(opt.DigitPattern)
			if err != nil {
				return nil, err
			}
			ext = re
		}
		sel := FirstChar()
		if opt.CategoryWidth > 1 {
			sel = Prefix(opt.CategoryWidth)
		}
		return Pattern(ext, sel), nil
	case "tokenized":
		return Tokenized(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Names lists the registered strategy names.
func Names() []string { return []string{"direct", "pattern", "tokenized"} }
