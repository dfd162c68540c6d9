package mixed

import "strings"

type tokenized struct{}

// Tokenized returns the tokenized dual-extraction strategy: the last
// whitespace token is coerced for the numeric side and the first token is
// the category, unless that first token is all digits.
func Tokenized() Strategy { return tokenized{} }

func (tokenized) Name() string { return "tokenized" }

func (tokenized) SplitCell(c Cell) (Number, Category, error) {
	switch {
	case c.IsAbsent():
		return Number{}, Category{}, nil
	case c.IsNumber():
		return Coerce(c), Category{}, nil
	}
	s := c.String()
	if s == "" {
		return Number{}, Category{}, nil
	}
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Number{}, Category{}, ErrNoTokens
	}
	first, last := tokens[0], tokens[len(tokens)-1]
	num := coerceText(last)
	if allDigits(first) {
		return num, Category{}, nil
	}
	return num, category(first), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SplitTokenized applies the tokenized strategy to col. Whitespace-only
// cells are reported through the error and SplitResult.Malformed; the
// result is complete either way.
func SplitTokenized(col Column) (SplitResult, error) {
	return Split(Tokenized(), col)
}
