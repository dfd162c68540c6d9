package mixed

import (
	"math"
	"strconv"
)

type cellKind uint8

const (
	kindAbsent cellKind = iota
	kindText
	kindNumber
)

// Cell is a single raw value of a column: text, an already-parsed number,
// or absent. The zero value is absent.
type Cell struct {
	kind cellKind
	text string
	num  float64
}

// Column is an ordered sequence of cells, one per row.
type Column []Cell

// Text returns a present textual cell. The empty string is a present value.
func Text(s string) Cell { return Cell{kind: kindText, text: s} }

// Num returns a present numeric cell.
func Num(f float64) Cell { return Cell{kind: kindNumber, num: f} }

// Absent returns the missing cell.
func Absent() Cell { return Cell{} }

// IsAbsent reports whether the cell carries no value.
func (c Cell) IsAbsent() bool { return c.kind == kindAbsent }

// IsNumber reports whether the cell was supplied as a number.
func (c Cell) IsNumber() bool { return c.kind == kindNumber }

// String returns the textual form of the cell; "" for absent.
func (c Cell) String() string {
	switch c.kind {
	case kindText:
		return c.text
	case kindNumber:
		return formatFloat(c.num)
	default:
		return ""
	}
}

// TextColumn builds a column from strings. Values listed in nulls become absent.
func TextColumn(values []string, nulls ...string) Column {
	skip := make(map[string]struct{}, len(nulls))
	for _, n := range nulls {
		skip[n] = struct{}{}
	}
	col := make(Column, len(values))
	for i, v := range values {
		if _, ok := skip[v]; ok {
			continue
		}
		col[i] = Text(v)
	}
	return col
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Number is one entry of a numeric output column.
type Number struct {
	Value float64
	// Literal holds the matched text when the numeric side is kept as text.
	Literal string
	Valid   bool
}

// String renders the entry; "" when absent.
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	if n.Literal != "" {
		return n.Literal
	}
	return formatFloat(n.Value)
}

// Category is one entry of a categorical output column.
type Category struct {
	Value string
	Valid bool
}

func present(v float64) Number { return Number{Value: v, Valid: true} }
func category(s string) Category { return Category{Value: s, Valid: true} }
