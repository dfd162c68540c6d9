package mixed

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// decimalPattern accepts plain decimal notation with an optional exponent.
// Hex floats, underscores, NaN and infinities are rejected.
var decimalPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// Coerce interprets a cell as a number. Anything that does not parse comes
// back absent; coercion never fails.
func Coerce(c Cell) Number {
	switch c.kind {
	case kindNumber:
		if math.IsNaN(c.num) {
			return Number{}
		}
		return present(c.num)
	case kindText:
		return coerceText(c.text)
	default:
		return Number{}
	}
}

func coerceText(s string) Number {
	raw := strings.TrimSpace(s)
	if !decimalPattern.MatchString(raw) {
		return Number{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// out of range
		return Number{}
	}
	return present(f)
}

// Width is the storage width a numeric output column can be narrowed to.
type Width string

const (
	Int8    Width = "int8"
	Int16   Width = "int16"
	Int32   Width = "int32"
	Int64   Width = "int64"
	Float64 Width = "float64"
)

// Narrow reports the narrowest integer width that holds every valid value in
// col, or Float64 when a value is fractional or there are no valid values.
// Values themselves are never converted.
func Narrow(col []Number) Width {
	data := make(stats.Float64Data, 0, len(col))
	for _, n := range col {
		if !n.Valid {
			continue
		}
		if math.IsInf(n.Value, 0) || n.Value != math.Trunc(n.Value) {
			return Float64
		}
		data = append(data, n.Value)
	}
	lo, err := data.Min()
	if err != nil {
		return Float64
	}
	hi, err := data.Max()
	if err != nil {
		return Float64
	}
	switch {
	case lo >= math.MinInt8 && hi <= math.MaxInt8:
		return Int8
	case lo >= math.MinInt16 && hi <= math.MaxInt16:
		return Int16
	case lo >= math.MinInt32 && hi <= math.MaxInt32:
		return Int32
	case lo >= math.MinInt64 && hi < math.MaxInt64:
		return Int64
	default:
		return Float64
	}
}
