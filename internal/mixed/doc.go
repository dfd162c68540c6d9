// Package mixed splits mixed-type columns, whose cells interleave a quantity
// and a category in one text value ("A/5 21171", "C85"), into an aligned
// numeric column and categorical column.
//
// Three strategies are provided:
//
//   - Direct: coerce the whole cell; the raw value is the category when
//     coercion fails.
//   - Pattern: a digit run for the numeric side and a leading-character
//     selector for the category, computed independently.
//   - Tokenized: coerce the last whitespace token; the first token is the
//     category unless it is purely numeric.
//
// All strategies are pure functions of the input column. The package never
// mutates the input and does no I/O.
package mixed
