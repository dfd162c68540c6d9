package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/mixsplit/internal/mixed"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrColumnExists   = errors.New("column already exists")
	ErrLengthMismatch = errors.New("column length does not match table")
)

// Naming decides the names of derived columns.
type Naming int

const (
	// NamingLong yields <name>_numerical and <name>_categorical.
	NamingLong Naming = iota
	// NamingShort yields <name>_num and <name>_cat.
	NamingShort
)

// ParseNaming accepts "long" or "short"; empty means long.
func ParseNaming(s string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "long":
		return NamingLong, nil
	case "short":
		return NamingShort, nil
	default:
		return NamingLong, fmt.Errorf("unsupported naming %q (use long|short)", s)
	}
}

// Names returns the numeric and categorical column names derived from name.
func (n Naming) Names(name string) (numeric, categorical string) {
	if n == NamingShort {
		return name + "_num", name + "_cat"
	}
	return name + "_numerical", name + "_categorical"
}

func (n Naming) String() string {
	if n == NamingShort {
		return "short"
	}
	return "long"
}

// Table is a loaded tabular dataset: ordered, named columns of equal length.
type Table struct {
	Name  string
	names []string
	cols  []mixed.Column
	index map[string]int
	rows  int
}

// NewTable returns an empty table with the given row count.
func NewTable(name string, rows int) *Table {
	return &Table{Name: name, index: map[string]int{}, rows: rows}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column looks a column up by name, case-insensitively.
func (t *Table) Column(name string) (mixed.Column, error) {
	idx, ok := t.index[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrColumnNotFound, name, strings.Join(t.names, ", "))
	}
	return t.cols[idx], nil
}

// AddColumn appends a column.
func (t *Table) AddColumn(name string, col mixed.Column) error {
	if _, ok := t.index[key(name)]; ok {
		return fmt.Errorf("%w: %q", ErrColumnExists, name)
	}
	if len(col) != t.rows {
		return fmt.Errorf("%w: %q has %d rows, table has %d", ErrLengthMismatch, name, len(col), t.rows)
	}
	t.index[key(name)] = len(t.names)
	t.names = append(t.names, name)
	t.cols = append(t.cols, col)
	return nil
}

// Attach appends the two columns of a split result, named after the source
// column. Nothing is added when either name is taken.
func (t *Table) Attach(name string, res mixed.SplitResult, naming Naming) (numName, catName string, err error) {
	numName, catName = naming.Names(name)
	if len(res.Numeric) != t.rows || len(res.Categorical) != t.rows {
		return "", "", fmt.Errorf("%w: split of %q has %d/%d rows, table has %d",
			ErrLengthMismatch, name, len(res.Numeric), len(res.Categorical), t.rows)
	}
	for _, n := range []string{numName, catName} {
		if _, ok := t.index[key(n)]; ok {
			return "", "", fmt.Errorf("%w: %q", ErrColumnExists, n)
		}
	}
	if err := t.AddColumn(numName, numericCells(res.Numeric)); err != nil {
		return "", "", err
	}
	if err := t.AddColumn(catName, categoricalCells(res.Categorical)); err != nil {
		return "", "", err
	}
	return numName, catName, nil
}

// Record returns row i rendered as strings; absent cells are "".
func (t *Table) Record(i int) []string {
	rec := make([]string, len(t.cols))
	for j, c := range t.cols {
		rec[j] = c[i].String()
	}
	return rec
}

func numericCells(nums []mixed.Number) mixed.Column {
	col := make(mixed.Column, len(nums))
	for i, n := range nums {
		switch {
		case !n.Valid:
		case n.Literal != "":
			col[i] = mixed.Text(n.Literal)
		default:
			col[i] = mixed.Num(n.Value)
		}
	}
	return col
}

func categoricalCells(cats []mixed.Category) mixed.Column {
	col := make(mixed.Column, len(cats))
	for i, c := range cats {
		if c.Valid {
			col[i] = mixed.Text(c.Value)
		}
	}
	return col
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
