package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/mixsplit/internal/mixed"
	"github.com/KaramelBytes/mixsplit/internal/utils"
)

// Options controls how a dataset is loaded.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// NullValues are raw values read as absent.
	NullValues []string
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// TrimLeadingSpace drops leading blanks of unquoted fields. Off by
	// default: whitespace-only cells must reach the strategies intact.
	TrimLeadingSpace bool
	// SheetName and SheetIndex select the XLSX sheet; see LoadXLSX.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the usual missing-value markers.
func DefaultOptions() Options {
	return Options{NullValues: []string{"", "NA", "NaN"}}
}

// Load reads a CSV, TSV or XLSX file, chosen by extension. XLSX files use
// opt.SheetName or opt.SheetIndex.
func Load(path string, opt Options) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt, opt.SheetName, opt.SheetIndex)
	}
	return LoadCSV(path, opt)
}

// LoadCSV reads a delimited file with a header row.
func LoadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	t, err := ReadCSV(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadCSV reads delimited records with a header row from r. Short rows are
// padded with absent cells; longer rows are truncated to the header.
func ReadCSV(r io.Reader, opt Options) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = opt.TrimLeadingSpace
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable("", 0), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	var records [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			break
		}
		records = append(records, rec)
	}
	return fromRecords(header, records, opt.NullValues)
}

// fromRecords builds a table from a header and string rows.
func fromRecords(header []string, records [][]string, nulls []string) (*Table, error) {
	t := NewTable("", len(records))
	names := uniqueNames(header)
	for j, name := range names {
		raw := make([]string, len(records))
		present := make([]bool, len(records))
		for i, rec := range records {
			if j < len(rec) {
				raw[i] = rec[j]
				present[i] = true
			}
		}
		col := mixed.TextColumn(raw, nulls...)
		for i, ok := range present {
			if !ok {
				col[i] = mixed.Absent()
			}
		}
		if err := t.AddColumn(name, col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// uniqueNames trims header cells, names blanks after their position and
// suffixes repeats with __2, __3, ...
func uniqueNames(header []string) []string {
	taken := map[string]bool{}
	out := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		base := name
		for n := 2; taken[key(name)]; n++ {
			name = fmt.Sprintf("%s__%d", base, n)
		}
		taken[key(name)] = true
		out[i] = name
	}
	return out
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// WriteCSV writes the table, header first. Absent cells become empty fields.
func WriteCSV(w io.Writer, t *Table, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Rows(); i++ {
		if err := cw.Write(t.Record(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to path atomically.
func SaveCSV(path string, t *Table, delim rune) error {
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t, delim); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
