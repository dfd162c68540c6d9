package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/mixsplit/internal/mixed"
)

const titanicCSV = `PassengerId,number,Cabin,Ticket
1,5,,A/5 21171
2,3,C85,PC 17599
3,6,,STON/O2. 3101282
4,A,C123,113803
5,2,NA,LINE
6,1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	tbl, err := LoadCSV(writeFile(t, "titanic.csv", titanicCSV), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "titanic.csv", tbl.Name)
	assert.Equal(t, 6, tbl.Rows())
	assert.Equal(t, []string{"PassengerId", "number", "Cabin", "Ticket"}, tbl.Names())

	cabin, err := tbl.Column("cabin")
	require.NoError(t, err)
	assert.True(t, cabin[0].IsAbsent())
	assert.Equal(t, "C85", cabin[1].String())
	assert.True(t, cabin[4].IsAbsent(), "NA is a null marker")
	assert.True(t, cabin[5].IsAbsent(), "short row is padded")

	_, err = tbl.Column("Fare")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestReadCSV_OptionsAndHeaders(t *testing.T) {
	in := "a;a;;b\n1;2;3;4\n5;6;7;8\n9;10;11;12\n"
	tbl, err := ReadCSV(strings.NewReader(in), Options{Delimiter: ';', MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a__2", "column_3", "b"}, tbl.Names())
	assert.Equal(t, 2, tbl.Rows())

	empty, err := ReadCSV(strings.NewReader(""), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())
}

func TestAttachAndWriteCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(titanicCSV), DefaultOptions())
	require.NoError(t, err)

	number, err := tbl.Column("number")
	require.NoError(t, err)
	numName, catName, err := tbl.Attach("number", mixed.SplitDirect(number), NamingLong)
	require.NoError(t, err)
	assert.Equal(t, "number_numerical", numName)
	assert.Equal(t, "number_categorical", catName)

	cabin, err := tbl.Column("Cabin")
	require.NoError(t, err)
	_, _, err = tbl.Attach("Cabin", mixed.SplitPattern(cabin, nil, nil), NamingShort)
	require.NoError(t, err)

	_, _, err = tbl.Attach("Cabin", mixed.SplitPattern(cabin, nil, nil), NamingShort)
	assert.ErrorIs(t, err, ErrColumnExists)
	_, _, err = tbl.Attach("x", mixed.SplitResult{}, NamingShort)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl, ','))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "PassengerId,number,Cabin,Ticket,number_numerical,number_categorical,Cabin_num,Cabin_cat", lines[0])
	assert.Equal(t, "2,3,C85,PC 17599,3,,85,C", lines[2])
	assert.Equal(t, "4,A,C123,113803,,A,123,C", lines[4])
}

func TestParseNaming(t *testing.T) {
	n, err := ParseNaming("SHORT")
	require.NoError(t, err)
	assert.Equal(t, NamingShort, n)
	n, err = ParseNaming("")
	require.NoError(t, err)
	assert.Equal(t, NamingLong, n)
	_, err = ParseNaming("camel")
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tickets.xlsx")
	wb := excelize.NewFile()
	_, err := wb.NewSheet("Tickets")
	require.NoError(t, err)
	rows := [][]any{
		{"Ticket", "Cabin"},
		{"A/5 21171", "C85"},
		{"112050", "NA"},
		{"LINE"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Tickets", cell, &r))
	}
	require.NoError(t, wb.SaveAs(p))
	require.NoError(t, wb.Close())

	tbl, err := LoadXLSX(p, DefaultOptions(), "tickets", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
	ticket, err := tbl.Column("Ticket")
	require.NoError(t, err)
	res, err := mixed.SplitTokenized(ticket)
	require.NoError(t, err)
	assert.Equal(t, 21171.0, res.Numeric[0].Value)
	assert.Equal(t, "A/5", res.Categorical[0].Value)
	assert.False(t, res.Categorical[1].Valid)

	cabin, err := tbl.Column("Cabin")
	require.NoError(t, err)
	assert.True(t, cabin[1].IsAbsent())
	assert.True(t, cabin[2].IsAbsent())

	_, err = LoadXLSX(p, DefaultOptions(), "Missing", 0)
	assert.ErrorContains(t, err, "Available sheets: Sheet1, Tickets")
	_, err = LoadXLSX(p, DefaultOptions(), "", 5)
	assert.Error(t, err)

	first, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, first.Rows(), "Sheet1 is empty")

	opt := DefaultOptions()
	opt.SheetIndex = 2
	second, err := Load(p, opt)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Rows())
}

func TestReadCSV_KeepsWhitespaceCells(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Ticket,number\n   ,  A\nPC 17599,3\n"), DefaultOptions())
	require.NoError(t, err)

	ticket, err := tbl.Column("Ticket")
	require.NoError(t, err)
	require.False(t, ticket[0].IsAbsent(), "unquoted blanks are a present value")
	res, err := mixed.SplitTokenized(ticket)
	assert.ErrorIs(t, err, mixed.ErrNoTokens)
	assert.Equal(t, []int{0}, res.Malformed)

	number, err := tbl.Column("number")
	require.NoError(t, err)
	direct := mixed.SplitDirect(number)
	assert.Equal(t, "  A", direct.Categorical[0].Value)

	opt := DefaultOptions()
	opt.TrimLeadingSpace = true
	trimmed, err := ReadCSV(strings.NewReader("Ticket\n   \n"), opt)
	require.NoError(t, err)
	col, err := trimmed.Column("Ticket")
	require.NoError(t, err)
	assert.True(t, col[0].IsAbsent())
}

func TestSaveCSV_TSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Ticket\nA/5 21171\n"), DefaultOptions())
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, SaveCSV(p, tbl, 0))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Ticket\nA/5 21171\n", string(b))

	back, err := LoadCSV(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, back.Rows())
}
