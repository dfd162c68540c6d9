package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ticketsCSV = `PassengerId,number,Cabin,Ticket
1,5,,A/5 21171
2,3,C85,PC 17599
3,6,,STON/O2. 3101282
4,A,C123,113803
5,2,E46,LINE
6,1,C2,112050
`

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := execCmd(args...)
	require.NoError(t, err, "command %v", args)
	return out
}

// execCmd returns stdout and stderr (where the logger writes).
func execCmd(args ...string) (string, string, error) {
	resetFlags(rootCmd)
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCLI_SplitWritesDatasetAndReport(t *testing.T) {
	home := setupHome(t)
	in := writeCSV(t, home, "tickets.csv", ticketsCSV)
	outPath := filepath.Join(home, "out", "split.csv")
	repPath := filepath.Join(home, "out", "report.md")

	runCmd(t, "split", in,
		"--rule", "number=direct", "--rule", "Cabin=pattern", "--rule", "Ticket=tokenized",
		"--naming", "short", "-o", outPath, "--report", repPath)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 7, "header + 6 rows")
	assert.Equal(t, "PassengerId,number,Cabin,Ticket,number_num,number_cat,Cabin_num,Cabin_cat,Ticket_num,Ticket_cat", lines[0])
	assert.Equal(t, "1,5,,A/5 21171,5,,,,21171,A/5", lines[1])
	assert.Equal(t, "4,A,C123,113803,,A,123,C,113803,", lines[4])
	assert.Equal(t, "5,2,E46,LINE,2,,46,E,,LINE", lines[5])

	rep, err := os.ReadFile(repPath)
	require.NoError(t, err)
	for _, want := range []string{"[SPLIT SUMMARY]", "File: tickets.csv", "[COLUMN Ticket]", "- strategy: tokenized", "Naming: short"} {
		assert.Contains(t, string(rep), want)
	}
}

func TestCLI_SplitUsesConfigRules(t *testing.T) {
	home := setupHome(t)
	in := writeCSV(t, home, "tickets.csv", ticketsCSV)
	runCmd(t, "config", "init")
	_, err := os.Stat(filepath.Join(home, ".mixsplit", "config.yaml"))
	require.NoError(t, err, "config not written")

	show := runCmd(t, "config", "show")
	assert.Contains(t, show, "  - Ticket: tokenized")

	out := runCmd(t, "split", in)
	assert.Contains(t, out, "[COLUMN Cabin]")
	assert.Contains(t, out, "outputs: Cabin_numerical, Cabin_categorical")

	_, _, err = execCmd("config", "init")
	assert.Error(t, err, "init must refuse to overwrite")

	runCmd(t, "config", "set", "naming", "short")
	out = runCmd(t, "split", in, "--sample-rows", "0")
	assert.Contains(t, out, "outputs: Cabin_num, Cabin_cat")
}

func TestCLI_SplitStrictMalformed(t *testing.T) {
	home := setupHome(t)
	quoted := writeCSV(t, home, "quoted.csv", "Ticket\nA/5 21171\n\"   \"\n")
	bare := writeCSV(t, home, "bare.csv", "Ticket\nA/5 21171\n   \n")

	for _, in := range []string{quoted, bare} {
		out, stderr, err := execCmd("split", in, "--rule", "Ticket=tokenized")
		require.NoError(t, err, in)
		assert.Contains(t, out, "Ticket: 1 malformed cell(s) (whitespace only), first at row 2", in)
		assert.Contains(t, stderr, "malformed cells left absent", in)

		_, _, err = execCmd("split", in, "--rule", "Ticket=tokenized", "--strict")
		assert.Error(t, err, "--strict must fail on %s", in)
	}
}

func TestCLI_SplitErrors(t *testing.T) {
	home := setupHome(t)
	in := writeCSV(t, home, "tickets.csv", ticketsCSV)
	cases := [][]string{
		{"split", in},
		{"split", in, "--rule", "Cabin"},
		{"split", in, "--rule", "Cabin=regex"},
		{"split", in, "--rule", "Fare=direct"},
		{"split", in, "--rule", "Cabin=pattern", "--naming", "camel"},
		{"split", filepath.Join(home, "missing.csv"), "--rule", "Cabin=pattern"},
	}
	for _, args := range cases {
		_, _, err := execCmd(args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestCLI_Counts(t *testing.T) {
	home := setupHome(t)
	in := writeCSV(t, home, "tickets.csv", ticketsCSV)

	out := runCmd(t, "counts", in, "--column", "Cabin", "--strategy", "pattern", "--format", "json")
	var got []struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Value)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "E", got[1].Value)

	md := runCmd(t, "counts", in, "-c", "Ticket", "-s", "tokenized")
	assert.Contains(t, md, "| A/5 | 1 |")
	assert.Contains(t, md, "| LINE | 1 |")

	csvOut := runCmd(t, "counts", in, "-c", "number", "-s", "direct", "--side", "numeric", "--format", "csv", "--top", "2")
	lines := strings.Split(strings.TrimSpace(csvOut), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "value,count", lines[0])

	_, _, err := execCmd("counts", in, "-c", "Cabin", "-s", "pattern", "--side", "both")
	assert.Error(t, err, "unsupported side")
}

func TestCLI_CountsWarnsOnMalformed(t *testing.T) {
	home := setupHome(t)
	in := writeCSV(t, home, "bad.csv", "Ticket\nA/5 21171\n   \nPC 17599\n")

	out, stderr, err := execCmd("counts", in, "-c", "Ticket", "-s", "tokenized")
	require.NoError(t, err)
	assert.Contains(t, out, "| A/5 | 1 |")
	assert.Contains(t, out, "| PC | 1 |")
	assert.Contains(t, stderr, "malformed cells left out of counts")
	assert.Contains(t, stderr, "column=Ticket")

	_, stderr, err = execCmd("counts", in, "-c", "Ticket", "-s", "direct")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "malformed")
}
