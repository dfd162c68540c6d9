package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/mixsplit/internal/analysis"
	cfgpkg "github.com/KaramelBytes/mixsplit/internal/config"
	"github.com/KaramelBytes/mixsplit/internal/logging"
	"github.com/KaramelBytes/mixsplit/internal/mixed"
	"github.com/KaramelBytes/mixsplit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	cntColumn   string
	cntStrategy string
	cntSide     string
	cntFormat   string
	cntTop      int
	cntInput    inputFlags
)

var countsCmd = &cobra.Command{
	Use:   "counts <file>",
	Short: "Count distinct values of one derived column, ready for charting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cntColumn == "" {
			return fmt.Errorf("--column is required")
		}
		c := currentConfig()
		rule := cfgpkg.Rule{Column: cntColumn, Strategy: cntStrategy}
		if rule.Strategy == "" {
			for _, r := range c.Rules {
				if strings.EqualFold(r.Column, cntColumn) {
					rule = r
					break
				}
			}
		}
		if rule.Strategy == "" {
			return fmt.Errorf("no strategy for column %s: pass --strategy or add a rule to config", cntColumn)
		}
		s, err := strategyFor(rule, c, "", 0)
		if err != nil {
			return err
		}
		tbl, err := loadTable(args[0], cntInput, c)
		if err != nil {
			return err
		}
		col, err := tbl.Column(cntColumn)
		if err != nil {
			return err
		}
		res, err := mixed.Split(s, col)
		if err != nil && !errors.Is(err, mixed.ErrNoTokens) {
			return fmt.Errorf("split %s: %w", rule.Column, err)
		}
		if n := len(res.Malformed); n > 0 {
			logging.L().Warn().Str("column", rule.Column).Int("malformed", n).
				Int("first_row", res.Malformed[0]+1).Msg("malformed cells left out of counts")
		}

		var counts []mixed.ValueCount
		side := strings.ToLower(strings.TrimSpace(cntSide))
		switch side {
		case "", "categorical", "cat":
			side = "categorical"
			counts = mixed.Counts(res.Categorical)
		case "numeric", "num", "numerical":
			side = "numeric"
			counts = mixed.NumericCounts(res.Numeric)
		default:
			return fmt.Errorf("unsupported --side: %s (use categorical|numeric)", cntSide)
		}
		if cntTop > 0 && len(counts) > cntTop {
			counts = counts[:cntTop]
		}

		title := fmt.Sprintf("%s (%s, %s)", rule.Column, s.Name(), side)
		out := cmd.OutOrStdout()
		switch strings.ToLower(cntFormat) {
		case "", "md", "markdown":
			fmt.Fprint(out, analysis.CountsMarkdown(title, counts))
		case "csv":
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			_ = w.Write([]string{"value", "count"})
			for _, vc := range counts {
				_ = w.Write([]string{vc.Value, strconv.Itoa(vc.Count)})
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			fmt.Fprint(out, buf.String())
		case "json":
			type entry struct {
				Value string `json:"value"`
				Count int    `json:"count"`
			}
			entries := make([]entry, len(counts))
			for i, vc := range counts {
				entries[i] = entry{Value: vc.Value, Count: vc.Count}
			}
			b, err := utils.PrettyJSON(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		default:
			return fmt.Errorf("unsupported --format: %s (use md|csv|json)", cntFormat)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countsCmd)
	countsCmd.Flags().StringVarP(&cntColumn, "column", "c", "", "column to split and count")
	countsCmd.Flags().StringVarP(&cntStrategy, "strategy", "s", "", "strategy: direct|pattern|tokenized (default from config rules)")
	countsCmd.Flags().StringVar(&cntSide, "side", "categorical", "which derived column to count: categorical|numeric")
	countsCmd.Flags().StringVarP(&cntFormat, "format", "f", "md", "output format: md|csv|json")
	countsCmd.Flags().IntVar(&cntTop, "top", 0, "limit to the N most frequent values (0 = all)")
	countsCmd.Flags().StringVar(&cntInput.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab'")
	countsCmd.Flags().IntVar(&cntInput.maxRows, "max-rows", 0, "maximum rows to load (0 = config max_rows)")
	countsCmd.Flags().StringVar(&cntInput.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	countsCmd.Flags().IntVar(&cntInput.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
