package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaramelBytes/mixsplit/internal/analysis"
	cfgpkg "github.com/KaramelBytes/mixsplit/internal/config"
	"github.com/KaramelBytes/mixsplit/internal/dataset"
	"github.com/KaramelBytes/mixsplit/internal/logging"
	"github.com/KaramelBytes/mixsplit/internal/mixed"
	"github.com/KaramelBytes/mixsplit/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	splRules         []string
	splNaming        string
	splDigitPattern  string
	splCategoryWidth int
	splWorkers       int
	splOutput        string
	splReport        string
	splStrict        bool
	splSampleRows    int
	splTop           int
	splInput         inputFlags
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split mixed columns of a CSV/TSV/XLSX into numeric and categorical columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := currentConfig()

		rules := c.Rules
		if len(splRules) > 0 {
			rules = nil
			for _, s := range splRules {
				r, err := parseRule(s)
				if err != nil {
					return err
				}
				rules = append(rules, r)
			}
		}
		if len(rules) == 0 {
			return fmt.Errorf("no split rules: pass --rule Column=strategy or set rules in config")
		}
		namingName := c.Naming
		if splNaming != "" {
			namingName = splNaming
		}
		naming, err := dataset.ParseNaming(namingName)
		if err != nil {
			return err
		}
		workers := c.Workers
		if splWorkers > 0 {
			workers = splWorkers
		}

		tbl, err := loadTable(path, splInput, c)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log := logging.L().With().Str("run", runID).Str("file", tbl.Name).Logger()
		log.Info().Int("rows", tbl.Rows()).Int("rules", len(rules)).Msg("splitting dataset")

		opt := analysis.DefaultOptions()
		if splSampleRows >= 0 {
			opt.SampleRows = splSampleRows
		}
		opt.TopValues = c.TopN
		if splTop > 0 {
			opt.TopValues = splTop
		}
		rep := &analysis.Report{Name: tbl.Name, RunID: runID, Rows: tbl.Rows(), Naming: naming.String()}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		malformed := 0
		for _, r := range rules {
			sum, err := applyRule(ctx, tbl, r, c, workers, naming, opt)
			if err != nil {
				return err
			}
			if n := len(sum.Malformed); n > 0 {
				malformed += n
				msg := fmt.Sprintf("%s: %d malformed cell(s) (whitespace only), first at row %d", r.Column, n, sum.Malformed[0]+1)
				rep.Warnings = append(rep.Warnings, msg)
				log.Warn().Str("column", r.Column).Int("malformed", n).Msg("malformed cells left absent")
			}
			log.Debug().Str("column", r.Column).Str("strategy", sum.Strategy).
				Int("both", sum.Both).Int("neither", sum.Neither).Msg("column split")
			rep.Cols = append(rep.Cols, sum)
		}
		if splStrict && malformed > 0 {
			return fmt.Errorf("%d malformed cell(s) found; rerun without --strict to keep them as absent", malformed)
		}

		if splOutput != "" {
			if err := dataset.SaveCSV(splOutput, tbl, 0); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote split dataset to %s\n", splOutput)
		}
		md := rep.Markdown()
		if splReport != "" {
			if err := utils.SafeWriteFile(splReport, []byte(md)); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", splReport)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), md)
		}
		return nil
	},
}

// applyRule splits one column and attaches the derived columns to tbl.
func applyRule(ctx context.Context, tbl *dataset.Table, r cfgpkg.Rule, c *cfgpkg.Global, workers int, naming dataset.Naming, opt analysis.Options) (analysis.ColumnSummary, error) {
	col, err := tbl.Column(r.Column)
	if err != nil {
		return analysis.ColumnSummary{}, err
	}
	s, err := strategyFor(r, c, splDigitPattern, splCategoryWidth)
	if err != nil {
		return analysis.ColumnSummary{}, err
	}
	res, err := mixed.SplitParallel(ctx, s, col, workers)
	if err != nil && !errors.Is(err, mixed.ErrNoTokens) {
		return analysis.ColumnSummary{}, fmt.Errorf("split %s: %w", r.Column, err)
	}
	numName, catName, err := tbl.Attach(r.Column, res, naming)
	if err != nil {
		return analysis.ColumnSummary{}, err
	}
	sum := analysis.Summarize(r.Column, s.Name(), col, res, opt)
	sum.NumericName, sum.CatName = numName, catName
	return sum, nil
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringArrayVarP(&splRules, "rule", "r", nil, "split rule Column=strategy (direct|pattern|tokenized); repeatable, overrides config rules")
	splitCmd.Flags().StringVar(&splNaming, "naming", "", "derived column naming: long (_numerical/_categorical) | short (_num/_cat)")
	splitCmd.Flags().StringVar(&splDigitPattern, "digit-pattern", "", "pattern strategy: regular expression for the numeric side (default first digit run)")
	splitCmd.Flags().IntVar(&splCategoryWidth, "category-width", 0, "pattern strategy: leading characters taken as the category (default 1)")
	splitCmd.Flags().IntVar(&splWorkers, "workers", 0, "parallel workers per column (0 = config or GOMAXPROCS)")
	splitCmd.Flags().StringVarP(&splOutput, "output", "o", "", "write the dataset with derived columns to this CSV/TSV path")
	splitCmd.Flags().StringVar(&splReport, "report", "", "write the Markdown report to this path instead of stdout")
	splitCmd.Flags().BoolVar(&splStrict, "strict", false, "fail when any cell is malformed for its strategy")
	splitCmd.Flags().IntVar(&splSampleRows, "sample-rows", 5, "example rows per column in the report")
	splitCmd.Flags().IntVar(&splTop, "top", 0, "top categories listed per column (0 = config top_n)")
	splitCmd.Flags().StringVar(&splInput.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab'")
	splitCmd.Flags().IntVar(&splInput.maxRows, "max-rows", 0, "maximum rows to load (0 = config max_rows)")
	splitCmd.Flags().StringVar(&splInput.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	splitCmd.Flags().IntVar(&splInput.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
