package cmd

import (
	"fmt"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/mixsplit/internal/config"
	"github.com/spf13/cobra"
)

var cfgInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mixsplit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		fmt.Fprintf(out, "null_values: %q\n", c.NullValues)
		fmt.Fprintf(out, "naming: %s\n", c.Naming)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		if c.DigitPattern != "" {
			fmt.Fprintf(out, "digit_pattern: %s\n", c.DigitPattern)
		}
		fmt.Fprintf(out, "category_width: %d\n", c.CategoryWidth)
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		if c.MaxRows > 0 {
			fmt.Fprintf(out, "max_rows: %d\n", c.MaxRows)
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		if c.LogFile != "" {
			fmt.Fprintf(out, "log_file: %s\n", c.LogFile)
		}
		if len(c.Rules) == 0 {
			fmt.Fprintln(out, "rules: (none)")
			return nil
		}
		fmt.Fprintln(out, "rules:")
		for _, r := range c.Rules {
			var extra []string
			if r.DigitPattern != "" {
				extra = append(extra, "digit_pattern="+r.DigitPattern)
			}
			if r.CategoryWidth > 0 {
				extra = append(extra, fmt.Sprintf("category_width=%d", r.CategoryWidth))
			}
			line := fmt.Sprintf("  - %s: %s", r.Column, r.Strategy)
			if len(extra) > 0 {
				line += " (" + strings.Join(extra, ", ") + ")"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config with example split rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := cfgpkg.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); err == nil && !cfgInitForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		c := *currentConfig()
		c.Rules = cfgpkg.ExampleRules()
		if err := cfgpkg.Save(&c, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&cfgInitForce, "force", false, "overwrite an existing config file")
}
