package cmd

import (
	"fmt"
	"io"
	"os"

	cfgpkg "github.com/KaramelBytes/mixsplit/internal/config"
	"github.com/KaramelBytes/mixsplit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg       *cfgpkg.Global
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "mixsplit",
	Short: "mixsplit: split mixed-type columns into numeric and categorical features",
	Long: `mixsplit decomposes tabular columns whose cells mix numbers and labels
("A/5 21171", "C85", "3" vs "A") into a numeric column and a categorical column,
using one of three strategies: direct, pattern or tokenized.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.mixsplit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so commands still run
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{NullValues: []string{"", "NA", "NaN"}, Naming: "long", TopN: 8, LogLevel: "info"}
	}
	cfg = c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	_, logCloser = logging.Setup(logging.Options{
		Level:      level,
		Console:    rootCmd.ErrOrStderr(),
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	logging.L().Debug().Str("config", cfgFile).Msg("configuration loaded")
}
