package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Rule binds a column to a split strategy.
type Rule struct {
	Column        string `mapstructure:"column" yaml:"column"`
	Strategy      string `mapstructure:"strategy" yaml:"strategy"`
	DigitPattern  string `mapstructure:"digit_pattern" yaml:"digit_pattern,omitempty"`
	CategoryWidth int    `mapstructure:"category_width" yaml:"category_width,omitempty"`
}

// Global configuration structure.
type Global struct {
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	NullValues    []string `mapstructure:"null_values" yaml:"null_values"`
	Naming        string   `mapstructure:"naming" yaml:"naming"`
	Workers       int      `mapstructure:"workers" yaml:"workers"`
	DigitPattern  string   `mapstructure:"digit_pattern" yaml:"digit_pattern"`
	CategoryWidth int      `mapstructure:"category_width" yaml:"category_width"`
	TopN          int      `mapstructure:"top_n" yaml:"top_n"`
	MaxRows       int      `mapstructure:"max_rows" yaml:"max_rows"`
	Rules         []Rule   `mapstructure:"rules" yaml:"rules"`

	// Logging
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups" yaml:"log_max_backups"`
}

// ExampleRules mirrors the classic mixed columns of the Titanic dataset.
func ExampleRules() []Rule {
	return []Rule{
		{Column: "number", Strategy: "direct"},
		{Column: "Cabin", Strategy: "pattern"},
		{Column: "Ticket", Strategy: "tokenized"},
	}
}

// DefaultPath returns ~/.mixsplit/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".mixsplit", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.mixsplit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A missing file is not an error.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("MIXSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("delimiter", "")
	v.SetDefault("null_values", []string{"", "NA", "NaN"})
	v.SetDefault("naming", "long")
	v.SetDefault("workers", 0)
	v.SetDefault("digit_pattern", "")
	v.SetDefault("category_width", 1)
	v.SetDefault("top_n", 8)
	v.SetDefault("max_rows", 0)
	v.SetDefault("rules", []Rule{})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(cfgFile); statErr == nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".mixsplit"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a scalar key from its string form, as used by `config set`.
func (c *Global) Set(key, val string) error {
	switch key {
	case "delimiter":
		c.Delimiter = val
	case "null_values":
		c.NullValues = splitList(val)
	case "naming":
		c.Naming = val
	case "digit_pattern":
		c.DigitPattern = val
	case "log_level":
		c.LogLevel = val
	case "log_file":
		c.LogFile = val
	case "workers", "category_width", "top_n", "max_rows", "log_max_size_mb", "log_max_backups":
		var n int
		if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
			return fmt.Errorf("invalid integer for %s: %s", key, val)
		}
		switch key {
		case "workers":
			c.Workers = n
		case "category_width":
			c.CategoryWidth = n
		case "top_n":
			c.TopN = n
		case "max_rows":
			c.MaxRows = n
		case "log_max_size_mb":
			c.LogMaxSizeMB = n
		case "log_max_backups":
			c.LogMaxBackups = n
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
