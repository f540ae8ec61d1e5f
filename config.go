package moneywise

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultConfig []byte

// Config is the static configuration of a dataset: enabled currencies and
// category classes, and the field length limits.
type Config struct {
	DefaultCurrency   string   `toml:"default_currency"`
	Currencies        []string `toml:"currencies"`       // enabled ISO codes
	DisabledClasses   []string `toml:"disabled_classes"` // category classes not enabled
	NameLength        int      `toml:"name_length"`
	DescriptionLength int      `toml:"description_length"`
	LogLevel          string   `toml:"log_level"`
}

// NewDefaultConfig returns the embedded default configuration.
func NewDefaultConfig() *Config {
	cfg := new(Config)
	if err := toml.Unmarshal(defaultConfig, cfg); err != nil {
		panic(fmt.Sprintf("invalid embedded configuration: %v", err))
	}
	return cfg
}

// LoadConfig loads configuration files over the defaults, later files
// overriding earlier ones, then applies environment overrides.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := NewDefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("MONEYWISE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if cur := os.Getenv("MONEYWISE_DEFAULT_CURRENCY"); cur != "" {
		cfg.DefaultCurrency = strings.ToUpper(cur)
	}
}

// Validate checks the configuration is consistent.
func (c *Config) Validate() error {
	var errs []error
	for _, code := range c.Currencies {
		if money.GetCurrency(code) == nil {
			errs = append(errs, fmt.Errorf("unknown currency %q", code))
		}
	}
	if !c.CurrencyEnabled(c.DefaultCurrency) {
		errs = append(errs, fmt.Errorf("default currency %q is not enabled", c.DefaultCurrency))
	}
	for _, name := range c.DisabledClasses {
		if _, err := ParseCategoryClass(name); err != nil {
			errs = append(errs, err)
		}
	}
	if c.NameLength <= 0 {
		errs = append(errs, errors.New("name_length must be positive"))
	}
	if c.DescriptionLength <= 0 {
		errs = append(errs, errors.New("description_length must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// CurrencyEnabled reports whether code is an enabled currency.
func (c *Config) CurrencyEnabled(code string) bool { return slices.Contains(c.Currencies, code) }

// ClassEnabled reports whether the category class is enabled.
func (c *Config) ClassEnabled(class CategoryClass) bool {
	return !slices.Contains(c.DisabledClasses, class.String())
}
