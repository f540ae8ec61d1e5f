package moneywise

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "GBP", cfg.DefaultCurrency)
	assert.Contains(t, cfg.Currencies, "USD")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.ClassEnabled(Expense))
	assert.False(t, cfg.CurrencyEnabled("SEK"))
}

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "moneywise.toml")
	require.NoError(t, os.WriteFile(name, []byte(`
default_currency = "EUR"
disabled_classes = ["Inherited", "RentalIncome"]
name_length = 40
`), 0o644))

	cfg, err := LoadConfig(name)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, 40, cfg.NameLength)
	assert.Equal(t, 50, cfg.DescriptionLength, "kept from the defaults")
	assert.False(t, cfg.ClassEnabled(Inherited))
	assert.True(t, cfg.ClassEnabled(TaxedIncome))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MONEYWISE_LOG_LEVEL", "DEBUG")
	t.Setenv("MONEYWISE_DEFAULT_CURRENCY", "usd")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown currency", `currencies = ["GBP", "XYZ"]`, `unknown currency "XYZ"`},
		{"default not enabled", `default_currency = "SEK"`, `default currency "SEK" is not enabled`},
		{"unknown class", `disabled_classes = ["Lottery"]`, `unknown category class "Lottery"`},
		{"bad length", `name_length = 0`, "name_length must be positive"},
		{"bad toml", `name_length = `, "failed to parse config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "moneywise.toml")
			require.NoError(t, os.WriteFile(name, []byte(tt.content), 0o644))
			_, err := LoadConfig(name)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("dataset", "test").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"dataset":"test"`)
}

func TestDataSet_Logging(t *testing.T) {
	var buf bytes.Buffer
	ds, err := DecodeDataSet(bytes.NewReader([]byte(testDataSet)), nil, WithLogger(NewLogger("debug", &buf)))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "resolved dataset links")

	buf.Reset()
	require.NoError(t, ds.Rates.SetDefaultCurrency("USD"))
	assert.Contains(t, buf.String(), "default currency changed")
}
