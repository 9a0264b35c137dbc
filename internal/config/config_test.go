package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.eclesiar.com", cfg.Eclesiar.BaseURL)
	assert.Equal(t, 60, cfg.Eclesiar.MaxCallsPerMinute)
	assert.Equal(t, 0.1, cfg.Arbitrage.TicketCostGold)
	assert.Equal(t, 0.5, cfg.Arbitrage.MinProfitThreshold)
	assert.Equal(t, 0.001, cfg.Arbitrage.MinSpreadThreshold)
	assert.Equal(t, 0.3, cfg.Arbitrage.ConfidenceThreshold)
	assert.Equal(t, 0.5, cfg.Arbitrage.RiskThreshold)
	assert.True(t, cfg.Arbitrage.CrossEnabled)
	assert.True(t, cfg.Arbitrage.IncludeTriangular)
	assert.Equal(t, 60*time.Second, cfg.Arbitrage.LegExecutionTime)
	assert.Equal(t, 5*time.Minute, cfg.Report.Interval)
	assert.Equal(t, 20, cfg.Report.TopOpportunities)
	assert.Equal(t, []string{"txt", "csv"}, cfg.Report.ExportFormats)
	assert.Equal(t, 5, cfg.Production.BaselineTier)
	assert.Equal(t, "0.1", cfg.Arbitrage.TicketCostDecimal().String())
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("TICKET_COST_GOLD", "0.25")
	t.Setenv("MIN_PROFIT_THRESHOLD", "2")
	t.Setenv("CROSS_ARBITRAGE_ENABLED", "false")
	t.Setenv("ECL_EXPORT_FORMATS", "csv")
	t.Setenv("ECLESIAR_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Arbitrage.TicketCostGold)
	assert.Equal(t, 2.0, cfg.Arbitrage.MinProfitThreshold)
	assert.False(t, cfg.Arbitrage.CrossEnabled)
	assert.Equal(t, []string{"csv"}, cfg.Report.ExportFormats)
	assert.Equal(t, "secret", cfg.Eclesiar.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("arbitrage:\n  risk_threshold: 0.8\nproduction:\n  baseline_tier: 3\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Arbitrage.RiskThreshold)
	assert.Equal(t, 3, cfg.Production.BaselineTier)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"risk above one", func(c *Config) { c.Arbitrage.RiskThreshold = 1.5 }, "arbitrage.risk_threshold"},
		{"baseline tier", func(c *Config) { c.Production.BaselineTier = 6 }, "production.baseline_tier"},
		{"export format", func(c *Config) { c.Report.ExportFormats = []string{"docx"} }, "report.export_formats[0]"},
		{"api url", func(c *Config) { c.Eclesiar.BaseURL = "not a url" }, "eclesiar.base_url"},
		{"calls per minute", func(c *Config) { c.Eclesiar.MaxCallsPerMinute = 0 }, "eclesiar.max_calls_per_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
