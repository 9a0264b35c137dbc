// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Eclesiar   EclesiarConfig   `mapstructure:"eclesiar"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Arbitrage  ArbitrageConfig  `mapstructure:"arbitrage"`
	Production ProductionConfig `mapstructure:"production"`
	Report     ReportConfig     `mapstructure:"report"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Health     HealthConfig     `mapstructure:"health"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	TUIMode     bool   `mapstructure:"-"` // Set at runtime, not from config file
}

// EclesiarConfig holds game API settings.
type EclesiarConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	APIKey            string        `mapstructure:"api_key"`
	AuthToken         string        `mapstructure:"auth_token"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	MaxCallsPerMinute int           `mapstructure:"max_calls_per_minute" validate:"gt=0"`
	WorkersMarket     int           `mapstructure:"workers_market" validate:"gt=0"`
	WorkersRegions    int           `mapstructure:"workers_regions" validate:"gt=0"`
	CountriesTTL      time.Duration `mapstructure:"countries_ttl"`
	NPCWageFallback   float64       `mapstructure:"npc_wage_fallback" validate:"gte=0"`
}

// StorageConfig holds the snapshot database settings.
type StorageConfig struct {
	Path        string        `mapstructure:"path" validate:"required"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
	HistorySize int           `mapstructure:"history_size" validate:"gte=0"`
}

// ArbitrageConfig holds arbitrage detection and scoring thresholds.
type ArbitrageConfig struct {
	TicketCostGold      float64       `mapstructure:"ticket_cost_gold" validate:"gte=0"`
	ReferenceTradeGold  float64       `mapstructure:"reference_trade_gold" validate:"gt=0"`
	MinProfitThreshold  float64       `mapstructure:"min_profit_threshold"`
	MinSpreadThreshold  float64       `mapstructure:"min_spread_threshold" validate:"gte=0"`
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold" validate:"gte=0,lte=1"`
	RiskThreshold       float64       `mapstructure:"risk_threshold" validate:"gte=0,lte=1"`
	CrossEnabled        bool          `mapstructure:"cross_enabled"`
	CrossMinProfit      float64       `mapstructure:"cross_min_profit"`
	IncludeTriangular   bool          `mapstructure:"include_triangular"`
	TriangularWorkers   int           `mapstructure:"triangular_workers" validate:"gte=1"`
	ReferenceVolume     float64       `mapstructure:"reference_volume" validate:"gt=0"`
	StaleAfter          time.Duration `mapstructure:"stale_after" validate:"gt=0"`
	LegExecutionTime    time.Duration `mapstructure:"leg_execution_time" validate:"gt=0"`
}

// TicketCostDecimal returns the ticket cost as decimal.Decimal.
func (c *ArbitrageConfig) TicketCostDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.TicketCostGold)
}

// ReferenceTradeDecimal returns the reference trade size as decimal.Decimal.
func (c *ArbitrageConfig) ReferenceTradeDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.ReferenceTradeGold)
}

// MinProfitDecimal returns the profit cutoff (percent) as decimal.Decimal.
func (c *ArbitrageConfig) MinProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinProfitThreshold)
}

// MinSpreadDecimal returns the spread cutoff (fraction) as decimal.Decimal.
func (c *ArbitrageConfig) MinSpreadDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MinSpreadThreshold)
}

// CrossMinProfitDecimal returns the cross-arbitrage cutoff (percent) as decimal.Decimal.
func (c *ArbitrageConfig) CrossMinProfitDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.CrossMinProfit)
}

// ProductionConfig holds the baseline company used for region rankings.
type ProductionConfig struct {
	BaselineTier int `mapstructure:"baseline_tier" validate:"gte=1,lte=5"`
	TopRegions   int `mapstructure:"top_regions" validate:"gt=0"`
}

// ReportConfig holds scheduling and export settings.
type ReportConfig struct {
	Interval         time.Duration `mapstructure:"interval" validate:"gt=0"`
	TopOpportunities int           `mapstructure:"top_opportunities" validate:"gt=0"`
	ExportFormats    []string      `mapstructure:"export_formats" validate:"dive,oneof=txt csv"`
	ExportDirectory  string        `mapstructure:"export_directory" validate:"required"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	Exporter       string `mapstructure:"exporter" validate:"oneof=otlp-grpc otlp-http zipkin console none"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	ZipkinURL      string `mapstructure:"zipkin_url"`
	PrometheusPort int    `mapstructure:"prometheus_port" validate:"gte=0,lte=65535"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ECL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ECL_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ECL_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ECL_LOG_LEVEL", "LOG_LEVEL")

	// Eclesiar API
	v.BindEnv("eclesiar.base_url", "ECL_API_URL", "API_URL")
	v.BindEnv("eclesiar.api_key", "ECL_API_KEY", "ECLESIAR_API_KEY")
	v.BindEnv("eclesiar.auth_token", "ECL_AUTH_TOKEN", "AUTH_TOKEN")
	v.BindEnv("eclesiar.timeout", "ECL_API_TIMEOUT", "API_TIMEOUT")
	v.BindEnv("eclesiar.max_retries", "ECL_API_MAX_RETRIES", "API_MAX_RETRIES")
	v.BindEnv("eclesiar.max_calls_per_minute", "ECL_MAX_API_CALLS_PER_MINUTE", "MAX_API_CALLS_PER_MINUTE")
	v.BindEnv("eclesiar.workers_market", "ECL_API_WORKERS_MARKET", "API_WORKERS_MARKET")
	v.BindEnv("eclesiar.workers_regions", "ECL_API_WORKERS_REGIONS", "API_WORKERS_REGIONS")

	// Storage
	v.BindEnv("storage.path", "ECL_DB_PATH", "ECLESIAR_DB_PATH", "DATABASE_PATH")

	// Arbitrage
	v.BindEnv("arbitrage.ticket_cost_gold", "ECL_TICKET_COST_GOLD", "TICKET_COST_GOLD")
	v.BindEnv("arbitrage.min_profit_threshold", "ECL_MIN_PROFIT_THRESHOLD", "MIN_PROFIT_THRESHOLD")
	v.BindEnv("arbitrage.min_spread_threshold", "ECL_MIN_SPREAD_THRESHOLD", "MIN_SPREAD_THRESHOLD")
	v.BindEnv("arbitrage.confidence_threshold", "ECL_CONFIDENCE_THRESHOLD", "CONFIDENCE_THRESHOLD")
	v.BindEnv("arbitrage.risk_threshold", "ECL_RISK_THRESHOLD", "RISK_THRESHOLD")
	v.BindEnv("arbitrage.cross_enabled", "ECL_CROSS_ARBITRAGE_ENABLED", "CROSS_ARBITRAGE_ENABLED")
	v.BindEnv("arbitrage.cross_min_profit", "ECL_CROSS_ARBITRAGE_MIN_PROFIT", "CROSS_ARBITRAGE_MIN_PROFIT")
	v.BindEnv("arbitrage.include_triangular", "ECL_REPORT_INCLUDE_TRIANGULAR", "REPORT_INCLUDE_TRIANGULAR")
	v.BindEnv("arbitrage.reference_volume", "ECL_LIQUIDITY_THRESHOLD", "LIQUIDITY_THRESHOLD")

	// Report
	v.BindEnv("report.interval", "ECL_REPORT_INTERVAL", "MONITORING_INTERVAL")
	v.BindEnv("report.top_opportunities", "ECL_REPORT_TOP_OPPORTUNITIES", "REPORT_TOP_OPPORTUNITIES")
	v.BindEnv("report.export_formats", "ECL_EXPORT_FORMATS", "EXPORT_FORMATS")
	v.BindEnv("report.export_directory", "ECL_EXPORT_DIRECTORY", "EXPORT_DIRECTORY")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ECL_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ECL_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.exporter", "ECL_OTEL_EXPORTER", "OTEL_TRACES_EXPORTER")
	v.BindEnv("telemetry.otlp_endpoint", "ECL_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.otlp_headers", "ECL_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
	v.BindEnv("telemetry.zipkin_url", "ECL_ZIPKIN_URL", "ZIPKIN_URL")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "eclesiar-analyzer")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Eclesiar defaults
	v.SetDefault("eclesiar.base_url", "https://api.eclesiar.com")
	v.SetDefault("eclesiar.timeout", "10s")
	v.SetDefault("eclesiar.max_retries", 3)
	v.SetDefault("eclesiar.retry_backoff", "500ms")
	v.SetDefault("eclesiar.max_calls_per_minute", 60)
	v.SetDefault("eclesiar.workers_market", 6)
	v.SetDefault("eclesiar.workers_regions", 8)
	v.SetDefault("eclesiar.countries_ttl", "5m")
	v.SetDefault("eclesiar.npc_wage_fallback", 5.0)

	// Storage defaults
	v.SetDefault("storage.path", "data/eclesiar.db")
	v.SetDefault("storage.busy_timeout", "5s")
	v.SetDefault("storage.history_size", 48)

	// Arbitrage defaults
	v.SetDefault("arbitrage.ticket_cost_gold", 0.1)
	v.SetDefault("arbitrage.reference_trade_gold", 100)
	v.SetDefault("arbitrage.min_profit_threshold", 0.5)
	v.SetDefault("arbitrage.min_spread_threshold", 0.001)
	v.SetDefault("arbitrage.confidence_threshold", 0.3)
	v.SetDefault("arbitrage.risk_threshold", 0.5)
	v.SetDefault("arbitrage.cross_enabled", true)
	v.SetDefault("arbitrage.cross_min_profit", 1.0)
	v.SetDefault("arbitrage.include_triangular", true)
	v.SetDefault("arbitrage.triangular_workers", 4)
	v.SetDefault("arbitrage.reference_volume", 1000)
	v.SetDefault("arbitrage.stale_after", "10m")
	v.SetDefault("arbitrage.leg_execution_time", "60s")

	// Production defaults
	v.SetDefault("production.baseline_tier", 5)
	v.SetDefault("production.top_regions", 10)

	// Report defaults
	v.SetDefault("report.interval", "300s")
	v.SetDefault("report.top_opportunities", 20)
	v.SetDefault("report.export_formats", []string{"txt", "csv"})
	v.SetDefault("report.export_directory", "reports")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "eclesiar-analyzer")
	v.SetDefault("telemetry.exporter", "otlp-grpc")
	v.SetDefault("telemetry.prometheus_port", 9090)

	// Health defaults
	v.SetDefault("health.enabled", true)
	v.SetDefault("health.port", 8080)
}
