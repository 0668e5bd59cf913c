package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	AI      AIConfig      `yaml:"ai"`
	Budget  BudgetConfig  `yaml:"budget"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// StorageConfig selects and configures the state backend.
type StorageConfig struct {
	Driver    string `yaml:"driver"     env:"ENJAZ_STORAGE_DRIVER"    env-default:"sqlite"`
	Path      string `yaml:"path"       env:"ENJAZ_STORAGE_PATH"      env-default:".enjaz/enjaz.db"`
	Namespace string `yaml:"namespace"  env:"ENJAZ_STORAGE_NAMESPACE" env-default:"enjaz"`
	RedisAddr string `yaml:"redis_addr" env:"ENJAZ_REDIS_ADDR"        env-default:"localhost:6379"`
	RedisDB   int    `yaml:"redis_db"   env:"ENJAZ_REDIS_DB"          env-default:"0"`
}

// AIConfig holds assistant settings. An empty APIKey disables the assistant.
type AIConfig struct {
	APIKey    string        `yaml:"api_key"    env:"ENJAZ_AI_API_KEY"`
	ModelsRaw string        `yaml:"models"     env:"ENJAZ_AI_MODELS"     env-default:"claude-sonnet-4-5,claude-haiku-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"ENJAZ_AI_MAX_TOKENS" env-default:"2048"`
	Timeout   time.Duration `yaml:"timeout"    env:"ENJAZ_AI_TIMEOUT"    env-default:"45s"`

	// Models is parsed from ModelsRaw during validation.
	Models []string `yaml:"-" env:"-"`
}

// Enabled reports whether an API key is configured.
func (c AIConfig) Enabled() bool { return c.APIKey != "" }

// BudgetConfig seeds the ledger and points on a fresh install.
type BudgetConfig struct {
	MonthlyLimitRaw  string `yaml:"monthly_limit"      env:"ENJAZ_BUDGET_MONTHLY_LIMIT" env-default:"2000"`
	DailyLimitRaw    string `yaml:"daily_limit"        env:"ENJAZ_BUDGET_DAILY_LIMIT"   env-default:"45"`
	StartingPoints   int    `yaml:"starting_points"    env:"ENJAZ_STARTING_POINTS"      env-default:"100"`
	CarryOverUnspent bool   `yaml:"carry_over_unspent" env:"ENJAZ_BUDGET_CARRY_OVER"    env-default:"false"`
}

// MonthlyLimit is only meaningful after Validate succeeded.
func (b BudgetConfig) MonthlyLimit() decimal.Decimal {
	d, _ := parseAmount(b.MonthlyLimitRaw)
	return d
}

// DailyLimit is only meaningful after Validate succeeded.
func (b BudgetConfig) DailyLimit() decimal.Decimal {
	d, _ := parseAmount(b.DailyLimitRaw)
	return d
}

// LogConfig holds logging settings. The terminal belongs to the UI, so logs
// always go to Path.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ENJAZ_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ENJAZ_LOG_FORMAT" env-default:"text"`
	Path   string `yaml:"path"   env:"ENJAZ_LOG_PATH"   env-default:".enjaz/enjaz.log"`
}

type UIConfig struct {
	SchedulerBuffer int `yaml:"scheduler_buffer" env:"ENJAZ_SCHEDULER_BUFFER" env-default:"16"`
}
