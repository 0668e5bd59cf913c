package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validate checks the loaded values and fills the parsed fields. Load calls
// it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if err := c.Budget.validate(); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	if c.UI.SchedulerBuffer <= 0 {
		return fmt.Errorf("ui: scheduler_buffer must be > 0 (got %d)", c.UI.SchedulerBuffer)
	}
	return nil
}

func (s *StorageConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverSQLite, DriverFile:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("path is required for driver %q", s.Driver)
		}
	case DriverRedis:
		if strings.TrimSpace(s.RedisAddr) == "" {
			return fmt.Errorf("redis_addr is required for driver %q", s.Driver)
		}
		if s.RedisDB < 0 {
			return fmt.Errorf("redis_db must be >= 0 (got %d)", s.RedisDB)
		}
	default:
		return fmt.Errorf("unknown driver %q", s.Driver)
	}
	if strings.TrimSpace(s.Namespace) == "" {
		return fmt.Errorf("namespace is required")
	}
	return nil
}

func (a *AIConfig) validate() error {
	a.APIKey = strings.TrimSpace(a.APIKey)
	a.Models = ParseList(a.ModelsRaw)
	if a.Enabled() && len(a.Models) == 0 {
		return fmt.Errorf("models must name at least one model when api_key is set")
	}
	if a.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", a.MaxTokens)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", a.Timeout)
	}
	return nil
}

func (b *BudgetConfig) validate() error {
	monthly, err := parseAmount(b.MonthlyLimitRaw)
	if err != nil {
		return fmt.Errorf("monthly_limit: %w", err)
	}
	daily, err := parseAmount(b.DailyLimitRaw)
	if err != nil {
		return fmt.Errorf("daily_limit: %w", err)
	}
	if daily.GreaterThan(monthly) {
		return fmt.Errorf("daily_limit %s exceeds monthly_limit %s", daily, monthly)
	}
	if b.StartingPoints < 0 {
		return fmt.Errorf("starting_points must be >= 0 (got %d)", b.StartingPoints)
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must be >= 0 (got %s)", d)
	}
	return d, nil
}

// ParseList splits a comma-separated string, dropping empty items.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
