package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultExpenseDescription = "Expense"

type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"timestamp"`
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: expense id is required")
	}
	if !e.Amount.IsPositive() {
		return errors.New("model: expense amount must be positive")
	}
	if e.CreatedAt.IsZero() {
		return errors.New("model: expense timestamp is required")
	}
	return nil
}

// Budget is the spending ledger. Expenses are kept most-recent-first.
type Budget struct {
	MonthlyLimit    decimal.Decimal `json:"monthlyLimit"`
	DailyLimit      decimal.Decimal `json:"dailyLimit"`
	SpentThisMonth  decimal.Decimal `json:"spentThisMonth"`
	SpentToday      decimal.Decimal `json:"spentToday"`
	RolloverBalance decimal.Decimal `json:"rolloverBalance"`
	Expenses        []Expense       `json:"expenses"`
}

func DefaultBudget(monthlyLimit, dailyLimit decimal.Decimal) Budget {
	return Budget{
		MonthlyLimit: monthlyLimit,
		DailyLimit:   dailyLimit,
		Expenses:     []Expense{},
	}
}

// RemainingToday can be negative once the daily limit is overspent.
func (b Budget) RemainingToday() decimal.Decimal {
	return b.DailyLimit.Add(b.RolloverBalance).Sub(b.SpentToday)
}

func (b Budget) RemainingThisMonth() decimal.Decimal {
	return b.MonthlyLimit.Sub(b.SpentThisMonth)
}

func (b Budget) Clone() Budget {
	out := b
	out.Expenses = append([]Expense(nil), b.Expenses...)
	if out.Expenses == nil {
		out.Expenses = []Expense{}
	}
	return out
}
