package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRewardValidate(t *testing.T) {
	r := Reward{ID: "r-1", Title: "Movie night", Cost: 300, Icon: CustomRewardIcon}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid reward, got error: %v", err)
	}
	r.Effect = RewardEffect("double_points")
	if err := r.Validate(); !errors.Is(err, ErrInvalidRewardEffect) {
		t.Fatalf("expected ErrInvalidRewardEffect, got: %v", err)
	}
}

func TestBuiltinRewardsCatalog(t *testing.T) {
	rewards := BuiltinRewards()
	if len(rewards) != 4 {
		t.Fatalf("expected 4 builtin rewards, got %d", len(rewards))
	}
	restDays := 0
	for _, r := range rewards {
		if err := r.Validate(); err != nil {
			t.Fatalf("builtin reward %s invalid: %v", r.ID, err)
		}
		if !IsBuiltinReward(r.ID) {
			t.Fatalf("expected %s to be builtin", r.ID)
		}
		if r.Effect == EffectRestDay {
			restDays++
		}
	}
	if restDays != 1 {
		t.Fatalf("expected exactly one rest day reward, got %d", restDays)
	}

	rewards[0].Cost = 1
	if BuiltinRewards()[0].Cost == 1 {
		t.Fatal("builtin catalog must not be mutable through the returned slice")
	}
}

func TestClampRewardCost(t *testing.T) {
	cases := map[int]int{10: 50, 50: 50, 300: 300, 2000: 2000, 9000: 2000}
	for in, want := range cases {
		if got := ClampRewardCost(in); got != want {
			t.Fatalf("ClampRewardCost(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestBudgetRemaining(t *testing.T) {
	b := DefaultBudget(decimal.NewFromInt(2000), decimal.NewFromInt(45))
	b.SpentToday = decimal.RequireFromString("12.50")
	b.SpentThisMonth = decimal.RequireFromString("312.50")
	b.RolloverBalance = decimal.NewFromInt(5)

	if got := b.RemainingToday(); !got.Equal(decimal.RequireFromString("37.5")) {
		t.Fatalf("unexpected remaining today: %s", got)
	}
	if got := b.RemainingThisMonth(); !got.Equal(decimal.RequireFromString("1687.5")) {
		t.Fatalf("unexpected remaining month: %s", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	e := Expense{ID: "e-1", Amount: decimal.Zero, CreatedAt: time.Now()}
	if err := e.Validate(); err == nil {
		t.Fatal("expected zero amount to be rejected")
	}
	e.Amount = decimal.NewFromInt(3)
	if err := e.Validate(); err != nil {
		t.Fatalf("expected valid expense, got: %v", err)
	}
}
