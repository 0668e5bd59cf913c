package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

// Stable keys of the persisted collections.
const (
	KeyGoals         = "goals"
	KeyCustomRewards = "custom_rewards"
	KeyBudget        = "budget"
	KeyStats         = "stats"
	KeyLastReset     = "last_reset"
)

// Defaults seeds collections that are missing or unreadable.
type Defaults struct {
	MonthlyLimit   decimal.Decimal
	DailyLimit     decimal.Decimal
	StartingPoints int
}

func DefaultDefaults() Defaults {
	return Defaults{
		MonthlyLimit:   decimal.NewFromInt(2000),
		DailyLimit:     decimal.NewFromInt(45),
		StartingPoints: model.DefaultStartingPoints,
	}
}

// StateStore materializes model.State from a KV namespace and writes it back.
type StateStore struct {
	kv       KV
	log      *slog.Logger
	defaults Defaults
	now      func() time.Time
}

func NewStateStore(kv KV, defaults Defaults, log *slog.Logger) *StateStore {
	if log == nil {
		log = slog.Default()
	}
	return &StateStore{kv: kv, log: log, defaults: defaults, now: time.Now}
}

// Load never fails. Each collection falls back to its default on its own.
func (s *StateStore) Load(ctx context.Context) model.State {
	now := s.now()
	st := model.State{
		Goals:         model.FixedDailyTasks(now),
		CustomRewards: []model.Reward{},
		Budget:        model.DefaultBudget(s.defaults.MonthlyLimit, s.defaults.DailyLimit),
		Stats:         model.DefaultUserStats(s.defaults.StartingPoints),
	}

	var goals []model.Goal
	if s.decode(ctx, KeyGoals, &goals) {
		st.Goals = model.EnsureFixedDailyTasks(normalizeGoals(goals), now)
	}

	var rewards []model.Reward
	if s.decode(ctx, KeyCustomRewards, &rewards) {
		st.CustomRewards = normalizeRewards(rewards)
	}

	var budget model.Budget
	if s.decode(ctx, KeyBudget, &budget) {
		if budget.Expenses == nil {
			budget.Expenses = []model.Expense{}
		}
		st.Budget = budget
	}

	var stats model.UserStats
	if s.decode(ctx, KeyStats, &stats) {
		st.Stats = normalizeStats(stats)
	}

	var lastReset string
	if s.decode(ctx, KeyLastReset, &lastReset) {
		st.LastReset = strings.TrimSpace(lastReset)
	}
	return st
}

// Save writes every collection independently; failures are joined.
func (s *StateStore) Save(ctx context.Context, st model.State) error {
	var errs []error
	for _, item := range []struct {
		key   string
		value any
	}{
		{KeyGoals, st.Goals},
		{KeyCustomRewards, st.CustomRewards},
		{KeyBudget, st.Budget},
		{KeyStats, st.Stats},
		{KeyLastReset, st.LastReset},
	} {
		payload, err := json.Marshal(item.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", item.key, err))
			continue
		}
		if err := s.kv.Put(ctx, item.key, payload); err != nil {
			errs = append(errs, fmt.Errorf("put %s: %w", item.key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *StateStore) decode(ctx context.Context, key string, dst any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("state key unreadable, using default", slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("state key corrupt, using default", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func normalizeGoals(in []model.Goal) []model.Goal {
	out := make([]model.Goal, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, g := range in {
		if strings.TrimSpace(g.ID) == "" || seen[g.ID] {
			continue
		}
		if !g.TimeFrame.IsValid() {
			continue
		}
		seen[g.ID] = true
		g.Category = model.CoerceCategory(string(g.Category))
		if g.Points < 0 {
			g.Points = 0
		}
		out = append(out, g)
	}
	return out
}

func normalizeRewards(in []model.Reward) []model.Reward {
	out := make([]model.Reward, 0, len(in))
	for _, r := range in {
		if r.Validate() != nil || model.IsBuiltinReward(r.ID) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func normalizeStats(in model.UserStats) model.UserStats {
	out := in.Clone()
	if out.GoalsCompleted < 0 {
		out.GoalsCompleted = 0
	}
	cats := make(map[model.Category]model.CategoryStats, len(model.Categories()))
	for _, c := range model.Categories() {
		cats[c] = out.Category(c).Normalize()
	}
	out.Categories = cats
	return out
}
