package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

// GainExp adds p experience, rolling every full model.ExpPerLevel into a level.
func GainExp(cs model.CategoryStats, p int) model.CategoryStats {
	if p < 0 {
		return LoseExp(cs, -p)
	}
	cs = cs.Normalize()
	total := cs.Exp + p
	cs.Level += total / model.ExpPerLevel
	cs.Exp = total % model.ExpPerLevel
	return cs
}

// LoseExp reverses GainExp, borrowing levels while above level 1. At level 1
// experience clamps at zero.
func LoseExp(cs model.CategoryStats, p int) model.CategoryStats {
	if p < 0 {
		return GainExp(cs, -p)
	}
	cs = cs.Normalize()
	cs.Exp -= p
	for cs.Exp < 0 && cs.Level > 1 {
		cs.Level--
		cs.Exp += model.ExpPerLevel
	}
	if cs.Exp < 0 {
		cs.Exp = 0
	}
	return cs
}

// expTotal is the experience cs represents above level 1 with exp 0.
func expTotal(cs model.CategoryStats) int {
	cs = cs.Normalize()
	return (cs.Level-1)*model.ExpPerLevel + cs.Exp
}

// ToggleGoal flips completion and applies or reverses the goal's points,
// completed count and category experience. Total points may go negative
// when a goal is un-completed after its points were spent.
func (t *Tracker) ToggleGoal(id string) (model.Goal, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.goalIndexLocked(id)
	if idx < 0 {
		return model.Goal{}, fmt.Errorf("%w: %q", ErrGoalNotFound, id)
	}

	g := &t.state.Goals[idx]
	g.Completed = !g.Completed
	stats := &t.state.Stats
	cat := stats.Category(g.Category)
	if g.Completed {
		stats.TotalPoints += g.Points
		stats.GoalsCompleted++
		cat = GainExp(cat, g.Points)
	} else {
		stats.TotalPoints -= g.Points
		if stats.GoalsCompleted > 0 {
			stats.GoalsCompleted--
		}
		cat = LoseExp(cat, g.Points)
	}
	stats.Categories[g.Category] = cat

	out := *g
	t.persistLocked(context.Background())
	return out, nil
}

// PurchaseReward spends points on a reward. With too few points nothing
// changes and ErrInsufficientPoints is returned.
func (t *Tracker) PurchaseReward(id string) (model.Reward, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	reward, ok := t.findRewardLocked(id)
	if !ok {
		return model.Reward{}, fmt.Errorf("%w: %q", ErrRewardNotFound, id)
	}
	if t.state.Stats.TotalPoints < reward.Cost {
		return model.Reward{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientPoints, reward.Cost, t.state.Stats.TotalPoints)
	}
	t.state.Stats.TotalPoints -= reward.Cost
	if reward.Effect == model.EffectRestDay {
		t.state.Stats.RestDay = true
	}
	t.persistLocked(context.Background())
	return reward, nil
}

func (t *Tracker) findRewardLocked(id string) (model.Reward, bool) {
	for _, r := range model.BuiltinRewards() {
		if r.ID == id {
			return r, true
		}
	}
	for _, r := range t.state.CustomRewards {
		if r.ID == id {
			return r, true
		}
	}
	return model.Reward{}, false
}

// AddExpense records spending against today and the current month.
func (t *Tracker) AddExpense(amount decimal.Decimal, description string) (model.Expense, error) {
	if !amount.IsPositive() {
		return model.Expense{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = model.DefaultExpenseDescription
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	e := model.Expense{
		ID:          t.newID(),
		Amount:      amount,
		Description: description,
		CreatedAt:   t.now().UTC(),
	}
	b := &t.state.Budget
	b.Expenses = append([]model.Expense{e}, b.Expenses...)
	b.SpentToday = b.SpentToday.Add(amount)
	b.SpentThisMonth = b.SpentThisMonth.Add(amount)
	t.persistLocked(context.Background())
	return e, nil
}

// RemoveExpense exactly reverses the AddExpense that created id.
func (t *Tracker) RemoveExpense(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	b := &t.state.Budget
	for i, e := range b.Expenses {
		if e.ID != id {
			continue
		}
		b.Expenses = append(b.Expenses[:i:i], b.Expenses[i+1:]...)
		b.SpentToday = b.SpentToday.Sub(e.Amount)
		b.SpentThisMonth = b.SpentThisMonth.Sub(e.Amount)
		t.persistLocked(context.Background())
		return nil
	}
	return fmt.Errorf("%w: %q", ErrExpenseNotFound, id)
}
