package tracker

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

// Reconciliation describes one day rollover.
type Reconciliation struct {
	Day          string
	Previous     string
	ResetFixed   int
	PurgedDaily  int
	MonthRolled  bool
	CarriedOver  decimal.Decimal
	YearlyTitles []string
}

// Reconcile brings state up to the calendar day of now. It reports false and
// changes nothing when state is already current for that day.
func (t *Tracker) Reconcile(ctx context.Context, now time.Time) (Reconciliation, bool) {
	today := model.DayKey(now)
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.LastReset == today {
		return Reconciliation{Day: today, Previous: today}, false
	}
	rec := Reconciliation{Day: today, Previous: t.state.LastReset}

	kept := make([]model.Goal, 0, len(t.state.Goals))
	for _, g := range t.state.Goals {
		if !g.IsDaily() {
			if g.TimeFrame == model.TimeFrameYearly {
				rec.YearlyTitles = append(rec.YearlyTitles, g.Title)
			}
			kept = append(kept, g)
			continue
		}
		if !model.IsFixedDailyTask(g.ID) {
			rec.PurgedDaily++
			continue
		}
		if g.Completed {
			rec.ResetFixed++
		}
		g.Completed = false
		g.DueDate = now.UTC()
		kept = append(kept, g)
	}
	t.state.Goals = model.EnsureFixedDailyTasks(kept, now)

	b := &t.state.Budget
	if t.opts.CarryOverUnspent && rec.Previous != "" {
		unspent := b.RemainingToday()
		if unspent.IsPositive() {
			rec.CarriedOver = unspent
			b.RolloverBalance = unspent
		} else {
			b.RolloverBalance = decimal.Zero
		}
	}
	if rec.Previous != "" && monthOf(rec.Previous) != monthOf(today) {
		rec.MonthRolled = true
		b.SpentThisMonth = decimal.Zero
		b.RolloverBalance = decimal.Zero
		rec.CarriedOver = decimal.Zero
	}
	b.SpentToday = decimal.Zero
	b.Expenses = []model.Expense{}

	t.state.Stats.RestDay = false
	t.state.LastReset = today

	t.log.Info("daily reconciliation",
		slog.String("day", today),
		slog.String("previous", rec.Previous),
		slog.Int("purged", rec.PurgedDaily),
		slog.Bool("month_rolled", rec.MonthRolled),
	)
	t.persistLocked(ctx)
	return rec, true
}

// SuggestDailyTasks asks the assistant for daily tasks seeded from the yearly
// goals in rec and prepends them. It applies at most once per day; failures
// and results for a day that is no longer current add nothing.
func (t *Tracker) SuggestDailyTasks(ctx context.Context, rec Reconciliation) int {
	if len(rec.YearlyTitles) == 0 || !t.suggestionsDue(rec.Day) {
		return 0
	}

	suggestions, err := t.assistant.SuggestDailyTasks(ctx, rec.YearlyTitles)
	if err != nil {
		t.log.Info("daily suggestions skipped", slog.String("day", rec.Day), slog.String("error", err.Error()))
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.LastReset != rec.Day || t.state.Stats.LastDailyQuestDate == rec.Day {
		return 0
	}
	now := t.now().UTC()
	fresh := make([]model.Goal, 0, len(suggestions))
	for _, s := range suggestions {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			continue
		}
		fresh = append(fresh, model.Goal{
			ID:          t.newID(),
			Title:       title,
			TimeFrame:   model.TimeFrameDaily,
			Category:    model.CoerceCategory(string(s.Category)),
			Points:      model.PointsSuggestedDaily,
			DueDate:     now,
			AIGenerated: true,
		})
	}
	t.state.Goals = append(fresh, t.state.Goals...)
	t.state.Stats.LastDailyQuestDate = rec.Day
	t.persistLocked(ctx)
	return len(fresh)
}

func (t *Tracker) suggestionsDue(day string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.LastReset == day && t.state.Stats.LastDailyQuestDate != day
}

func monthOf(day string) string {
	if len(day) < 7 {
		return day
	}
	return day[:7]
}
