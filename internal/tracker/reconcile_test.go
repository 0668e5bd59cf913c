package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/planner"
)

func staleState() model.State {
	st := baseState()
	st.LastReset = model.DayKey(testNow.AddDate(0, 0, -1))
	st.Goals[0].Completed = true
	st.Goals = append(st.Goals,
		model.Goal{ID: "d-1", Title: "Call mom", TimeFrame: model.TimeFrameDaily, Category: model.CategoryGeneral, Points: 10, Completed: true},
		model.Goal{ID: "w-1", Title: "Clean garage", TimeFrame: model.TimeFrameWeekly, Category: model.CategoryGeneral, Points: 50, Completed: true},
		model.Goal{ID: "y-1", Title: "Learn Go", TimeFrame: model.TimeFrameYearly, Category: model.CategoryAcademic, Points: 500},
	)
	st.Budget.SpentToday = decimal.NewFromInt(30)
	st.Budget.SpentThisMonth = decimal.NewFromInt(300)
	st.Budget.Expenses = []model.Expense{{ID: "e-1", Amount: decimal.NewFromInt(30), Description: "Groceries", CreatedAt: testNow.AddDate(0, 0, -1)}}
	st.Stats.RestDay = true
	return st
}

func TestReconcileNewDay(t *testing.T) {
	tr, saver := newTestTracker(t, staleState(), nil)

	rec, changed := tr.Reconcile(context.Background(), testNow)
	require.True(t, changed)
	assert.Equal(t, model.DayKey(testNow), rec.Day)
	assert.Equal(t, 1, rec.PurgedDaily)
	assert.Equal(t, 1, rec.ResetFixed)
	assert.False(t, rec.MonthRolled)
	assert.Equal(t, []string{"Learn Go"}, rec.YearlyTitles)

	st := tr.Snapshot()
	assert.Equal(t, []string{"f-1", "f-2", "f-3", "w-1", "y-1"}, goalIDs(st.Goals))
	for _, g := range st.Goals[:3] {
		assert.False(t, g.Completed, g.ID)
	}
	assert.True(t, st.Goals[3].Completed, "non-daily goals keep completion")
	assert.True(t, st.Budget.SpentToday.IsZero())
	assert.Empty(t, st.Budget.Expenses)
	assert.True(t, st.Budget.SpentThisMonth.Equal(decimal.NewFromInt(300)))
	assert.False(t, st.Stats.RestDay)
	assert.Equal(t, model.DayKey(testNow), st.LastReset)
	assert.Equal(t, 1, saver.saves)
}

func TestReconcileIsIdempotent(t *testing.T) {
	tr, saver := newTestTracker(t, staleState(), nil)
	_, changed := tr.Reconcile(context.Background(), testNow)
	require.True(t, changed)
	after := tr.Snapshot()

	_, changed = tr.Reconcile(context.Background(), testNow.Add(3*time.Hour))
	assert.False(t, changed)
	assert.Equal(t, after, tr.Snapshot())
	assert.Equal(t, 1, saver.saves)
}

func TestReconcileRestoresMissingFixedTasks(t *testing.T) {
	st := staleState()
	st.Goals = st.Goals[1:]
	tr, _ := newTestTracker(t, st, nil)

	tr.Reconcile(context.Background(), testNow)
	assert.Equal(t, []string{"f-1", "f-2", "f-3", "w-1", "y-1"}, goalIDs(tr.Snapshot().Goals))
}

func TestReconcileMonthChangeResetsMonthlySpend(t *testing.T) {
	st := staleState()
	st.LastReset = "2026-01-31"
	tr, _ := newTestTracker(t, st, nil)

	rec, changed := tr.Reconcile(context.Background(), time.Date(2026, 2, 1, 7, 0, 0, 0, time.Local))
	require.True(t, changed)
	assert.True(t, rec.MonthRolled)
	assert.True(t, tr.Snapshot().Budget.SpentThisMonth.IsZero())
}

func TestReconcileCarriesOverUnspent(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		tr, _ := newTestTrackerWithOptions(t, staleState(), nil, Options{CarryOverUnspent: true})
		rec, _ := tr.Reconcile(context.Background(), testNow)

		assert.True(t, rec.CarriedOver.Equal(decimal.NewFromInt(15)))
		b := tr.Snapshot().Budget
		assert.True(t, b.RolloverBalance.Equal(decimal.NewFromInt(15)))
		assert.True(t, b.RemainingToday().Equal(decimal.NewFromInt(60)))
	})

	t.Run("overspent", func(t *testing.T) {
		st := staleState()
		st.Budget.SpentToday = decimal.NewFromInt(80)
		st.Budget.RolloverBalance = decimal.NewFromInt(10)
		tr, _ := newTestTrackerWithOptions(t, st, nil, Options{CarryOverUnspent: true})
		tr.Reconcile(context.Background(), testNow)
		assert.True(t, tr.Snapshot().Budget.RolloverBalance.IsZero())
	})

	t.Run("disabled", func(t *testing.T) {
		tr, _ := newTestTracker(t, staleState(), nil)
		rec, _ := tr.Reconcile(context.Background(), testNow)
		assert.True(t, rec.CarriedOver.IsZero())
		assert.True(t, tr.Snapshot().Budget.RolloverBalance.IsZero())
	})
}

func TestSuggestDailyTasksAppliesOncePerDay(t *testing.T) {
	a := &stubAssistant{suggestions: []planner.Suggestion{
		{Title: "Review notes", Category: model.CategoryAcademic},
		{Title: "  "},
		{Title: "Walk", Category: model.Category("cardio")},
	}}
	tr, _ := newTestTracker(t, staleState(), a)
	rec, _ := tr.Reconcile(context.Background(), testNow)

	assert.Equal(t, 2, tr.SuggestDailyTasks(context.Background(), rec))
	st := tr.Snapshot()
	assert.Equal(t, rec.Day, st.Stats.LastDailyQuestDate)
	for _, g := range st.Goals[:2] {
		assert.True(t, g.AIGenerated)
		assert.Equal(t, model.PointsSuggestedDaily, g.Points)
		assert.Equal(t, model.TimeFrameDaily, g.TimeFrame)
		require.NoError(t, g.Validate())
	}
	assert.Equal(t, model.CategoryGeneral, st.Goals[1].Category)

	assert.Zero(t, tr.SuggestDailyTasks(context.Background(), rec))
	assert.Equal(t, 1, a.suggestCalls)
	assert.Len(t, tr.Snapshot().Goals, len(st.Goals))
}

func TestSuggestDailyTasksDegradesSilently(t *testing.T) {
	a := &stubAssistant{err: errors.New("rate limited")}
	tr, _ := newTestTracker(t, staleState(), a)
	rec, _ := tr.Reconcile(context.Background(), testNow)
	before := tr.Snapshot()

	assert.Zero(t, tr.SuggestDailyTasks(context.Background(), rec))
	assert.Equal(t, before, tr.Snapshot())
}

func TestSuggestDailyTasksIgnoresStaleOrEmptyRequests(t *testing.T) {
	a := &stubAssistant{suggestions: []planner.Suggestion{{Title: "Read"}}}
	tr, _ := newTestTracker(t, staleState(), a)
	rec, _ := tr.Reconcile(context.Background(), testNow)

	stale := rec
	stale.Day = "2020-01-01"
	assert.Zero(t, tr.SuggestDailyTasks(context.Background(), stale))

	noYearly := rec
	noYearly.YearlyTitles = nil
	assert.Zero(t, tr.SuggestDailyTasks(context.Background(), noYearly))
	assert.Zero(t, a.suggestCalls)
}
