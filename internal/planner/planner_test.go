package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/enjaz/internal/model"
)

type fakeAssistant struct {
	breakdown Breakdown
	err       error
	calls     int
}

func (f *fakeAssistant) BreakdownGoal(context.Context, string) (Breakdown, error) {
	f.calls++
	return f.breakdown, f.err
}

func (f *fakeAssistant) SuggestDailyTasks(context.Context, []string) ([]Suggestion, error) {
	return nil, f.err
}

func (f *fakeAssistant) PriceReward(context.Context, string) (int, error) { return 0, f.err }

func (f *fakeAssistant) AdviseOnBudget(context.Context, []model.Expense, decimal.Decimal) (string, error) {
	return "", f.err
}

func (f *fakeAssistant) Categorize(context.Context, string) (model.Category, error) {
	return model.CategoryGeneral, f.err
}

var fixedNow = time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)

func newTestPlanner(a Assistant) *Planner {
	p := New(a, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return fixedNow }
	p.newID = func() string { return "y1" }
	return p
}

func TestBreakdownRejectsEmptyGoal(t *testing.T) {
	a := &fakeAssistant{}
	_, err := newTestPlanner(a).Breakdown(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyGoal)
	assert.Zero(t, a.calls)
}

func TestBreakdownUsesAssistantPlan(t *testing.T) {
	a := &fakeAssistant{breakdown: Breakdown{
		Category: model.CategoryAcademic,
		MonthlyGoals: []MonthlyGoal{
			{Title: "Grammar", WeeklySubGoals: []string{"Verbs", "Nouns"}},
			{Title: "Speaking"},
		},
		SuggestedDailyTask: "Flashcards",
	}}
	plan, err := newTestPlanner(a).Breakdown(context.Background(), " Learn Spanish ")
	require.NoError(t, err)
	assert.False(t, plan.Degraded)
	assert.Equal(t, 1, a.calls)

	ids := make([]string, 0, len(plan.Goals))
	for _, g := range plan.Goals {
		ids = append(ids, g.ID)
		assert.Equal(t, model.CategoryAcademic, g.Category)
	}
	assert.Equal(t, []string{"y1", "y1-m-0", "y1-m-0-w-0", "y1-m-0-w-1", "y1-m-1", "y1-d"}, ids)

	yearly := plan.Goals[0]
	assert.Equal(t, "Learn Spanish", yearly.Title)
	assert.Equal(t, model.TimeFrameYearly, yearly.TimeFrame)
	assert.Equal(t, model.PointsYearly, yearly.Points)
	assert.False(t, yearly.AIGenerated)
	assert.Empty(t, yearly.ParentID)

	assert.Equal(t, "y1", plan.Goals[1].ParentID)
	assert.Equal(t, model.PointsMonthly, plan.Goals[1].Points)
	assert.Equal(t, "y1-m-0", plan.Goals[2].ParentID)
	assert.Equal(t, model.PointsWeekly, plan.Goals[2].Points)
	daily := plan.Goals[len(plan.Goals)-1]
	assert.Equal(t, model.TimeFrameDaily, daily.TimeFrame)
	assert.Equal(t, model.PointsDailyHabit, daily.Points)
	for _, g := range plan.Goals[1:] {
		assert.True(t, g.AIGenerated, g.ID)
	}
}

func TestBreakdownFallsBackOnFailure(t *testing.T) {
	for name, a := range map[string]*fakeAssistant{
		"error":      {err: errors.New("timeout")},
		"empty plan": {breakdown: Breakdown{Category: model.CategoryPhysical}},
	} {
		t.Run(name, func(t *testing.T) {
			plan, err := newTestPlanner(a).Breakdown(context.Background(), "Run a marathon")
			require.NoError(t, err)
			assert.True(t, plan.Degraded)
			assert.Error(t, plan.Cause)
			require.Len(t, plan.Goals, 1+3+6+1)
			for _, g := range plan.Goals {
				assert.False(t, g.AIGenerated, g.ID)
				assert.Equal(t, model.CategoryPhysical, g.Category)
				require.NoError(t, g.Validate())
			}
		})
	}
}

func TestBreakdownUnavailableAssistant(t *testing.T) {
	plan, err := newTestPlanner(Unavailable{}).Breakdown(context.Background(), "Save money")
	require.NoError(t, err)
	assert.True(t, plan.Degraded)
	assert.ErrorIs(t, plan.Cause, ErrUnavailable)
	assert.Equal(t, model.CategoryGeneral, plan.Breakdown.Category)
}

func TestFallbackBreakdownIsDeterministic(t *testing.T) {
	for _, text := range []string{"Learn Go", "Read the Quran", "x", "تعلم البرمجة"} {
		a := FallbackBreakdown(text)
		b := FallbackBreakdown(text)
		assert.Equal(t, a, b)
		require.NotEmpty(t, a.MonthlyGoals)
		assert.True(t, a.Category.IsValid())
		assert.NotEmpty(t, a.SuggestedDailyTask)
		for _, m := range a.MonthlyGoals {
			assert.True(t, strings.Contains(m.Title, text), m.Title)
			require.Len(t, m.WeeklySubGoals, 2)
		}

		assert.Equal(t,
			BuildPlan(text, a, false, "id", fixedNow),
			BuildPlan(text, b, false, "id", fixedNow))
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := map[string]model.Category{
		"Run a marathon":       model.CategoryPhysical,
		"Read the Quran":       model.CategoryReligious,
		"Read 20 books":        model.CategoryAcademic,
		"Studying for exams":   model.CategoryAcademic,
		"Save money for a car": model.CategoryGeneral,
		"":                     model.CategoryGeneral,
	}
	for text, want := range tests {
		assert.Equal(t, want, ClassifyCategory(text), text)
	}
}
