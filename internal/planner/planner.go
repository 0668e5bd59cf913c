package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/enjaz/internal/model"
)

const strategicDescription = "Strategic breakdown"

// Plan is a goal hierarchy ready to be inserted into the tracker.
type Plan struct {
	Goal      string
	Breakdown Breakdown
	Goals     []model.Goal

	// Degraded is set when the fallback was used; Cause holds the reason.
	Degraded bool
	Cause    error
}

type Planner struct {
	assistant Assistant
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
}

func New(assistant Assistant, log *slog.Logger) *Planner {
	if assistant == nil {
		assistant = Unavailable{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Planner{
		assistant: assistant,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Breakdown asks the assistant once and falls back locally on any failure.
func (p *Planner) Breakdown(ctx context.Context, text string) (Plan, error) {
	goal := strings.TrimSpace(text)
	if goal == "" {
		return Plan{}, ErrEmptyGoal
	}

	plan := Plan{Goal: goal}
	b, err := p.assistant.BreakdownGoal(ctx, goal)
	if err == nil {
		// Assistants outside this package may skip DecodeBreakdown.
		if len(b.MonthlyGoals) == 0 {
			err = ErrEmptyPlan
		}
	}
	if err != nil {
		p.log.Warn("breakdown degraded to local plan", slog.String("goal", goal), slog.String("error", err.Error()))
		b = FallbackBreakdown(goal)
		plan.Degraded = true
		plan.Cause = err
	}
	if !b.Category.IsValid() {
		b.Category = model.CategoryGeneral
	}
	plan.Breakdown = b
	plan.Goals = BuildPlan(goal, b, !plan.Degraded, p.newID(), p.now())
	return plan, nil
}

// BuildPlan lays a breakdown out as goals: the yearly goal first, each
// monthly goal followed by its weekly steps, then the daily habit.
func BuildPlan(goal string, b Breakdown, aiGenerated bool, yearlyID string, now time.Time) []model.Goal {
	cat := b.Category
	if !cat.IsValid() {
		cat = model.CategoryGeneral
	}
	goals := []model.Goal{{
		ID:          yearlyID,
		Title:       goal,
		Description: strategicDescription,
		TimeFrame:   model.TimeFrameYearly,
		Category:    cat,
		Points:      model.PointsYearly,
		DueDate:     now.AddDate(1, 0, 0),
	}}

	for i, m := range b.MonthlyGoals {
		monthlyID := fmt.Sprintf("%s-m-%d", yearlyID, i)
		goals = append(goals, model.Goal{
			ID:          monthlyID,
			Title:       m.Title,
			Description: m.Description,
			TimeFrame:   model.TimeFrameMonthly,
			Category:    cat,
			Points:      model.PointsMonthly,
			ParentID:    yearlyID,
			DueDate:     now.AddDate(0, i+1, 0),
			AIGenerated: aiGenerated,
		})
		for j, w := range m.WeeklySubGoals {
			goals = append(goals, model.Goal{
				ID:          fmt.Sprintf("%s-w-%d", monthlyID, j),
				Title:       w,
				TimeFrame:   model.TimeFrameWeekly,
				Category:    cat,
				Points:      model.PointsWeekly,
				ParentID:    monthlyID,
				DueDate:     now.AddDate(0, i, 7*(j+1)),
				AIGenerated: aiGenerated,
			})
		}
	}

	if habit := strings.TrimSpace(b.SuggestedDailyTask); habit != "" {
		goals = append(goals, model.Goal{
			ID:          yearlyID + "-d",
			Title:       habit,
			TimeFrame:   model.TimeFrameDaily,
			Category:    cat,
			Points:      model.PointsDailyHabit,
			ParentID:    yearlyID,
			DueDate:     now,
			AIGenerated: aiGenerated,
		})
	}
	return goals
}
