package planner

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

var (
	ErrUnavailable       = errors.New("planner: assistant unavailable")
	ErrMalformedResponse = errors.New("planner: malformed assistant response")
	ErrEmptyPlan         = errors.New("planner: breakdown has no monthly goals")
	ErrEmptyResponse     = errors.New("planner: empty assistant response")
	ErrEmptyGoal         = errors.New("planner: goal text is required")
)

// Assistant is the external LLM collaborator. Every method may fail; callers
// degrade at their own boundary.
type Assistant interface {
	BreakdownGoal(ctx context.Context, title string) (Breakdown, error)
	SuggestDailyTasks(ctx context.Context, yearlyTitles []string) ([]Suggestion, error)
	PriceReward(ctx context.Context, title string) (int, error)
	AdviseOnBudget(ctx context.Context, expenses []model.Expense, dailyLimit decimal.Decimal) (string, error)
	Categorize(ctx context.Context, title string) (model.Category, error)
}

// Breakdown is the validated shape of a goal decomposition.
type Breakdown struct {
	Category           model.Category
	MonthlyGoals       []MonthlyGoal
	SuggestedDailyTask string
}

type MonthlyGoal struct {
	Title          string
	Description    string
	WeeklySubGoals []string
}

type Suggestion struct {
	Title    string
	Category model.Category
}

// Unavailable is the assistant used when no API key is configured.
type Unavailable struct{}

func (Unavailable) BreakdownGoal(context.Context, string) (Breakdown, error) {
	return Breakdown{}, ErrUnavailable
}

func (Unavailable) SuggestDailyTasks(context.Context, []string) ([]Suggestion, error) {
	return nil, ErrUnavailable
}

func (Unavailable) PriceReward(context.Context, string) (int, error) {
	return 0, ErrUnavailable
}

func (Unavailable) AdviseOnBudget(context.Context, []model.Expense, decimal.Decimal) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Categorize(context.Context, string) (model.Category, error) {
	return model.CategoryGeneral, ErrUnavailable
}
