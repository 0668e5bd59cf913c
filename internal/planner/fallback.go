package planner

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/enjaz/internal/model"
)

var categoryKeywords = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryReligious, []string{"pray", "prayer", "quran", "koran", "fast", "mosque", "dhikr", "tasbih", "faith", "spiritual"}},
	{model.CategoryPhysical, []string{"run", "marathon", "gym", "exercise", "workout", "weight", "fitness", "swim", "walk", "health", "diet", "yoga"}},
	{model.CategoryAcademic, []string{"learn", "study", "read", "book", "course", "exam", "language", "degree", "research", "write", "code"}},
}

// ClassifyCategory guesses a category from keywords in text.
func ClassifyCategory(text string) model.Category {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	for _, group := range categoryKeywords {
		for _, w := range words {
			for _, kw := range group.words {
				if w == kw || (len(kw) > 3 && strings.HasPrefix(w, kw)) {
					return group.category
				}
			}
		}
	}
	return model.CategoryGeneral
}

// FallbackBreakdown builds a plan for text without any external help. The
// result depends only on text.
func FallbackBreakdown(text string) Breakdown {
	goal := strings.TrimSpace(text)
	phases := []struct {
		title, description string
		weekly             [2]string
	}{
		{
			"Foundations: " + goal,
			"Research what it takes and set up the basics.",
			[2]string{"Research how others achieved: " + goal, "Write a concrete plan for: " + goal},
		},
		{
			"Build momentum: " + goal,
			"Practice consistently and track progress.",
			[2]string{"Complete three focused sessions on: " + goal, "Review progress on: " + goal},
		},
		{
			"Consolidate: " + goal,
			"Close gaps and make the habit stick.",
			[2]string{"Fix the weakest area of: " + goal, "Celebrate a milestone in: " + goal},
		},
	}

	out := Breakdown{
		Category:           ClassifyCategory(goal),
		SuggestedDailyTask: fmt.Sprintf("Spend 20 minutes on: %s", goal),
	}
	for _, p := range phases {
		out.MonthlyGoals = append(out.MonthlyGoals, MonthlyGoal{
			Title:          p.title,
			Description:    p.description,
			WeeklySubGoals: []string{p.weekly[0], p.weekly[1]},
		})
	}
	return out
}
