package planner

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/enjaz/internal/model"
)

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func breakdownPrompt(goal string) string {
	return fmt.Sprintf(`You are a productivity coach. Analyze this yearly goal: %q.

1. Consider the best practices for achieving it.
2. Split it into 3 major monthly goals.
3. For each month give 2 concrete weekly sub-goals.
4. Suggest one simple daily task.
5. Pick the goal's category from: %s.

Output ONLY a valid JSON object matching this exact schema:
{
  "category": "<category>",
  "monthlyGoals": [
    {"title": "<title>", "description": "<one sentence>", "weeklySubGoals": ["<step>", "<step>"]}
  ],
  "suggestedDailyTask": "<task>"
}
No markdown, no explanations.`, goal, categoryList())
}

func suggestPrompt(yearlyTitles []string) string {
	return fmt.Sprintf(`My yearly goals are: [%s].
Suggest up to 3 small tasks I can finish today that move these goals forward.
Categories: %s.

Output ONLY a valid JSON object:
{"tasks": [{"title": "<task>", "category": "<category>"}]}`, strings.Join(yearlyTitles, "; "), categoryList())
}

func pricePrompt(title string) string {
	return fmt.Sprintf(`How many points should this reward cost: %q? Reply with a single whole number between %d and %d.`,
		title, model.MinRewardCost, model.MaxRewardCost)
}

func categorizePrompt(title string) string {
	return fmt.Sprintf(`Classify this task: %q into exactly one of: %s. Reply with the category word only.`, title, categoryList())
}

func advicePrompt(expenses []model.Expense, dailyLimit decimal.Decimal) string {
	if len(expenses) > maxAdviceExpenses {
		expenses = expenses[:maxAdviceExpenses]
	}
	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		lines = append(lines, fmt.Sprintf("- %s: %s", e.Description, e.Amount.StringFixed(2)))
	}
	return fmt.Sprintf(`My daily spending limit is %s. My most recent expenses are:
%s

Give me short, practical saving advice in a few markdown bullet points.`, dailyLimit.StringFixed(2), strings.Join(lines, "\n"))
}
