package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/enjaz/internal/model"
)

const maxSuggestions = 3

type breakdownPayload struct {
	Category     string `json:"category"`
	MonthlyGoals []struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		WeeklySubGoals []string `json:"weeklySubGoals"`
	} `json:"monthlyGoals"`
	SuggestedDailyTask string `json:"suggestedDailyTask"`
}

type suggestionPayload struct {
	Tasks []struct {
		Title    string `json:"title"`
		Category string `json:"category"`
	} `json:"tasks"`
}

// DecodeBreakdown turns raw assistant text into a validated Breakdown.
func DecodeBreakdown(raw string) (Breakdown, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return Breakdown{}, err
	}
	var p breakdownPayload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := Breakdown{
		Category:           model.CoerceCategory(p.Category),
		SuggestedDailyTask: strings.TrimSpace(p.SuggestedDailyTask),
	}
	for _, m := range p.MonthlyGoals {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			continue
		}
		weekly := make([]string, 0, len(m.WeeklySubGoals))
		for _, w := range m.WeeklySubGoals {
			if w = strings.TrimSpace(w); w != "" {
				weekly = append(weekly, w)
			}
		}
		out.MonthlyGoals = append(out.MonthlyGoals, MonthlyGoal{
			Title:          title,
			Description:    strings.TrimSpace(m.Description),
			WeeklySubGoals: weekly,
		})
	}
	if len(out.MonthlyGoals) == 0 {
		return Breakdown{}, ErrEmptyPlan
	}
	return out, nil
}

// DecodeSuggestions keeps at most three titled suggestions.
func DecodeSuggestions(raw string) ([]Suggestion, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var p suggestionPayload
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	out := make([]Suggestion, 0, len(p.Tasks))
	for _, task := range p.Tasks {
		title := strings.TrimSpace(task.Title)
		if title == "" {
			continue
		}
		out = append(out, Suggestion{Title: title, Category: model.CoerceCategory(task.Category)})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

var firstNumber = regexp.MustCompile(`\d+`)

// DecodePrice reads the first integer in the response.
func DecodePrice(raw string) (int, error) {
	match := firstNumber.FindString(raw)
	if match == "" {
		return 0, fmt.Errorf("%w: no price in %q", ErrMalformedResponse, strings.TrimSpace(raw))
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return n, nil
}

// DecodeCategory accepts the first word in the response that names a category.
func DecodeCategory(raw string) (model.Category, error) {
	for _, word := range strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if c, ok := model.ParseCategory(word); ok {
			return c, nil
		}
	}
	return model.CategoryGeneral, fmt.Errorf("%w: no category in %q", ErrMalformedResponse, strings.TrimSpace(raw))
}

// extractJSON finds the outermost JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}
	return s[start : end+1], nil
}
