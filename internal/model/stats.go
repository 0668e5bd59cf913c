package model

// ExpPerLevel is the experience needed to advance one level in a category.
const ExpPerLevel = 100

const DefaultStartingPoints = 100

type CategoryStats struct {
	Level int `json:"level"`
	Exp   int `json:"exp"`
}

func NewCategoryStats() CategoryStats {
	return CategoryStats{Level: 1}
}

// Normalize clamps level to >= 1 and folds exp into [0, ExpPerLevel).
func (c CategoryStats) Normalize() CategoryStats {
	if c.Level < 1 {
		c.Level = 1
	}
	if c.Exp < 0 {
		c.Exp = 0
	}
	if c.Exp >= ExpPerLevel {
		c.Level += c.Exp / ExpPerLevel
		c.Exp %= ExpPerLevel
	}
	return c
}

type UserStats struct {
	TotalPoints        int                        `json:"totalPoints"`
	GoalsCompleted     int                        `json:"goalsCompleted"`
	RestDay            bool                       `json:"isRestDay"`
	LastDailyQuestDate string                     `json:"lastDailyQuestDate,omitempty"`
	Categories         map[Category]CategoryStats `json:"categories"`
}

func DefaultUserStats(startingPoints int) UserStats {
	s := UserStats{
		TotalPoints: startingPoints,
		Categories:  make(map[Category]CategoryStats, 4),
	}
	for _, c := range Categories() {
		s.Categories[c] = NewCategoryStats()
	}
	return s
}

// Category returns the stats for c, defaulting to level 1 when absent.
func (s UserStats) Category(c Category) CategoryStats {
	if cs, ok := s.Categories[c]; ok {
		return cs
	}
	return NewCategoryStats()
}

func (s UserStats) Clone() UserStats {
	out := s
	out.Categories = make(map[Category]CategoryStats, len(s.Categories))
	for k, v := range s.Categories {
		out.Categories[k] = v
	}
	return out
}
