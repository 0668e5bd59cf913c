package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCategory  = errors.New("model: invalid goal category")
	ErrInvalidTimeFrame = errors.New("model: invalid goal time frame")
)

type Category string

const (
	CategoryReligious Category = "religious"
	CategoryPhysical  Category = "physical"
	CategoryAcademic  Category = "academic"
	CategoryGeneral   Category = "general"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryReligious, CategoryPhysical, CategoryAcademic, CategoryGeneral}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryReligious, CategoryPhysical, CategoryAcademic, CategoryGeneral:
		return true
	default:
		return false
	}
}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.IsValid()
}

// CoerceCategory maps untrusted text onto the closed category set, falling
// back to CategoryGeneral.
func CoerceCategory(raw string) Category {
	if c, ok := ParseCategory(raw); ok {
		return c
	}
	return CategoryGeneral
}

type TimeFrame string

const (
	TimeFrameYearly  TimeFrame = "yearly"
	TimeFrameMonthly TimeFrame = "monthly"
	TimeFrameWeekly  TimeFrame = "weekly"
	TimeFrameDaily   TimeFrame = "daily"
)

func TimeFrames() []TimeFrame {
	return []TimeFrame{TimeFrameDaily, TimeFrameWeekly, TimeFrameMonthly, TimeFrameYearly}
}

func (t TimeFrame) IsValid() bool {
	switch t {
	case TimeFrameYearly, TimeFrameMonthly, TimeFrameWeekly, TimeFrameDaily:
		return true
	default:
		return false
	}
}

func ParseTimeFrame(raw string) (TimeFrame, bool) {
	t := TimeFrame(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.IsValid()
}

// Point values per time scale. Daily goals vary by where they came from.
const (
	PointsYearly         = 500
	PointsMonthly        = 100
	PointsWeekly         = 50
	PointsDaily          = 10
	PointsDailyHabit     = 15
	PointsSuggestedDaily = 25
)

// PointsFor returns the points a manually created goal of the given scale is worth.
func PointsFor(t TimeFrame) int {
	switch t {
	case TimeFrameYearly:
		return PointsYearly
	case TimeFrameMonthly:
		return PointsMonthly
	case TimeFrameWeekly:
		return PointsWeekly
	default:
		return PointsDaily
	}
}

type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeFrame   TimeFrame `json:"timeFrame"`
	Category    Category  `json:"category"`
	Completed   bool      `json:"completed"`
	Failed      bool      `json:"failed"`
	Points      int       `json:"points"`
	ParentID    string    `json:"parentId,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	AIGenerated bool      `json:"isAiGenerated,omitempty"`
	Postponed   bool      `json:"isPostponed,omitempty"`
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("model: goal title is required")
	}
	if !g.TimeFrame.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFrame, g.TimeFrame)
	}
	if !g.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, g.Category)
	}
	if g.Points < 0 {
		return errors.New("model: goal points must not be negative")
	}
	return nil
}

func (g Goal) IsDaily() bool { return g.TimeFrame == TimeFrameDaily }

var fixedDailyTasks = []Goal{
	{ID: "f-1", Title: "Pray all five prayers", Description: "Keep every obligatory prayer on time", TimeFrame: TimeFrameDaily, Category: CategoryReligious, Points: PointsDaily},
	{ID: "f-2", Title: "Tasbih 100 times", Description: "Remembrance for a calm mind", TimeFrame: TimeFrameDaily, Category: CategoryReligious, Points: PointsDaily},
	{ID: "f-3", Title: "Exercise for 30 minutes", Description: "Physical activity to stay strong", TimeFrame: TimeFrameDaily, Category: CategoryPhysical, Points: PointsDaily},
}

// FixedDailyTasks returns a fresh copy of the daily tasks that must always
// exist in the active goal set.
func FixedDailyTasks(now time.Time) []Goal {
	out := make([]Goal, len(fixedDailyTasks))
	copy(out, fixedDailyTasks)
	for i := range out {
		out[i].DueDate = now.UTC()
	}
	return out
}

func IsFixedDailyTask(id string) bool {
	for _, f := range fixedDailyTasks {
		if f.ID == id {
			return true
		}
	}
	return false
}

// EnsureFixedDailyTasks prepends any fixed task missing from goals. Present
// tasks are left exactly as they are.
func EnsureFixedDailyTasks(goals []Goal, now time.Time) []Goal {
	present := make(map[string]bool, len(goals))
	for _, g := range goals {
		present[g.ID] = true
	}
	missing := make([]Goal, 0, len(fixedDailyTasks))
	for _, f := range FixedDailyTasks(now) {
		if !present[f.ID] {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return goals
	}
	return append(missing, goals...)
}
