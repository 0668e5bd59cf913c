package update

import (
	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/views"
)

var timeFrameOrder = []model.TimeFrame{
	model.TimeFrameYearly,
	model.TimeFrameMonthly,
	model.TimeFrameWeekly,
	model.TimeFrameDaily,
}

// orderedGoals groups goals by time frame, largest first, keeping the stored
// order inside each group.
func orderedGoals(goals []model.Goal) []model.Goal {
	out := make([]model.Goal, 0, len(goals))
	for _, tf := range timeFrameOrder {
		for _, g := range goals {
			if g.TimeFrame == tf {
				out = append(out, g)
			}
		}
	}
	return out
}

// selectable returns the ids the cursor moves over on tab, in display order.
func (m Model) selectable(tab Tab, st model.State) []string {
	var ids []string
	switch tab {
	case TabGoals:
		for _, g := range orderedGoals(st.Goals) {
			ids = append(ids, g.ID)
		}
	case TabShop:
		for _, r := range append(model.BuiltinRewards(), st.CustomRewards...) {
			ids = append(ids, r.ID)
		}
	case TabBudget:
		for _, e := range st.Budget.Expenses {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// selectedID clamps the tab cursor and returns the id under it.
func (m Model) selectedID(tab Tab, st model.State) string {
	ids := m.selectable(tab, st)
	if len(ids) == 0 {
		return ""
	}
	c := m.Cursor[tab]
	if c >= len(ids) {
		c = len(ids) - 1
	}
	if c < 0 {
		c = 0
	}
	return ids[c]
}

func (m *Model) moveCursor(delta int) {
	st := m.tracker.Snapshot()
	n := len(m.selectable(m.CurrentTab, st))
	if n == 0 {
		m.Cursor[m.CurrentTab] = 0
		return
	}
	c := m.Cursor[m.CurrentTab] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.Cursor[m.CurrentTab] = c
}

func goalsPanel(st model.State, selected string) views.GoalsPanelData {
	rows := make([]views.GoalRowData, 0, len(st.Goals))
	for _, g := range orderedGoals(st.Goals) {
		rows = append(rows, views.GoalRowData{
			ID:          g.ID,
			Title:       g.Title,
			TimeFrame:   string(g.TimeFrame),
			Category:    string(g.Category),
			Points:      g.Points,
			Completed:   g.Completed,
			AIGenerated: g.AIGenerated,
			Fixed:       model.IsFixedDailyTask(g.ID),
			Nested:      g.ParentID != "",
		})
	}
	return views.GoalsPanelData{Rows: rows, SelectedID: selected, RestDay: st.Stats.RestDay}
}

func shopPanel(st model.State, selected string) views.ShopPanelData {
	data := views.ShopPanelData{Points: st.Stats.TotalPoints, RestDay: st.Stats.RestDay, SelectedID: selected}
	for _, r := range model.BuiltinRewards() {
		data.Rewards = append(data.Rewards, views.RewardRowData{ID: r.ID, Title: r.Title, Cost: r.Cost, Icon: r.Icon})
	}
	for _, r := range st.CustomRewards {
		data.Rewards = append(data.Rewards, views.RewardRowData{ID: r.ID, Title: r.Title, Cost: r.Cost, Icon: r.Icon, Custom: true})
	}
	return data
}

func budgetPanel(st model.State, selected string) views.BudgetPanelData {
	b := st.Budget
	data := views.BudgetPanelData{
		DailyLimit:     b.DailyLimit,
		RemainingToday: b.RemainingToday(),
		Rollover:       b.RolloverBalance,
		MonthlyLimit:   b.MonthlyLimit,
		RemainingMonth: b.RemainingThisMonth(),
		SelectedID:     selected,
	}
	for _, e := range b.Expenses {
		data.Expenses = append(data.Expenses, views.ExpenseRowData{ID: e.ID, Amount: e.Amount, Description: e.Description, At: e.CreatedAt})
	}
	return data
}

func statsPanel(st model.State) views.StatsPanelData {
	data := views.StatsPanelData{
		TotalPoints:    st.Stats.TotalPoints,
		GoalsCompleted: st.Stats.GoalsCompleted,
		RestDay:        st.Stats.RestDay,
		ExpPerLevel:    model.ExpPerLevel,
	}
	for _, c := range model.Categories() {
		cs := st.Stats.Category(c)
		data.Categories = append(data.Categories, views.CategoryRowData{Name: string(c), Level: cs.Level, Exp: cs.Exp})
	}
	return data
}
