package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/enjaz/internal/scheduler"
	"github.com/sandeepkv93/enjaz/internal/tracker"
)

// Assistant calls run inside tea.Cmds so the UI stays responsive; their
// results come back as messages and are applied in Update.

func (m Model) breakdownCmd(goal string) tea.Cmd {
	p, ctx := m.planner, m.ctx
	return func() tea.Msg {
		plan, err := p.Breakdown(ctx, goal)
		return planResultMsg{plan: plan, err: err}
	}
}

func (m Model) categorizeCmd(goalID, title string) tea.Cmd {
	tr, ctx := m.tracker, m.ctx
	return func() tea.Msg {
		return categorizedMsg{goalID: goalID, category: tr.CategorizeGoal(ctx, title)}
	}
}

func (m Model) rewardCmd(title string) tea.Cmd {
	tr, ctx := m.tracker, m.ctx
	return func() tea.Msg {
		r, err := tr.AddCustomReward(ctx, title)
		return rewardAddedMsg{reward: r, err: err}
	}
}

func (m Model) adviceCmd() tea.Cmd {
	tr, ctx := m.tracker, m.ctx
	day := tr.Snapshot().LastReset
	return func() tea.Msg {
		advice, err := tr.AdviseOnBudget(ctx)
		return adviceMsg{day: day, advice: advice, err: err}
	}
}

func (m Model) suggestCmd(rec tracker.Reconciliation) tea.Cmd {
	tr, ctx := m.tracker, m.ctx
	return func() tea.Msg {
		return suggestionsMsg{day: rec.Day, added: tr.SuggestDailyTasks(ctx, rec)}
	}
}

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

// reconcile rolls state over to the current day and, when it changed,
// starts the daily suggestion request.
func (m *Model) reconcile() tea.Cmd {
	rec, changed := m.tracker.Reconcile(m.ctx, m.now())
	if !changed {
		return nil
	}
	msg := "new day: " + rec.Day
	if rec.MonthRolled {
		msg += ", monthly spending reset"
	}
	m.setStatus(msg, false)
	m.Advice = ""
	if len(rec.YearlyTitles) == 0 {
		return nil
	}
	return tea.Batch(m.begin(requestSuggest), m.suggestCmd(rec))
}

func (m *Model) scheduleDayBoundary() {
	if m.scheduler == nil {
		return
	}
	if err := m.scheduler.ScheduleDayBoundary(m.now()); err != nil {
		m.log.Warn("schedule day boundary", "error", err)
	}
}

// setStatus replaces the status line and schedules its expiry.
func (m *Model) setStatus(text string, isErr bool) {
	m.Status = StatusBar{Text: text, IsError: isErr}
	m.notify(levelFromError(isErr), text)
	if m.scheduler == nil || text == "" {
		return
	}
	ev := scheduler.Event{Key: statusEventKey, Kind: scheduler.KindStatusExpiry, At: m.now().Add(m.statusTTL)}
	if err := m.scheduler.Schedule(ev); err != nil {
		m.log.Debug("schedule status expiry", "error", err)
	}
}

func (m *Model) notify(level, body string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{Title: "enjaz", Body: body, Level: level, At: time.Now()})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
