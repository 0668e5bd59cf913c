package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/enjaz/internal/commands"
	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/planner"
	"github.com/sandeepkv93/enjaz/internal/scheduler"
	"github.com/sandeepkv93/enjaz/internal/tracker"
	"github.com/sandeepkv93/enjaz/internal/views"
)

func (m Model) Init() tea.Cmd {
	reconcile := func() tea.Msg { return ReconcileMsg{} }
	if m.scheduler != nil {
		return tea.Batch(waitForEventCmd(m.scheduler.C()), reconcile)
	}
	return reconcile
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handlePaletteKey(typed)
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SwitchTabMsg:
		if isKnownTab(typed.Tab) {
			m.CurrentTab = typed.Tab
		}
		return m, nil
	case SetStatusMsg:
		m.setStatus(typed.Text, typed.IsError)
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.setStatus(describeError(typed.Err), true)
		}
		return m, nil
	case ReconcileMsg:
		cmd := m.reconcile()
		m.scheduleDayBoundary()
		return m, cmd
	case SchedulerEventMsg:
		var cmd tea.Cmd
		switch typed.Event.Kind {
		case scheduler.KindDayBoundary:
			cmd = m.reconcile()
			m.scheduleDayBoundary()
		case scheduler.KindStatusExpiry:
			if typed.Event.Key == statusEventKey {
				m.Status = StatusBar{}
			}
		}
		if m.scheduler != nil {
			return m, tea.Batch(cmd, waitForEventCmd(m.scheduler.C()))
		}
		return m, cmd
	case planResultMsg:
		m.finish(requestPlan)
		m.applyPlan(typed)
		return m, nil
	case rewardAddedMsg:
		m.finish(requestReward)
		if typed.err != nil {
			m.LastError = typed.err
			m.setStatus(describeError(typed.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("added reward %s for %d points", typed.reward.Title, typed.reward.Cost), false)
		return m, nil
	case adviceMsg:
		m.finish(requestAdvice)
		m.applyAdvice(typed)
		return m, nil
	case categorizedMsg:
		m.finish(requestCategorize)
		if err := m.tracker.ApplyCategory(typed.goalID, typed.category); err != nil && !errors.Is(err, tracker.ErrGoalNotFound) {
			m.log.Warn("apply category", "goal", typed.goalID, "error", err)
		}
		return m, nil
	case suggestionsMsg:
		m.finish(requestSuggest)
		if typed.added > 0 {
			m.setStatus(fmt.Sprintf("added %d suggested daily task(s)", typed.added), false)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) applyPlan(res planResultMsg) {
	if res.err != nil {
		m.LastError = res.err
		m.setStatus(describeError(res.err), true)
		return
	}
	n := m.tracker.InsertPlan(res.plan)
	text := fmt.Sprintf("planned %s: %d goal(s) in %s", res.plan.Goal, n, res.plan.Breakdown.Category)
	if res.plan.Degraded {
		text += " (offline plan)"
	}
	m.setStatus(text, false)
}

func (m *Model) applyAdvice(res adviceMsg) {
	if res.day != m.tracker.Snapshot().LastReset {
		m.log.Debug("dropping advice from a previous day", "day", res.day)
		return
	}
	switch {
	case errors.Is(res.err, tracker.ErrNoExpenses):
		m.setStatus("record an expense before asking for advice", true)
	case errors.Is(res.err, planner.ErrUnavailable):
		m.setStatus("budget advice needs an assistant API key", true)
	case res.err != nil:
		m.LastError = res.err
		m.setStatus(describeError(res.err), true)
	default:
		m.Advice = res.advice
		m.setStatus("budget advice ready", false)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		m.openPalette("")
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Goals:
		m.CurrentTab = TabGoals
		return m, nil
	case m.Keys.Shop:
		m.CurrentTab = TabShop
		return m, nil
	case m.Keys.Budget:
		m.CurrentTab = TabBudget
		return m, nil
	case m.Keys.Stats:
		m.CurrentTab = TabStats
		return m, nil
	case "tab":
		m.CurrentTab = nextTab(m.CurrentTab, 1)
		return m, nil
	case "shift+tab":
		m.CurrentTab = nextTab(m.CurrentTab, -1)
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "a":
		m.openPalette("add ")
		return m, nil
	case "p":
		m.openPalette("plan ")
		return m, nil
	}

	switch m.CurrentTab {
	case TabGoals:
		return m.handleGoalsKey(msg)
	case TabShop:
		return m.handleShopKey(msg)
	case TabBudget:
		return m.handleBudgetKey(msg)
	}
	return m, nil
}

func (m Model) handleGoalsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.selectedID(TabGoals, m.tracker.Snapshot())
	if id == "" {
		return m, nil
	}
	var (
		res commands.Result
		err error
	)
	switch msg.String() {
	case "enter", " ":
		res, err = m.toggleGoal(id)
	case "x":
		res, err = m.deleteGoal(id, false)
	case "X":
		res, err = m.deleteGoal(id, true)
	default:
		return m, nil
	}
	m.report(res, err)
	m.moveCursor(0)
	return m, nil
}

func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "r" {
		m.openPalette("reward ")
		return m, nil
	}
	id := m.selectedID(TabShop, m.tracker.Snapshot())
	if id == "" {
		return m, nil
	}
	var (
		res commands.Result
		err error
	)
	switch msg.String() {
	case "enter", " ":
		res, err = m.buyReward(id)
	case "x":
		res, err = m.removeReward(id)
	default:
		return m, nil
	}
	m.report(res, err)
	m.moveCursor(0)
	return m, nil
}

func (m Model) handleBudgetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.openPalette("spend ")
		return m, nil
	case "A":
		cmd, err := m.startAdvice()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus("asking for budget advice", false)
		return m, cmd
	case "x":
		id := m.selectedID(TabBudget, m.tracker.Snapshot())
		if id == "" {
			return m, nil
		}
		res, err := m.refundExpense(id)
		m.report(res, err)
		m.moveCursor(0)
	}
	return m, nil
}

func (m *Model) report(res commands.Result, err error) {
	if err != nil {
		m.LastError = err
		m.setStatus(describeError(err), true)
		return
	}
	m.setStatus(res.Message, false)
}

func (m Model) View() string {
	st := m.tracker.Snapshot()

	main := ""
	switch m.CurrentTab {
	case TabGoals:
		main = views.RenderGoalsPanel(goalsPanel(st, m.selectedID(TabGoals, st)))
	case TabShop:
		main = views.RenderShopPanel(shopPanel(st, m.selectedID(TabShop, st)))
	case TabBudget:
		main = views.RenderBudgetPanel(budgetPanel(st, m.selectedID(TabBudget, st)))
	case TabStats:
		main = views.RenderStatsPanel(statsPanel(st))
	}

	var side []string
	if m.Palette.Active {
		side = append(side, views.RenderCommandPalette(true, m.commandInput.View()))
	}
	if m.CurrentTab == TabBudget && m.Advice != "" {
		side = append(side, views.RenderAdvicePanel(m.Advice))
	}
	if m.HelpVisible {
		side = append(side, m.renderHelpView())
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	var notes []string
	if pending := views.RenderPending(m.spinner.View(), m.Pending()); pending != "" {
		notes = append(notes, pending)
	}
	if err := m.tracker.SaveErr(); err != nil {
		notes = append(notes, views.RenderNotification("error", "state not saved: "+err.Error()))
	}

	return views.RenderApp(views.AppData{
		Header:       m.header(st),
		Tabs:         tabLabels(),
		ActiveTab:    string(m.CurrentTab),
		MainPane:     main,
		SidePane:     strings.Join(side, "\n\n"),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: strings.Join(notes, "\n"),
		Footer:       fmt.Sprintf("keys: 1-4 tabs | j/k move | enter act | %s cmd | %s help | %s quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) header(st model.State) string {
	mode := "day " + st.LastReset
	if st.Stats.RestDay {
		mode = "rest day"
	}
	return fmt.Sprintf("enjaz | %d pts | %d completed | %s", st.Stats.TotalPoints, st.Stats.GoalsCompleted, mode)
}

func isKnownTab(t Tab) bool {
	for _, known := range Tabs() {
		if t == known {
			return true
		}
	}
	return false
}

func nextTab(cur Tab, delta int) Tab {
	tabs := Tabs()
	for i, t := range tabs {
		if t == cur {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return TabGoals
}

func tabLabels() []string {
	out := make([]string, 0, len(Tabs()))
	for _, t := range Tabs() {
		out = append(out, string(t))
	}
	return out
}
