package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/enjaz/internal/commands"
	"github.com/sandeepkv93/enjaz/internal/model"
	"github.com/sandeepkv93/enjaz/internal/tracker"
)

func (m *Model) openPalette(prefill string) {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

// executePaletteCommand runs the palette input. Commands that need the
// assistant return immediately and finish through a follow-up tea.Cmd.
func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.LastError = err
		m.setStatus(err.Error(), true)
		return m, nil
	}

	var follow []tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			g, err := m.tracker.AddGoal(a.Title, a.TimeFrame)
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentTab = TabGoals
			follow = append(follow, m.begin(requestCategorize), m.categorizeCmd(g.ID, g.Title))
			return commands.Result{Message: fmt.Sprintf("added %s goal: %s (+%d)", g.TimeFrame, g.Title, g.Points)}, nil
		},
		Plan: func(a commands.PlanArgs) (commands.Result, error) {
			if m.pending[requestPlan] > 0 {
				return commands.Result{}, errors.New("a plan is already being generated")
			}
			m.CurrentTab = TabGoals
			follow = append(follow, m.begin(requestPlan), m.breakdownCmd(a.Goal))
			return commands.Result{Message: fmt.Sprintf("planning: %s", a.Goal)}, nil
		},
		Toggle: func(a commands.TargetArgs) (commands.Result, error) {
			return m.toggleGoal(a.ID)
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			return m.deleteGoal(a.GoalID, a.Cascade)
		},
		Buy: func(a commands.TargetArgs) (commands.Result, error) {
			return m.buyReward(a.ID)
		},
		Reward: func(a commands.RewardArgs) (commands.Result, error) {
			if m.pending[requestReward] > 0 {
				return commands.Result{}, errors.New("a reward is already being priced")
			}
			m.CurrentTab = TabShop
			follow = append(follow, m.begin(requestReward), m.rewardCmd(a.Title))
			return commands.Result{Message: fmt.Sprintf("pricing reward: %s", a.Title)}, nil
		},
		RemoveReward: func(a commands.TargetArgs) (commands.Result, error) {
			return m.removeReward(a.ID)
		},
		Spend: func(a commands.SpendArgs) (commands.Result, error) {
			e, err := m.tracker.AddExpense(a.Amount, a.Description)
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentTab = TabBudget
			left := m.tracker.Snapshot().Budget.RemainingToday()
			return commands.Result{Message: fmt.Sprintf("spent %s on %s, %s left today", e.Amount.StringFixed(2), e.Description, left.StringFixed(2))}, nil
		},
		Refund: func(a commands.TargetArgs) (commands.Result, error) {
			return m.refundExpense(a.ID)
		},
		Advise: func() (commands.Result, error) {
			cmd, err := m.startAdvice()
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentTab = TabBudget
			follow = append(follow, cmd)
			return commands.Result{Message: "asking for budget advice"}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.setStatus(describeError(err), true)
		return m, nil
	}
	m.setStatus(res.Message, false)
	return m, tea.Batch(follow...)
}

// startAdvice marks an advice request in flight, refusing a second one.
func (m *Model) startAdvice() (tea.Cmd, error) {
	if m.pending[requestAdvice] > 0 {
		return nil, errors.New("budget advice is already being prepared")
	}
	return tea.Batch(m.begin(requestAdvice), m.adviceCmd()), nil
}

func (m *Model) toggleGoal(id string) (commands.Result, error) {
	g, err := m.tracker.ToggleGoal(id)
	if err != nil {
		return commands.Result{}, err
	}
	if g.Completed {
		return commands.Result{Message: fmt.Sprintf("completed %s (+%d %s)", g.Title, g.Points, g.Category)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("reopened %s (-%d)", g.Title, g.Points)}, nil
}

func (m *Model) deleteGoal(id string, cascade bool) (commands.Result, error) {
	n, err := m.tracker.DeleteGoal(id, cascade)
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("deleted %d goal(s)", n)}, nil
}

func (m *Model) buyReward(id string) (commands.Result, error) {
	r, err := m.tracker.PurchaseReward(id)
	if err != nil {
		return commands.Result{}, err
	}
	msg := fmt.Sprintf("redeemed %s for %d points", r.Title, r.Cost)
	if r.Effect == model.EffectRestDay {
		msg += ", enjoy the rest day"
	}
	return commands.Result{Message: msg}, nil
}

func (m *Model) removeReward(id string) (commands.Result, error) {
	if err := m.tracker.DeleteReward(id); err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("removed reward %s", id)}, nil
}

func (m *Model) refundExpense(id string) (commands.Result, error) {
	if err := m.tracker.RemoveExpense(id); err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: fmt.Sprintf("removed expense %s", id)}, nil
}

// describeError shortens tracker sentinels for the status line.
func describeError(err error) string {
	switch {
	case errors.Is(err, tracker.ErrInsufficientPoints):
		return "not enough points: " + err.Error()
	case errors.Is(err, tracker.ErrFixedGoal):
		return "fixed daily tasks cannot be deleted"
	case errors.Is(err, tracker.ErrBuiltinReward):
		return "built-in rewards cannot be deleted"
	default:
		return err.Error()
	}
}
