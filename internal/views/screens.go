package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/shopspring/decimal"
)

type GoalRowData struct {
	ID          string
	Title       string
	TimeFrame   string
	Category    string
	Points      int
	Completed   bool
	AIGenerated bool
	Fixed       bool
	Nested      bool
}

type GoalsPanelData struct {
	Rows       []GoalRowData
	SelectedID string
	RestDay    bool
}

type RewardRowData struct {
	ID     string
	Title  string
	Cost   int
	Icon   string
	Custom bool
}

type ShopPanelData struct {
	Points     int
	RestDay    bool
	Rewards    []RewardRowData
	SelectedID string
}

type ExpenseRowData struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	At          time.Time
}

type BudgetPanelData struct {
	DailyLimit     decimal.Decimal
	RemainingToday decimal.Decimal
	Rollover       decimal.Decimal
	MonthlyLimit   decimal.Decimal
	RemainingMonth decimal.Decimal
	Expenses       []ExpenseRowData
	SelectedID     string
}

type CategoryRowData struct {
	Name  string
	Level int
	Exp   int
}

type StatsPanelData struct {
	TotalPoints    int
	GoalsCompleted int
	RestDay        bool
	ExpPerLevel    int
	Categories     []CategoryRowData
}

type HelpPanelData struct {
	CurrentTab string
	Bindings   []string
	HelpView   string
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	if data.RestDay {
		b.WriteString(warnStyle.Render("rest day: daily tasks are postponed"))
		b.WriteString("\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no goals) use /add or /plan\n")
	}
	section := ""
	for _, row := range data.Rows {
		if row.TimeFrame != section {
			section = row.TimeFrame
			b.WriteString(fmt.Sprintf("\n%s\n", strings.ToUpper(section)))
		}
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		title := row.Title
		if row.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		indent := ""
		if row.Nested {
			indent = "  "
		}
		var marks []string
		if row.Fixed {
			marks = append(marks, "fixed")
		}
		if row.AIGenerated {
			marks = append(marks, "ai")
		}
		suffix := ""
		if len(marks) > 0 {
			suffix = " (" + strings.Join(marks, ",") + ")"
		}
		b.WriteString(fmt.Sprintf("%s %s%s %s +%d [%s] #%s%s\n", cursor, indent, check, title, row.Points, row.Category, row.ID, suffix))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderShopPanel(data ShopPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("shop: %d points available\n", data.Points))
	if data.RestDay {
		b.WriteString("rest day active\n")
	}
	for _, r := range data.Rewards {
		cursor := " "
		if r.ID == data.SelectedID {
			cursor = ">"
		}
		price := fmt.Sprintf("%d pts", r.Cost)
		if r.Cost > data.Points {
			price = warnStyle.Render(price)
		}
		kind := "built-in"
		if r.Custom {
			kind = "custom"
		}
		b.WriteString(fmt.Sprintf("%s %-8s %s  %s  <%s> #%s\n", cursor, r.Icon, r.Title, price, kind, r.ID))
	}
	b.WriteString("actions: enter=buy x=delete custom /reward <title>=add")
	return b.String()
}

func RenderBudgetPanel(data BudgetPanelData) string {
	var b strings.Builder
	b.WriteString("budget:\n")
	today := data.RemainingToday.StringFixed(2)
	if data.RemainingToday.IsNegative() {
		today = errorStyle.Render(today + " (over)")
	}
	b.WriteString(fmt.Sprintf("today: %s left of %s", today, data.DailyLimit.StringFixed(2)))
	if data.Rollover.IsPositive() {
		b.WriteString(fmt.Sprintf(" (+%s carried)", data.Rollover.StringFixed(2)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("month: %s left of %s\n", data.RemainingMonth.StringFixed(2), data.MonthlyLimit.StringFixed(2)))
	b.WriteString("\nexpenses today:\n")
	if len(data.Expenses) == 0 {
		b.WriteString("(none) use /spend <amount> [description]\n")
	}
	for _, e := range data.Expenses {
		cursor := " "
		if e.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %8s  %s #%s\n", cursor, e.At.Local().Format("15:04"), e.Amount.StringFixed(2), e.Description, e.ID))
	}
	b.WriteString("actions: x=refund selected /advise=ask for advice")
	return b.String()
}

func RenderStatsPanel(data StatsPanelData) string {
	per := data.ExpPerLevel
	if per <= 0 {
		per = 100
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())

	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("points: %d\ncompleted: %d\n", data.TotalPoints, data.GoalsCompleted))
	if data.RestDay {
		b.WriteString("rest day: yes\n")
	}
	b.WriteString("\n")
	for _, c := range data.Categories {
		pct := float64(c.Exp) / float64(per)
		b.WriteString(fmt.Sprintf("%-9s lvl %-3d %s %d/%d\n", c.Name, c.Level, bar.ViewAs(pct), c.Exp, per))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderAdvicePanel shows assistant budget advice rendered as markdown.
func RenderAdvicePanel(advice string) string {
	if strings.TrimSpace(advice) == "" {
		return ""
	}
	return "advice:\n" + RenderMarkdown(advice)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

// RenderPending lists in-flight assistant requests next to the spinner frame.
func RenderPending(spin string, labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("%s waiting on: %s", spin, strings.Join(labels, ", "))
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.CurrentTab),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
