// Package views renders plain data into terminal panels. It knows nothing
// about the tracker; the update package converts state into the *Data types.
package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Tabs         []string
	ActiveTab    string
	MainPane     string
	SidePane     string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const (
	mainWidth = 64
	sideWidth = 44
)

func RenderApp(data AppData) string {
	main := panelStyle.Width(mainWidth).Render(data.MainPane)
	row := main
	if strings.TrimSpace(data.SidePane) != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Top, main, panelStyle.Width(sideWidth).Render(data.SidePane))
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if len(data.Tabs) > 0 {
		lines = append(lines, RenderTabs(data.Tabs, data.ActiveTab))
	}
	lines = append(lines, row, status)
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderTabs draws the tab strip with active highlighted.
func RenderTabs(tabs []string, active string) string {
	cells := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := strings.ToLower(t)
		label = string(rune('1'+i)) + " " + label
		if strings.EqualFold(t, active) {
			cells = append(cells, activeTabStyle.Render(label))
			continue
		}
		cells = append(cells, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderMarkdown renders md for the terminal, returning md unchanged when
// glamour cannot.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
