package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/enjaz/internal/commands"
	"github.com/sandeepkv93/enjaz/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.tabBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	plain = append(plain, "", "commands:")
	plain = append(plain, commands.Usage()...)

	global := toKeyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentTab: string(m.CurrentTab),
		Bindings:   plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global, toKeyBindings(m.tabBindings())},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Goals, Action: "goals"},
		{Key: m.Keys.Shop, Action: "shop"},
		{Key: m.Keys.Budget, Action: "budget"},
		{Key: m.Keys.Stats, Action: "stats"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: "a", Action: "add goal"},
		{Key: "p", Action: "plan yearly goal"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) tabBindings() []KeyBinding {
	switch m.CurrentTab {
	case TabGoals:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "toggle completion"},
			{Key: "x", Action: "delete goal, keep children"},
			{Key: "X", Action: "delete goal and children"},
		}
	case TabShop:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "buy reward"},
			{Key: "r", Action: "add custom reward"},
			{Key: "x", Action: "delete custom reward"},
		}
	case TabBudget:
		return []KeyBinding{
			{Key: "s", Action: "record expense"},
			{Key: "j/k", Action: "move selection"},
			{Key: "x", Action: "remove expense"},
			{Key: "A", Action: "budget advice"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
