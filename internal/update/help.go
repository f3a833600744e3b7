package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/lazybuster/lazybuster/internal/views"
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

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Timer, Action: "switch to Timer"},
		{Key: m.Keys.Insights, Action: "switch to Insights"},
		{Key: m.Keys.Journal, Action: "switch to Journal"},
		{Key: m.Keys.Settings, Action: "switch to Settings"},
		{Key: "/", Action: "open command palette"},
		{Key: "x", Action: "dismiss reality check"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "complete task"},
			{Key: "d", Action: "delete task"},
			{Key: "t", Action: "track task in timer"},
		}
	case ViewTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "s", Action: "skip to next phase"},
			{Key: "p/o/l", Action: "pomodoro / short break / long break"},
		}
	case ViewInsights:
		return []KeyBinding{
			{Key: "w", Action: "cycle chart window (7/30/90 days)"},
		}
	case ViewJournal:
		return []KeyBinding{
			{Key: "/note", Action: "write an entry (mood:<mood> optional)"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "n/s/b/m", Action: "toggle notifications / sound / auto-breaks / dark mode"},
			{Key: "f", Action: "cycle reality check frequency"},
			{Key: "ctrl+x", Action: "erase all saved data"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
