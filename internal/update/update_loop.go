package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.sched != nil {
		return waitForReminderCmd(m.sched.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			m.syncSelection()
			return m, nil
		case m.Keys.Timer:
			m.CurrentView = ViewTimer
			return m, nil
		case m.Keys.Insights:
			m.CurrentView = ViewInsights
			return m, nil
		case m.Keys.Journal:
			m.CurrentView = ViewJournal
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "x":
			if m.realityCheckVisible(m.now()) {
				return m.Update(DismissRealityCheckMsg{})
			}
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewTimer:
			return m.handleTimerKey(typed)
		case ViewInsights:
			return m.handleInsightsKey(typed)
		case ViewSettings:
			return m.handleSettingsKey(typed)
		}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewTasks {
				m.syncSelection()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case ReminderDueMsg:
		return m.onReminderDue(typed.Reminder)
	case DismissRealityCheckMsg:
		m.dismissRealityCheck()
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
	case ViewTimer:
		leftPane = m.renderTimerView()
	case ViewInsights:
		leftPane = m.renderInsightsView()
	case ViewJournal:
		leftPane = m.renderJournalView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}
	rightPane := m.renderCommandPalette() + m.renderHelpIfVisible()
	if m.CurrentView == ViewTasks {
		rightPane = m.renderTaskDetail() + "\n" + rightPane
	}

	notification := ""
	if m.realityCheckVisible(m.now()) {
		check := m.tasks.Check()
		notification = views.RenderRealityCheck(string(check.Severity), check.Message)
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("lazybuster | view: %s | streak: %d", m.CurrentView, m.tasks.StreakCount()),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  notification,
		Footer: fmt.Sprintf("keys: %s tasks | %s timer | %s insights | %s journal | %s settings | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Timer, m.Keys.Insights, m.Keys.Journal, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewTimer, ViewInsights, ViewJournal, ViewSettings:
		return true
	default:
		return false
	}
}
