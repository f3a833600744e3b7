package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/views"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.engine.Running() {
			m.engine.Pause(m.ctx)
			m.Status = StatusBar{Text: "timer paused"}
			return m, nil
		}
		return m.startTimer()
	case "r":
		m.engine.Reset()
		m.Status = StatusBar{Text: "timer reset"}
	case "s":
		m.engine.Skip()
		m.Status = StatusBar{Text: fmt.Sprintf("skipped to %s", timerLabel(m.engine.Type()))}
	case "p":
		m.engine.SwitchType(m.ctx, model.TimerPomodoro)
		m.Status = StatusBar{Text: "mode: pomodoro"}
	case "o":
		m.engine.SwitchType(m.ctx, model.TimerShortBreak)
		m.Status = StatusBar{Text: "mode: short break"}
	case "l":
		m.engine.SwitchType(m.ctx, model.TimerLongBreak)
		m.Status = StatusBar{Text: "mode: long break"}
	}
	return m, nil
}

// startTimer arms at most one tick chain regardless of how often it is called.
func (m Model) startTimer() (tea.Model, tea.Cmd) {
	m.engine.Start()
	m.Status = StatusBar{Text: fmt.Sprintf("%s running", timerLabel(m.engine.Type()))}
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, focusTickCmd()
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if m.engine == nil || !m.engine.Running() {
		m.ticking = false
		return m, nil
	}
	if finished := m.engine.Tick(m.ctx); finished {
		m.Status = StatusBar{Text: fmt.Sprintf("session finished, next up: %s", timerLabel(m.engine.Type()))}
	}
	if m.engine.Running() {
		m.ticking = true
		return m, focusTickCmd()
	}
	m.ticking = false
	return m, nil
}

func (m Model) renderTimerView() string {
	remaining := m.engine.Remaining()
	settings := m.engine.Settings()
	total := 0
	if minutes, err := settings.Minutes(m.engine.Type()); err == nil {
		total = minutes * 60
	}
	pct := 0
	progressView := ""
	if total > 0 {
		elapsed := float64(total-remaining) / float64(total)
		pct = int(elapsed * 100)
		progressView = m.timerProgress.ViewAs(elapsed)
	}

	taskTitle := ""
	if id := m.engine.CurrentTaskID(); id != "" {
		if task, ok := m.tasks.Get(id); ok {
			taskTitle = task.Title
		}
	}

	return views.RenderTimerPanel(views.TimerPanelData{
		TypeLabel:    timerLabel(m.engine.Type()),
		Timer:        formatDuration(remaining),
		ProgressView: progressView,
		ProgressPct:  pct,
		Running:      m.engine.Running(),
		Sessions:     m.engine.CompletedSessions(),
		TaskTitle:    taskTitle,
		AutoBreaks:   m.Settings.AutoStartBreaks,
	})
}

func timerLabel(t model.TimerType) string {
	switch t {
	case model.TimerShortBreak:
		return "short break"
	case model.TimerLongBreak:
		return "long break"
	default:
		return "pomodoro"
	}
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{} })
}
