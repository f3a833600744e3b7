package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/notify"
	"github.com/lazybuster/lazybuster/internal/scheduler"
)

func (m Model) onReminderDue(r scheduler.Reminder) (tea.Model, tea.Cmd) {
	task, ok := m.tasks.Get(r.TaskID)
	if !ok || task.Completed {
		return m, m.rearmReminderWait()
	}

	m.Status = StatusBar{Text: fmt.Sprintf("due today: %s", r.Title)}
	if m.Settings.NotificationsEnabled {
		if err := m.notifier.Send(notify.Notification{
			Title: "Task due",
			Body:  r.Title,
			Level: "info",
		}); err != nil {
			m.log.Error().Err(err).Msg("send due notification")
		}
	}
	return m, m.rearmReminderWait()
}

func (m Model) rearmReminderWait() tea.Cmd {
	if m.sched == nil {
		return nil
	}
	return waitForReminderCmd(m.sched.C())
}

func waitForReminderCmd(ch <-chan scheduler.Reminder) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Reminder: r}
	}
}
