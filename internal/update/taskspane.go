package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/scheduler"
	"github.com/lazybuster/lazybuster/internal/views"
)

// Reminders fire at 09:00 local time on the due date.
const reminderHour = 9

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.tasks.Tasks()
	switch msg.String() {
	case "j":
		if m.TaskCursor < len(items)-1 {
			m.TaskCursor++
		}
		m.syncSelection()
	case "k":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
		m.syncSelection()
	case "enter", " ":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if task.Completed {
			m.Status = StatusBar{Text: "already completed"}
			return m, nil
		}
		sibling, spawned := m.tasks.Complete(m.ctx, task.ID)
		if m.sched != nil {
			m.sched.Cancel(task.ID)
		}
		if spawned {
			m.scheduleReminder(sibling)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title)}
		m.syncSelection()
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.tasks.Delete(m.ctx, task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title)}
		m.syncSelection()
	case "t":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.engine.SetCurrentTask(task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("tracking: %s", task.Title)}
	}
	return m, nil
}

func (m *Model) syncSelection() {
	items := m.tasks.Tasks()
	if len(items) == 0 {
		m.TaskCursor = 0
		m.SelectedTaskID = ""
		return
	}
	if m.TaskCursor >= len(items) {
		m.TaskCursor = len(items) - 1
	}
	if m.TaskCursor < 0 {
		m.TaskCursor = 0
	}
	m.SelectedTaskID = items[m.TaskCursor].ID
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.SelectedTaskID == "" {
		return model.Task{}, false
	}
	return m.tasks.Get(m.SelectedTaskID)
}

// findTask resolves a task by id prefix, falling back to a case-insensitive
// title substring match.
func (m Model) findTask(target string) (model.Task, bool) {
	target = strings.TrimSpace(target)
	if target == "" {
		return model.Task{}, false
	}
	for _, task := range m.tasks.Tasks() {
		if strings.HasPrefix(task.ID, target) {
			return task, true
		}
	}
	lowered := strings.ToLower(target)
	for _, task := range m.tasks.Tasks() {
		if strings.Contains(strings.ToLower(task.Title), lowered) {
			return task, true
		}
	}
	return model.Task{}, false
}

// ReminderFor builds the due-date reminder for a task, when one applies.
// Completed tasks and due dates whose reminder instant already passed get none.
func ReminderFor(task model.Task, now time.Time) (scheduler.Reminder, bool) {
	if task.Completed || task.DueDate == nil {
		return scheduler.Reminder{}, false
	}
	trigger := model.DayStart(*task.DueDate).Add(reminderHour * time.Hour)
	if !trigger.After(now) {
		return scheduler.Reminder{}, false
	}
	return scheduler.Reminder{TaskID: task.ID, Title: task.Title, TriggerAt: trigger}, true
}

func (m Model) scheduleReminder(task model.Task) {
	if m.sched == nil {
		return
	}
	reminder, ok := ReminderFor(task, m.now())
	if !ok {
		return
	}
	if err := m.sched.Schedule(reminder); err != nil {
		m.log.Error().Err(err).Str("task", task.ID).Msg("schedule reminder")
	}
}

func (m Model) renderTasksView() string {
	tasksList := m.tasks.Tasks()
	items := make([]views.TaskItemData, 0, len(tasksList))
	for _, task := range tasksList {
		item := views.TaskItemData{
			ID:        task.ID,
			Title:     task.Title,
			Priority:  string(task.Priority),
			Category:  task.Category,
			Completed: task.Completed,
			TimeSpent: task.TimeSpent,
		}
		if task.DueDate != nil {
			item.DueAt = task.DueDate.Format("2006-01-02")
		}
		if task.IsRecurring {
			item.Recurring = string(task.RecurringType)
		}
		items = append(items, item)
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Items:      items,
		SelectedID: m.SelectedTaskID,
		Streak:     m.tasks.StreakCount(),
		DoneToday:  len(m.tasks.CompletedToday()),
	})
}

func (m Model) renderTaskDetail() string {
	task, ok := m.selectedTask()
	if !ok {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", task.ID))
	b.WriteString(fmt.Sprintf("priority: %s | category: %s\n", task.Priority, task.Category))
	b.WriteString(fmt.Sprintf("created: %s\n", task.CreatedAt.Format("2006-01-02")))
	if task.TimeSpent > 0 {
		b.WriteString(fmt.Sprintf("time spent: %dm\n", task.TimeSpent))
	}
	if task.Description != "" {
		b.WriteString("\n" + views.RenderMarkdown(task.Description))
	}
	return strings.TrimSpace(b.String())
}
