package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/commands"
	"github.com/lazybuster/lazybuster/internal/journal"
	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/tasks"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			value := m.commandInput.Value() + string(msg.Runes)
			if msg.Type == tea.KeySpace {
				value = m.commandInput.Value() + " "
			}
			m.commandInput.SetValue(value)
			m.Palette.Input = value
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task := m.tasks.Add(m.ctx, tasks.TaskInput{
				Title:         a.Title,
				Priority:      a.Priority,
				Category:      a.Category,
				DueDate:       a.Due,
				IsRecurring:   a.Recurring != "",
				RecurringType: a.Recurring,
			})
			m.scheduleReminder(task)
			m.syncSelection()
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Title)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			task, ok := m.findTask(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task matches: " + a.Target}
			}
			sibling, spawned := m.tasks.Complete(m.ctx, task.ID)
			if m.sched != nil {
				m.sched.Cancel(task.ID)
			}
			if spawned {
				m.scheduleReminder(sibling)
			}
			m.syncSelection()
			return commands.Result{Message: fmt.Sprintf("completed: %s", task.Title)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			task, ok := m.findTask(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task matches: " + a.Target}
			}
			m.tasks.Delete(m.ctx, task.ID)
			m.syncSelection()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Title)}, nil
		},
		Start: func(a commands.StartArgs) (commands.Result, error) {
			if a.Target != "" {
				task, ok := m.findTask(a.Target)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task matches: " + a.Target}
				}
				m.engine.SetCurrentTask(task.ID)
			}
			m.engine.Start()
			if !m.ticking {
				m.ticking = true
				followUp = focusTickCmd()
			}
			return commands.Result{Message: fmt.Sprintf("%s running", timerLabel(m.engine.Type()))}, nil
		},
		Pause: func() (commands.Result, error) {
			m.engine.Pause(m.ctx)
			return commands.Result{Message: "timer paused"}, nil
		},
		Skip: func() (commands.Result, error) {
			m.engine.Skip()
			return commands.Result{Message: fmt.Sprintf("skipped to %s", timerLabel(m.engine.Type()))}, nil
		},
		Timer: func(a commands.TimerArgs) (commands.Result, error) {
			m.engine.SwitchType(m.ctx, a.Timer)
			return commands.Result{Message: "mode: " + timerLabel(a.Timer)}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			m.engine.UpdateSettings(m.ctx, model.TimerSettings{
				Pomodoro:   a.Pomodoro,
				ShortBreak: a.ShortBreak,
				LongBreak:  a.LongBreak,
			})
			return commands.Result{Message: fmt.Sprintf("durations set: %d/%d/%d", a.Pomodoro, a.ShortBreak, a.LongBreak)}, nil
		},
		Note: func(a commands.NoteArgs) (commands.Result, error) {
			m.journal.Add(m.ctx, a.Text, journal.PromptFor(m.now()), a.Mood)
			return commands.Result{Message: "journal entry saved"}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			view, ok := viewForSubject(a.Subject)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown subject: " + a.Subject}
			}
			m.CurrentView = view
			if view == ViewTasks {
				m.syncSelection()
			}
			if a.Priority != "" {
				matched := len(m.tasks.ByPriority(a.Priority))
				return commands.Result{Message: fmt.Sprintf("show %s: %d pending %s priority", a.Subject, matched, a.Priority)}, nil
			}
			return commands.Result{Message: "show " + a.Subject}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, followUp
}

func viewForSubject(subject string) (View, bool) {
	switch subject {
	case "tasks":
		return ViewTasks, true
	case "timer", "focus":
		return ViewTimer, true
	case "insights", "stats":
		return ViewInsights, true
	case "journal":
		return ViewJournal, true
	case "settings":
		return ViewSettings, true
	default:
		return "", false
	}
}
