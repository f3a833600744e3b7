package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Title     string
	Priority  string
	Category  string
	DueAt     string
	Recurring string
	Completed bool
	TimeSpent int
}

type TasksPanelData struct {
	Items      []TaskItemData
	SelectedID string
	Streak     int
	DoneToday  int
}

type TimerPanelData struct {
	TypeLabel    string
	Timer        string
	ProgressView string
	ProgressPct  int
	Running      bool
	Sessions     int
	TaskTitle    string
	AutoBreaks   bool
}

type InsightsPanelData struct {
	ProductivityScore float64
	FocusScore        int
	CompletedWeek     int
	CompletedMonth    int
	WeekRate          float64
	MonthRate         float64
	OnTimeRate        float64
	Streak            int
	TotalFocusTime    int
	TodayFocusTime    int
	Sessions          int
	AveragePerDay     int
	ChartDays         int
	Chart             []ChartBarData
	Recommendations   []string
}

type ChartBarData struct {
	Label     string
	Completed int
	Focus     int
}

type JournalEntryData struct {
	When   string
	Mood   string
	Text   string
	Prompt string
}

type JournalPanelData struct {
	Prompt     string
	Entries    []JournalEntryData
	TodayCount int
}

type SettingsPanelData struct {
	Notifications bool
	Sound         bool
	AutoBreaks    bool
	RealityCheck  string
	DarkMode      bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("streak: %d day(s) | done today: %d\n", data.Streak, data.DoneToday))
	b.WriteString("actions: [j/k]move [enter]done [d]delete [t]track\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, mark, priorityBadge(item.Priority), item.Title))
		if item.DueAt != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.DueAt))
		}
		if item.Recurring != "" {
			b.WriteString(fmt.Sprintf(" every:%s", item.Recurring))
		}
		if item.TimeSpent > 0 {
			b.WriteString(fmt.Sprintf(" %dm", item.TimeSpent))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString("timer:\n")
	b.WriteString(fmt.Sprintf("mode: %s\n", data.TypeLabel))
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("remaining: %s (%s)\n", data.Timer, state))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions today: %d\n", data.Sessions))
	if data.AutoBreaks {
		b.WriteString("auto-start breaks: on\n")
	}
	b.WriteString("actions: [space]start/pause [r]reset [s]skip [p/o/l]mode")
	return strings.TrimSpace(b.String())
}

func RenderInsightsPanel(data InsightsPanelData) string {
	var b strings.Builder
	b.WriteString("insights:\n")
	b.WriteString(fmt.Sprintf("productivity score: %.0f/100 | focus score: %d/100\n", data.ProductivityScore, data.FocusScore))
	b.WriteString(fmt.Sprintf("completed: %d this week (%.0f%%) | %d this month (%.0f%%)\n",
		data.CompletedWeek, data.WeekRate, data.CompletedMonth, data.MonthRate))
	b.WriteString(fmt.Sprintf("on-time: %.0f%% | streak: %d day(s)\n", data.OnTimeRate, data.Streak))
	b.WriteString(fmt.Sprintf("focus: %dm total | %dm today | %d sessions | %dm/day avg\n",
		data.TotalFocusTime, data.TodayFocusTime, data.Sessions, data.AveragePerDay))
	if len(data.Chart) > 0 {
		b.WriteString(fmt.Sprintf("\nlast %d days ([w]window):\n", data.ChartDays))
		for _, bar := range data.Chart {
			b.WriteString(fmt.Sprintf("%s %s %s\n", bar.Label, barGraph(bar.Completed, "#"), barGraph(bar.Focus/15, "=")))
		}
	}
	if len(data.Recommendations) > 0 {
		b.WriteString("\nrecommendations:\n")
		for _, rec := range data.Recommendations {
			b.WriteString("- " + rec + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderJournalPanel(data JournalPanelData) string {
	var b strings.Builder
	b.WriteString("journal:\n")
	b.WriteString(fmt.Sprintf("prompt: %s\n", data.Prompt))
	b.WriteString("actions: [/]note <text> mood:<mood>\n")
	if len(data.Entries) == 0 {
		b.WriteString("(no entries yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("written today: %d\n", data.TodayCount))
	for _, entry := range data.Entries {
		mood := ""
		if entry.Mood != "" {
			mood = fmt.Sprintf(" [%s]", entry.Mood)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", entry.When, mood, entry.Text))
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("notifications: %s\n", onOff(data.Notifications)))
	b.WriteString(fmt.Sprintf("sound: %s\n", onOff(data.Sound)))
	b.WriteString(fmt.Sprintf("auto-start breaks: %s\n", onOff(data.AutoBreaks)))
	b.WriteString(fmt.Sprintf("reality checks: %s\n", data.RealityCheck))
	b.WriteString(fmt.Sprintf("dark mode: %s\n", onOff(data.DarkMode)))
	b.WriteString("keys: [n]notifications [s]sound [b]auto-breaks [m]dark [f]reality-check [ctrl+x]reset all")
	return strings.TrimSpace(b.String())
}

func RenderRealityCheck(severity, message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	return fmt.Sprintf("reality-check [%s]: %s (press x to dismiss)", strings.ToUpper(severity), message)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func priorityBadge(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "[RED]"
	case "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}

func barGraph(n int, ch string) string {
	if n < 0 {
		n = 0
	}
	if n > 20 {
		n = 20
	}
	return strings.Repeat(ch, n)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
