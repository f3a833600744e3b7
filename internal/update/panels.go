package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazybuster/lazybuster/internal/insights"
	"github.com/lazybuster/lazybuster/internal/journal"
	"github.com/lazybuster/lazybuster/internal/views"
)

func (m Model) handleInsightsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "w":
		m.chartDays = nextChartWindow(m.chartDays)
		m.Status = StatusBar{Text: fmt.Sprintf("chart window: %d days", m.chartDays)}
	}
	return m, nil
}

func nextChartWindow(days int) int {
	switch days {
	case 7:
		return 30
	case 30:
		return 90
	default:
		return 7
	}
}

func (m Model) renderInsightsView() string {
	taskList := m.tasks.Tasks()
	now := m.now()
	taskReport := insights.TaskReport(taskList, m.tasks.StreakCount(), now)
	focusReport := insights.FocusReport(m.engine.FocusStats())

	series := insights.ChartSeries(taskList, m.engine.History(), m.chartDays, now)
	chart := make([]views.ChartBarData, 0, len(series))
	for _, point := range series {
		chart = append(chart, views.ChartBarData{
			Label:     point.Date.Format("01-02"),
			Completed: point.Completed,
			Focus:     point.FocusMinutes,
		})
	}

	return views.RenderInsightsPanel(views.InsightsPanelData{
		ProductivityScore: taskReport.ProductivityScore,
		FocusScore:        focusReport.FocusScore,
		CompletedWeek:     taskReport.CompletedWeek,
		CompletedMonth:    taskReport.CompletedMonth,
		WeekRate:          taskReport.CompletionRateWeek,
		MonthRate:         taskReport.CompletionRateMonth,
		OnTimeRate:        taskReport.OnTimeRate,
		Streak:            taskReport.Streak,
		TotalFocusTime:    focusReport.TotalFocusTime,
		TodayFocusTime:    focusReport.TodayFocusTime,
		Sessions:          focusReport.CompletedSessions,
		AveragePerDay:     focusReport.AveragePerDay,
		ChartDays:         m.chartDays,
		Chart:             chart,
		Recommendations:   insights.Recommendations(taskReport, focusReport),
	})
}

func (m Model) renderJournalView() string {
	now := m.now()
	recent := m.journal.Recent(5)
	entries := make([]views.JournalEntryData, 0, len(recent))
	for _, entry := range recent {
		entries = append(entries, views.JournalEntryData{
			When:   entry.CreatedAt.Format("01-02 15:04"),
			Mood:   entry.Mood,
			Text:   entry.Text,
			Prompt: entry.Prompt,
		})
	}
	return views.RenderJournalPanel(views.JournalPanelData{
		Prompt:     journal.PromptFor(now),
		Entries:    entries,
		TodayCount: len(m.journal.EntriesOn(now)),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

