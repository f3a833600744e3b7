package insights

import (
	"time"

	"github.com/lazybuster/lazybuster/internal/model"
)

// ChartPoint is one calendar day in a trailing-window series.
type ChartPoint struct {
	Date         time.Time
	Completed    int
	Created      int
	FocusMinutes int
}

// ChartSeries builds per-day counts of tasks completed and created plus focus
// minutes, aligned by calendar date, oldest day first and today last. Days is
// expected to be 7, 30, or 90; anything non-positive collapses to 7.
func ChartSeries(tasks []model.Task, history []model.FocusEntry, days int, now time.Time) []ChartPoint {
	if days <= 0 {
		days = 7
	}
	today := model.DayStart(now)
	start := today.AddDate(0, 0, -(days - 1))

	points := make([]ChartPoint, days)
	index := make(map[time.Time]int, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		points[i] = ChartPoint{Date: day}
		index[day] = i
	}

	for _, task := range tasks {
		if i, ok := index[model.DayStart(task.CreatedAt)]; ok {
			points[i].Created++
		}
		if task.CompletedAt != nil {
			if i, ok := index[model.DayStart(*task.CompletedAt)]; ok {
				points[i].Completed++
			}
		}
	}
	for _, entry := range history {
		if i, ok := index[model.DayStart(entry.Date)]; ok {
			points[i].FocusMinutes += entry.Duration
		}
	}
	return points
}
