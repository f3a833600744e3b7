// Package insights derives motivational analytics from Task Store and Timer
// Engine snapshots. Everything here is a pure computation over the inputs;
// nothing is persisted and every call recomputes from scratch.
package insights

import (
	"math"
	"time"

	"github.com/lazybuster/lazybuster/internal/model"
)

type PriorityStats struct {
	High   int
	Medium int
	Low    int
}

// TaskInsights summarizes task completion patterns over trailing windows.
type TaskInsights struct {
	CompletedWeek       int
	CompletedMonth      int
	CompletionRateWeek  float64
	CompletionRateMonth float64
	Priorities          PriorityStats // completions in the last 30 days
	WeekdayCompletion   [7]int        // Sunday .. Saturday
	AvgCompletionHours  float64       // creation to completion
	OnTimeRate          float64
	Streak              int
	ProductivityScore   float64
}

type FocusInsights struct {
	TotalFocusTime    int
	TodayFocusTime    int
	CompletedSessions int
	AveragePerDay     int
	FocusScore        int
}

// TaskReport computes the task-side insights at the given instant.
func TaskReport(tasks []model.Task, streak int, now time.Time) TaskInsights {
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var out TaskInsights
	out.Streak = streak

	createdWeek := 0
	createdMonth := 0
	onTime := 0
	var totalCompletionHours float64
	completionSamples := 0

	for _, task := range tasks {
		if !task.CreatedAt.Before(weekAgo) {
			createdWeek++
		}
		if !task.CreatedAt.Before(monthAgo) {
			createdMonth++
		}
		if task.CompletedAt == nil {
			continue
		}
		completedAt := *task.CompletedAt
		if !completedAt.Before(weekAgo) {
			out.CompletedWeek++
		}
		if completedAt.Before(monthAgo) {
			continue
		}

		out.CompletedMonth++
		switch task.Priority {
		case model.PriorityHigh:
			out.Priorities.High++
		case model.PriorityMedium:
			out.Priorities.Medium++
		case model.PriorityLow:
			out.Priorities.Low++
		}
		out.WeekdayCompletion[int(completedAt.Weekday())]++

		if hours := completedAt.Sub(task.CreatedAt).Hours(); hours > 0 {
			totalCompletionHours += hours
			completionSamples++
		}
		// Tasks without a due date count as on-time.
		if task.DueDate == nil || !completedAt.After(*task.DueDate) {
			onTime++
		}
	}

	if createdWeek > 0 {
		out.CompletionRateWeek = float64(out.CompletedWeek) / float64(createdWeek) * 100
	}
	if createdMonth > 0 {
		out.CompletionRateMonth = float64(out.CompletedMonth) / float64(createdMonth) * 100
	}
	if completionSamples > 0 {
		out.AvgCompletionHours = totalCompletionHours / float64(completionSamples)
	}
	if out.CompletedMonth > 0 {
		out.OnTimeRate = float64(onTime) / float64(out.CompletedMonth) * 100
	} else {
		out.OnTimeRate = 100
	}

	out.ProductivityScore = ProductivityScore(out.CompletionRateWeek, out.OnTimeRate, streak, out.Priorities.High)
	return out
}

// ProductivityScore is the 0-100 weighted blend: weekly completion rate 40%,
// on-time rate 30%, streak 20%, completed high-priority count 10%. Streak and
// high-priority counts cap at 10 and rescale to 0-100.
func ProductivityScore(completionRate, onTimeRate float64, streak, highPriorityCompleted int) float64 {
	normalizedStreak := float64(min(streak, 10)) * 10
	highFactor := float64(min(highPriorityCompleted, 10)) * 10

	score := completionRate*0.4 + onTimeRate*0.3 + normalizedStreak*0.2 + highFactor*0.1
	return math.Min(math.Max(score, 0), 100)
}

// FocusReport derives the focus-side insights from the engine's stats.
func FocusReport(stats model.FocusStats) FocusInsights {
	return FocusInsights{
		TotalFocusTime:    stats.TotalTime,
		TodayFocusTime:    stats.TodayTime,
		CompletedSessions: stats.CompletedSessions,
		AveragePerDay:     stats.AveragePerDay,
		FocusScore:        FocusScore(stats.TodayTime, stats.CompletedSessions),
	}
}

// FocusScore is 0-100: 60% weight on progress toward 120 focused minutes
// today, 40% on progress toward 8 completed sessions.
func FocusScore(todayMinutes, sessions int) int {
	timeScore := math.Min(float64(todayMinutes)/120, 1) * 60
	sessionScore := math.Min(float64(sessions)/8, 1) * 40
	return int(math.Round(timeScore + sessionScore))
}
