package tasks

import (
	"github.com/lazybuster/lazybuster/internal/model"
)

// Derived queries over the in-memory collection. Pure reads, no persistence.

// DueToday returns incomplete tasks whose due date falls on today's calendar
// day.
func (s *Store) DueToday() []model.Task {
	today := model.DayStart(s.now())
	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if model.SameDay(*task.DueDate, today) {
			out = append(out, task)
		}
	}
	return out
}

// Overdue returns incomplete tasks whose due date is strictly before today.
func (s *Store) Overdue() []model.Task {
	today := model.DayStart(s.now())
	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if task.Completed || task.DueDate == nil {
			continue
		}
		if model.DayStart(*task.DueDate).Before(today) {
			out = append(out, task)
		}
	}
	return out
}

// ByPriority returns incomplete tasks with the given priority.
func (s *Store) ByPriority(p model.Priority) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if !task.Completed && task.Priority == p {
			out = append(out, task)
		}
	}
	return out
}

// CompletedToday returns tasks completed on today's calendar day.
func (s *Store) CompletedToday() []model.Task {
	today := model.DayStart(s.now())
	out := make([]model.Task, 0)
	for _, task := range s.tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		if model.SameDay(*task.CompletedAt, today) {
			out = append(out, task)
		}
	}
	return out
}

// CompletionRate returns the percentage of tasks created in the trailing
// window that are completed, 0 when the window is empty.
func (s *Store) CompletionRate(days int) float64 {
	now := s.now()
	start := now.AddDate(0, 0, -days)

	inWindow := 0
	completed := 0
	for _, task := range s.tasks {
		if task.CreatedAt.Before(start) || task.CreatedAt.After(now) {
			continue
		}
		inWindow++
		if task.Completed {
			completed++
		}
	}
	if inWindow == 0 {
		return 0
	}
	return float64(completed) / float64(inWindow) * 100
}
