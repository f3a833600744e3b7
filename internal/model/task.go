package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority      = errors.New("model: invalid task priority")
	ErrInvalidRecurringType = errors.New("model: invalid recurring type")
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

type RecurringType string

const (
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
)

func (r RecurringType) IsValid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	default:
		return false
	}
}

const DefaultCategory = "general"

type Task struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Priority      Priority      `json:"priority"`
	Category      string        `json:"category"`
	DueDate       *time.Time    `json:"dueDate,omitempty"`
	IsRecurring   bool          `json:"isRecurring"`
	RecurringType RecurringType `json:"recurringType,omitempty"`
	Completed     bool          `json:"completed"`
	CreatedAt     time.Time     `json:"createdAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	TimeSpent     int           `json:"timeSpent"` // minutes of attributed focus
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.IsRecurring && !t.RecurringType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurringType, t.RecurringType)
	}
	if !t.IsRecurring && t.RecurringType != "" {
		return errors.New("model: recurring type must be empty for one-time tasks")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	if t.TimeSpent < 0 {
		return errors.New("model: time_spent must not be negative")
	}
	return nil
}

// NextDueDate computes the due date for the sibling spawned when a recurring
// task is completed. Returns false when the task has no due date or no valid
// recurring type; no sibling is spawned in that case.
func (t Task) NextDueDate() (time.Time, bool) {
	if t.DueDate == nil || !t.RecurringType.IsValid() {
		return time.Time{}, false
	}
	due := *t.DueDate
	switch t.RecurringType {
	case RecurringDaily:
		return due.AddDate(0, 0, 1), true
	case RecurringWeekly:
		return due.AddDate(0, 0, 7), true
	case RecurringMonthly:
		return due.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}
