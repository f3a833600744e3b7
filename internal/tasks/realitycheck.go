package tasks

import (
	"fmt"

	"github.com/lazybuster/lazybuster/internal/model"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityNormal Severity = "normal"
	SeverityGood   Severity = "good"
)

type RealityCheck struct {
	Message  string
	Severity Severity
}

// Check evaluates the reality-check rules in priority order; the first match
// wins.
func (s *Store) Check() RealityCheck {
	overdue := len(s.Overdue())
	dueToday := len(s.DueToday())
	highPending := len(s.ByPriority(model.PriorityHigh))

	switch {
	case overdue > 3:
		return RealityCheck{
			Message:  fmt.Sprintf("You have %d overdue tasks! Time for a serious catch-up session.", overdue),
			Severity: SeverityHigh,
		}
	case highPending > 2:
		return RealityCheck{
			Message:  fmt.Sprintf("You have %d high priority tasks pending. Focus on these first!", highPending),
			Severity: SeverityMedium,
		}
	case dueToday > 0:
		return RealityCheck{
			Message:  fmt.Sprintf("You have %d tasks due today. Make sure to complete them!", dueToday),
			Severity: SeverityNormal,
		}
	default:
		return RealityCheck{
			Message:  "You're on track! Keep up the good work.",
			Severity: SeverityGood,
		}
	}
}
