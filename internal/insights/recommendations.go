package insights

import "fmt"

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Recommendations evaluates the advice rules in order and appends generic
// fallbacks when fewer than three triggered, so the result is never empty.
func Recommendations(task TaskInsights, focus FocusInsights) []string {
	out := make([]string, 0, 6)

	if task.CompletionRateWeek < 50 {
		out = append(out, "Try breaking down your tasks into smaller, more manageable steps.")
	}
	if task.OnTimeRate < 70 {
		out = append(out, "Consider setting earlier deadlines or allowing more time for tasks.")
	}
	if task.Priorities.High < task.Priorities.Low {
		out = append(out, "Focus on completing high-priority tasks first before moving to low-priority items.")
	}

	least, most := extremeWeekdays(task.WeekdayCompletion)
	if task.WeekdayCompletion[least] == 0 {
		out = append(out, fmt.Sprintf("Try to complete at least one task on %s.", weekdayNames[least]))
	} else {
		out = append(out, fmt.Sprintf("You tend to complete more tasks on %s. Consider scheduling important work on this day.", weekdayNames[most]))
	}

	if focus.TodayFocusTime < 60 {
		out = append(out, "Aim for at least 1 hour of focused work each day.")
	}
	if focus.CompletedSessions < 4 {
		out = append(out, "Try to complete at least 4 Pomodoro sessions daily for better productivity.")
	}

	if len(out) < 3 {
		out = append(out,
			"Remember to take regular breaks to maintain productivity.",
			"Review your goals daily to stay on track.",
		)
	}
	return out
}

func extremeWeekdays(completion [7]int) (least, most int) {
	for day := 1; day < 7; day++ {
		if completion[day] < completion[least] {
			least = day
		}
		if completion[day] > completion[most] {
			most = day
		}
	}
	return least, most
}
