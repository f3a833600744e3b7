package storage

// Persisted key names. The task collection and the timer aggregates are
// logically independent key spaces in the same store.
const (
	KeyTasks               = "lazybuster_tasks"
	KeyStreak              = "lazybuster_streak"
	KeyLastCompletedDate   = "lazybuster_last_completed"
	KeyTimerSettings       = "lazybuster_timer_settings"
	KeyCompletedSessions   = "lazybuster_completed_sessions"
	KeyTotalFocusTime      = "lazybuster_total_focus_time"
	KeyTodayFocusTime      = "lazybuster_today_focus_time"
	KeyTodayFocusTimeDate  = "lazybuster_today_focus_time_date"
	KeyFocusHistory        = "lazybuster_focus_history"
	KeyJournalEntries      = "lazybuster_journal_entries"
	KeyAppSettings         = "lazybuster_app_settings"
	KeyRealityCheckDismiss = "lazybuster_reality_check_dismissed"
)

// AllKeys lists every key the app may have written, used for full reset.
func AllKeys() []string {
	return []string{
		KeyTasks,
		KeyStreak,
		KeyLastCompletedDate,
		KeyTimerSettings,
		KeyCompletedSessions,
		KeyTotalFocusTime,
		KeyTodayFocusTime,
		KeyTodayFocusTimeDate,
		KeyFocusHistory,
		KeyJournalEntries,
		KeyAppSettings,
		KeyRealityCheckDismiss,
	}
}
