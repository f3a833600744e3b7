package timer

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/notify"
	"github.com/lazybuster/lazybuster/internal/storage"
)

const dateStampLayout = "2006-01-02"

// TaskTimeUpdater is the one cross-service dependency: attributing focused
// minutes back to a task. The engine never owns task lifecycle.
type TaskTimeUpdater interface {
	AddTime(ctx context.Context, taskID string, minutes int)
}

// Engine is the pomodoro/break state machine plus its persisted aggregates.
// The caller drives it: Tick once per elapsed second while running. At most
// one tick chain may be live; Start while running is a no-op so a second
// chain can never begin.
type Engine struct {
	kv       storage.Store
	tasks    TaskTimeUpdater
	notifier notify.Notifier
	log      zerolog.Logger
	now      func() time.Time

	settings      model.TimerSettings
	timerType     model.TimerType
	running       bool
	remaining     int // seconds
	startedAt     time.Time
	currentTaskID string

	autoStartBreaks bool

	completedSessions int
	totalFocus        int // minutes, lifetime
	todayFocus        int // minutes, current calendar day
	history           []model.FocusEntry
}

func NewEngine(ctx context.Context, kv storage.Store, tasks TaskTimeUpdater, notifier notify.Notifier, log zerolog.Logger) *Engine {
	e := &Engine{
		kv:        kv,
		tasks:     tasks,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
		settings:  model.DefaultTimerSettings(),
		timerType: model.TimerPomodoro,
	}
	e.load(ctx)
	e.remaining = e.configuredSeconds(e.timerType)
	return e
}

func (e *Engine) load(ctx context.Context) {
	if raw, err := e.kv.Get(ctx, storage.KeyTimerSettings); err == nil {
		var s model.TimerSettings
		if jsonErr := json.Unmarshal([]byte(raw), &s); jsonErr != nil {
			e.log.Error().Err(jsonErr).Msg("decode timer settings, using defaults")
		} else if s.Validate() == nil {
			e.settings = s
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		e.log.Error().Err(err).Msg("load timer settings, using defaults")
	}

	e.completedSessions = e.loadCounter(ctx, storage.KeyCompletedSessions)
	e.totalFocus = e.loadCounter(ctx, storage.KeyTotalFocusTime)
	e.todayFocus = e.loadCounter(ctx, storage.KeyTodayFocusTime)

	// Daily reset: a stale date stamp zeroes today's focus time before
	// anything reads it.
	today := e.now().Format(dateStampLayout)
	stamp, err := e.kv.Get(ctx, storage.KeyTodayFocusTimeDate)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		e.log.Error().Err(err).Msg("load today focus date stamp")
	}
	if stamp != today {
		e.todayFocus = 0
		e.persistCounter(ctx, storage.KeyTodayFocusTime, 0)
		e.persistString(ctx, storage.KeyTodayFocusTimeDate, today)
	}

	if raw, err := e.kv.Get(ctx, storage.KeyFocusHistory); err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), &e.history); jsonErr != nil {
			e.log.Error().Err(jsonErr).Msg("decode focus history, starting empty")
			e.history = nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		e.log.Error().Err(err).Msg("load focus history, starting empty")
	}
}

func (e *Engine) loadCounter(ctx context.Context, key string) int {
	raw, err := e.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.log.Error().Err(err).Str("key", key).Msg("load counter, defaulting to zero")
		}
		return 0
	}
	value, parseErr := strconv.Atoi(raw)
	if parseErr != nil {
		e.log.Error().Err(parseErr).Str("key", key).Msg("parse counter, defaulting to zero")
		return 0
	}
	return value
}

// Start begins the countdown. A no-op while already running, which guarantees
// no duplicate tick chain.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.startedAt = e.now()
}

// Pause stops the countdown. For an interrupted pomodoro the elapsed whole
// minutes since start are credited to the focus aggregates and, when a task
// is selected, to that task. Sub-minute remainders are dropped.
func (e *Engine) Pause(ctx context.Context) {
	if !e.running {
		return
	}
	e.running = false
	if !e.timerType.IsBreak() && !e.startedAt.IsZero() {
		elapsed := int(e.now().Sub(e.startedAt) / time.Minute)
		if elapsed > 0 {
			e.accrue(ctx, elapsed)
			if e.currentTaskID != "" {
				e.tasks.AddTime(ctx, e.currentTaskID, elapsed)
			}
		}
	}
	e.startedAt = time.Time{}
}

// Reset stops the countdown and restores the configured duration for the
// current segment type. Partial elapsed time is discarded.
func (e *Engine) Reset() {
	e.running = false
	e.startedAt = time.Time{}
	e.remaining = e.configuredSeconds(e.timerType)
}

// Skip stops the countdown and advances to the next segment without credit.
// Skipping a pomodoro anticipates the next session number: the break after
// what would be the 4th session is the long one.
func (e *Engine) Skip() {
	e.running = false
	e.startedAt = time.Time{}
	if e.timerType.IsBreak() {
		e.timerType = model.TimerPomodoro
	} else if e.completedSessions%4 == 3 {
		e.timerType = model.TimerLongBreak
	} else {
		e.timerType = model.TimerShortBreak
	}
	e.remaining = e.configuredSeconds(e.timerType)
}

// SwitchType changes the active segment type, pausing first (with pause's
// accrual side effects) if a countdown is running.
func (e *Engine) SwitchType(ctx context.Context, t model.TimerType) {
	if !t.IsValid() {
		return
	}
	if e.running {
		e.Pause(ctx)
	}
	e.timerType = t
	e.remaining = e.configuredSeconds(t)
}

// Tick advances the countdown by one second. Reports whether this tick
// completed the segment.
func (e *Engine) Tick(ctx context.Context) bool {
	if !e.running {
		return false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining == 0 {
		e.complete(ctx)
		return true
	}
	return false
}

func (e *Engine) complete(ctx context.Context) {
	e.running = false
	e.startedAt = time.Time{}

	finished := e.timerType
	if finished == model.TimerPomodoro {
		e.completedSessions++
		e.persistCounter(ctx, storage.KeyCompletedSessions, e.completedSessions)

		minutes := e.settings.Pomodoro
		e.accrue(ctx, minutes)
		e.history = append(e.history, model.FocusEntry{
			Date:     e.now(),
			Duration: minutes,
			TaskID:   e.currentTaskID,
		})
		e.persistHistory(ctx)
		if e.currentTaskID != "" {
			e.tasks.AddTime(ctx, e.currentTaskID, minutes)
		}

		if e.completedSessions%4 == 0 {
			e.timerType = model.TimerLongBreak
		} else {
			e.timerType = model.TimerShortBreak
		}
	} else {
		e.timerType = model.TimerPomodoro
	}
	e.remaining = e.configuredSeconds(e.timerType)

	if e.notifier != nil {
		// Delivery is best effort.
		_ = e.notifier.Send(notify.Notification{
			Title: "LazyBuster",
			Body:  completionMessage(finished),
			Level: "info",
		})
	}

	if e.autoStartBreaks && e.timerType.IsBreak() {
		e.Start()
	}
}

func completionMessage(finished model.TimerType) string {
	if finished == model.TimerPomodoro {
		return "Pomodoro complete. Time for a break."
	}
	return "Break over. Back to focus."
}

// UpdateSettings replaces the segment durations. While stopped the current
// countdown is re-derived from the new settings immediately.
func (e *Engine) UpdateSettings(ctx context.Context, s model.TimerSettings) {
	if err := s.Validate(); err != nil {
		e.log.Warn().Err(err).Msg("rejecting timer settings")
		return
	}
	e.settings = s
	payload, err := json.Marshal(s)
	if err != nil {
		e.log.Error().Err(err).Msg("encode timer settings")
	} else {
		e.persistString(ctx, storage.KeyTimerSettings, string(payload))
	}
	if !e.running {
		e.remaining = e.configuredSeconds(e.timerType)
	}
}

// SetCurrentTask points the engine at the task receiving focus attribution.
// The id is not validated and an empty id clears the reference. A running
// countdown is unaffected.
func (e *Engine) SetCurrentTask(taskID string) {
	e.currentTaskID = taskID
}

// ClearTask drops the current-task reference if it matches the given id.
// Wired to the Task Store's delete hook.
func (e *Engine) ClearTask(taskID string) {
	if e.currentTaskID == taskID {
		e.currentTaskID = ""
	}
}

func (e *Engine) SetAutoStartBreaks(enabled bool) {
	e.autoStartBreaks = enabled
}

func (e *Engine) Running() bool                  { return e.running }
func (e *Engine) Type() model.TimerType          { return e.timerType }
func (e *Engine) Remaining() int                 { return e.remaining }
func (e *Engine) Settings() model.TimerSettings  { return e.settings }
func (e *Engine) CurrentTaskID() string          { return e.currentTaskID }
func (e *Engine) CompletedSessions() int         { return e.completedSessions }

func (e *Engine) History() []model.FocusEntry {
	out := make([]model.FocusEntry, len(e.history))
	copy(out, e.history)
	return out
}

// FocusStats summarizes the persisted aggregates. AveragePerDay is the mean
// daily total over focus-history entries in the trailing 7-day window; with
// no entries in the window it falls back to today's minutes.
func (e *Engine) FocusStats() model.FocusStats {
	return model.FocusStats{
		TotalTime:         e.totalFocus,
		TodayTime:         e.todayFocus,
		CompletedSessions: e.completedSessions,
		AveragePerDay:     e.averagePerDay(),
	}
}

func (e *Engine) averagePerDay() int {
	now := e.now()
	windowStart := now.AddDate(0, 0, -7)

	total := 0
	days := make(map[time.Time]struct{})
	for _, entry := range e.history {
		if entry.Date.Before(windowStart) || entry.Date.After(now) {
			continue
		}
		total += entry.Duration
		days[model.DayStart(entry.Date)] = struct{}{}
	}
	if len(days) == 0 {
		return e.todayFocus
	}
	return int(float64(total)/float64(len(days)) + 0.5)
}

func (e *Engine) accrue(ctx context.Context, minutes int) {
	e.totalFocus += minutes
	e.todayFocus += minutes
	e.persistCounter(ctx, storage.KeyTotalFocusTime, e.totalFocus)
	e.persistCounter(ctx, storage.KeyTodayFocusTime, e.todayFocus)
	e.persistString(ctx, storage.KeyTodayFocusTimeDate, e.now().Format(dateStampLayout))
}

func (e *Engine) persistHistory(ctx context.Context) {
	payload, err := json.Marshal(e.history)
	if err != nil {
		e.log.Error().Err(err).Msg("encode focus history")
		return
	}
	e.persistString(ctx, storage.KeyFocusHistory, string(payload))
}

func (e *Engine) persistCounter(ctx context.Context, key string, value int) {
	e.persistString(ctx, key, strconv.Itoa(value))
}

func (e *Engine) persistString(ctx context.Context, key, value string) {
	if err := e.kv.Set(ctx, key, value); err != nil {
		e.log.Error().Err(err).Str("key", key).Msg("persist timer state")
	}
}

func (e *Engine) configuredSeconds(t model.TimerType) int {
	minutes, err := e.settings.Minutes(t)
	if err != nil {
		minutes = e.settings.Pomodoro
	}
	return minutes * 60
}
