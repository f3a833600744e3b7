package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimerType = errors.New("model: invalid timer type")

type TimerType string

const (
	TimerPomodoro   TimerType = "pomodoro"
	TimerShortBreak TimerType = "shortBreak"
	TimerLongBreak  TimerType = "longBreak"
)

func (t TimerType) IsValid() bool {
	switch t {
	case TimerPomodoro, TimerShortBreak, TimerLongBreak:
		return true
	default:
		return false
	}
}

func (t TimerType) IsBreak() bool {
	return t == TimerShortBreak || t == TimerLongBreak
}

// TimerSettings holds the configured segment lengths in minutes.
type TimerSettings struct {
	Pomodoro   int `json:"pomodoro"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{Pomodoro: 25, ShortBreak: 5, LongBreak: 15}
}

func (s TimerSettings) Validate() error {
	if s.Pomodoro <= 0 || s.ShortBreak <= 0 || s.LongBreak <= 0 {
		return errors.New("model: timer durations must be positive minutes")
	}
	return nil
}

// Minutes returns the configured length of the given segment type.
func (s TimerSettings) Minutes(t TimerType) (int, error) {
	switch t {
	case TimerPomodoro:
		return s.Pomodoro, nil
	case TimerShortBreak:
		return s.ShortBreak, nil
	case TimerLongBreak:
		return s.LongBreak, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimerType, t)
	}
}

// FocusEntry is one completed pomodoro segment in the append-only history.
type FocusEntry struct {
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"` // minutes
	TaskID   string    `json:"taskId,omitempty"`
}

type FocusStats struct {
	TotalTime         int // lifetime focus minutes
	TodayTime         int // focus minutes accrued today
	CompletedSessions int
	AveragePerDay     int // mean daily minutes over the trailing week
}
