// Package update holds the bubbletea model wiring the services to the screen.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/journal"
	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/notify"
	"github.com/lazybuster/lazybuster/internal/scheduler"
	"github.com/lazybuster/lazybuster/internal/storage"
	"github.com/lazybuster/lazybuster/internal/tasks"
	"github.com/lazybuster/lazybuster/internal/timer"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewTimer    View = "Timer"
	ViewInsights View = "Insights"
	ViewJournal  View = "Journal"
	ViewSettings View = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Timer    string
	Insights string
	Journal  string
	Settings string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	TaskCursor     int
	Palette        CommandPaletteState
	HelpVisible    bool
	Settings       model.AppSettings
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx      context.Context
	tasks    *tasks.Store
	engine   *timer.Engine
	journal  *journal.Service
	sched    *scheduler.Engine
	kv       storage.Store
	notifier notify.Notifier
	log      zerolog.Logger
	now      func() time.Time

	realityDismissedAt time.Time

	commandInput  textinput.Model
	timerProgress progress.Model
	helpModel     help.Model
	ticking       bool
	chartDays     int
}

type Deps struct {
	Tasks     *tasks.Store
	Timer     *timer.Engine
	Journal   *journal.Service
	Scheduler *scheduler.Engine
	KV        storage.Store
	Notifier  notify.Notifier
	Logger    zerolog.Logger
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type ReminderDueMsg struct {
	Reminder scheduler.Reminder
}

type DismissRealityCheckMsg struct{}

func New(ctx context.Context, deps Deps) Model {
	m := Model{
		CurrentView: ViewTasks,
		ctx:         ctx,
		tasks:       deps.Tasks,
		engine:      deps.Timer,
		journal:     deps.Journal,
		sched:       deps.Scheduler,
		kv:          deps.KV,
		notifier:    deps.Notifier,
		log:         deps.Logger,
		now:         time.Now,
		chartDays:   7,
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Timer:    "2",
			Insights: "3",
			Journal:  "4",
			Settings: "5",
			Help:     "?",
			Quit:     "q",
		},
	}
	if m.notifier == nil {
		m.notifier = notify.Noop{}
	}

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timerProgress = progress.New(progress.WithDefaultGradient())
	m.helpModel = help.New()

	m.Settings = loadAppSettings(ctx, m.kv, m.log)
	if m.engine != nil {
		m.engine.SetAutoStartBreaks(m.Settings.AutoStartBreaks)
	}
	m.realityDismissedAt = loadRealityDismissal(ctx, m.kv)
	m.syncSelection()
	return m
}

func loadAppSettings(ctx context.Context, kv storage.Store, log zerolog.Logger) model.AppSettings {
	settings := model.DefaultAppSettings()
	if kv == nil {
		return settings
	}
	raw, err := kv.Get(ctx, storage.KeyAppSettings)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &settings); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("decode app settings, using defaults")
			return model.DefaultAppSettings()
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.Error().Err(err).Msg("load app settings, using defaults")
	}
	return settings
}

func loadRealityDismissal(ctx context.Context, kv storage.Store) time.Time {
	if kv == nil {
		return time.Time{}
	}
	raw, err := kv.Get(ctx, storage.KeyRealityCheckDismiss)
	if err != nil {
		return time.Time{}
	}
	at, parseErr := time.Parse(time.RFC3339, raw)
	if parseErr != nil {
		return time.Time{}
	}
	return at
}
