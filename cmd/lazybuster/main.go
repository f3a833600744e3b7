package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/journal"
	"github.com/lazybuster/lazybuster/internal/notify"
	"github.com/lazybuster/lazybuster/internal/scheduler"
	"github.com/lazybuster/lazybuster/internal/storage"
	"github.com/lazybuster/lazybuster/internal/tasks"
	"github.com/lazybuster/lazybuster/internal/timer"
	"github.com/lazybuster/lazybuster/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lazybuster failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logFile, err := os.OpenFile("lazybuster.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := zerolog.New(logFile).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	var notifier notify.Notifier = notify.Bell{}
	if cfg.DesktopNotifications {
		notifier = notify.Multi{notify.Bell{}, notify.Desktop{}}
	}

	taskStore := tasks.NewStore(ctx, kv, log)
	engine := timer.NewEngine(ctx, kv, taskStore, notifier, log)
	journalSvc := journal.NewService(ctx, kv, log)

	sched := scheduler.NewEngine(cfg.SchedulerBuffer)
	sched.Start()
	defer sched.Stop()

	taskStore.OnDelete(func(taskID string) {
		engine.ClearTask(taskID)
		sched.Cancel(taskID)
	})

	for _, task := range taskStore.Tasks() {
		if reminder, ok := update.ReminderFor(task, time.Now()); ok {
			if err := sched.Schedule(reminder); err != nil {
				log.Error().Err(err).Str("task", task.ID).Msg("schedule reminder")
			}
		}
	}

	model := update.New(ctx, update.Deps{
		Tasks:     taskStore,
		Timer:     engine,
		Journal:   journalSvc,
		Scheduler: sched,
		KV:        kv,
		Notifier:  notifier,
		Logger:    log,
	})

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
