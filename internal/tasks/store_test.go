package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/storage"
)

func setupStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	s := NewStore(context.Background(), kv, zerolog.Nop())
	return s, kv
}

func fixClock(s *Store, at time.Time) {
	s.now = func() time.Time { return at }
}

func TestAddDefaults(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	fixClock(s, now)

	task := s.Add(context.Background(), TaskInput{Title: "Pay rent"})
	if task.ID == "" {
		t.Fatal("expected generated id")
	}
	if task.Priority != model.PriorityMedium {
		t.Fatalf("expected default medium priority, got %q", task.Priority)
	}
	if task.Category != model.DefaultCategory {
		t.Fatalf("expected default category, got %q", task.Category)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatal("new task must be incomplete")
	}
	if !task.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, task.CreatedAt)
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("new task should validate: %v", err)
	}
}

func TestAddPersistsAndReloads(t *testing.T) {
	s, kv := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	added := s.Add(context.Background(), TaskInput{Title: "Persist me", Priority: model.PriorityHigh})

	reloaded := NewStore(context.Background(), kv, zerolog.Nop())
	got, ok := reloaded.Get(added.ID)
	if !ok {
		t.Fatal("expected task after reload")
	}
	if got.Title != "Persist me" || got.Priority != model.PriorityHigh {
		t.Fatalf("unexpected reloaded task: %+v", got)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	s, _ := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	ctx := context.Background()
	task := s.Add(ctx, TaskInput{Title: "Draft", Description: "v1"})

	newTitle := "Final"
	newPriority := model.PriorityHigh
	s.Update(ctx, task.ID, TaskUpdate{Title: &newTitle, Priority: &newPriority})

	got, _ := s.Get(task.ID)
	if got.Title != "Final" {
		t.Fatalf("expected updated title, got %q", got.Title)
	}
	if got.Priority != model.PriorityHigh {
		t.Fatalf("expected updated priority, got %q", got.Priority)
	}
	if got.Description != "v1" {
		t.Fatalf("untouched field changed: %q", got.Description)
	}

	// Unknown id is a silent no-op.
	s.Update(ctx, "missing", TaskUpdate{Title: &newTitle})
}

func TestUpdateClearsDueDate(t *testing.T) {
	s, _ := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	ctx := context.Background()
	due := time.Date(2024, 1, 12, 0, 0, 0, 0, time.Local)
	task := s.Add(ctx, TaskInput{Title: "Deadline", DueDate: &due})

	s.Update(ctx, task.ID, TaskUpdate{ClearDueDate: true})
	got, _ := s.Get(task.ID)
	if got.DueDate != nil {
		t.Fatalf("expected cleared due date, got %v", got.DueDate)
	}
}

func TestDeleteFiresHooks(t *testing.T) {
	s, _ := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	ctx := context.Background()
	task := s.Add(ctx, TaskInput{Title: "Remove me"})

	var deleted []string
	s.OnDelete(func(id string) { deleted = append(deleted, id) })

	s.Delete(ctx, task.ID)
	if _, ok := s.Get(task.ID); ok {
		t.Fatal("expected task removed")
	}
	if len(deleted) != 1 || deleted[0] != task.ID {
		t.Fatalf("expected delete hook for %s, got %v", task.ID, deleted)
	}

	s.Delete(ctx, "missing")
	if len(deleted) != 1 {
		t.Fatal("hook must not fire for unknown id")
	}
}

func TestCompleteRecurringSpawnsSibling(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	fixClock(s, now)
	ctx := context.Background()

	due := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)
	task := s.Add(ctx, TaskInput{
		Title:         "Water plants",
		DueDate:       &due,
		IsRecurring:   true,
		RecurringType: model.RecurringDaily,
	})
	s.AddTime(ctx, task.ID, 12)

	sibling, spawned := s.Complete(ctx, task.ID)
	if !spawned {
		t.Fatal("expected Complete to report the spawned sibling")
	}

	all := s.Tasks()
	if len(all) != 2 {
		t.Fatalf("expected original plus sibling, got %d tasks", len(all))
	}

	original, _ := s.Get(task.ID)
	if !original.Completed || original.CompletedAt == nil {
		t.Fatal("expected original completed with timestamp")
	}

	stored, ok := s.Get(sibling.ID)
	if !ok || stored.ID != sibling.ID {
		t.Fatalf("returned sibling must be in the collection: %+v", sibling)
	}
	if sibling.ID == task.ID {
		t.Fatal("sibling must have a distinct id")
	}
	if sibling.Completed || sibling.CompletedAt != nil {
		t.Fatal("sibling must be incomplete")
	}
	if sibling.TimeSpent != 0 {
		t.Fatalf("sibling timeSpent must reset, got %d", sibling.TimeSpent)
	}
	wantDue := time.Date(2024, 1, 11, 9, 0, 0, 0, time.Local)
	if sibling.DueDate == nil || !sibling.DueDate.Equal(wantDue) {
		t.Fatalf("expected sibling due %v, got %v", wantDue, sibling.DueDate)
	}
	if sibling.Title != "Water plants" || !sibling.IsRecurring || sibling.RecurringType != model.RecurringDaily {
		t.Fatalf("sibling must copy recurrence fields: %+v", sibling)
	}
}

func TestCompleteRecurringWithoutDueDateSpawnsNothing(t *testing.T) {
	s, _ := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	ctx := context.Background()

	task := s.Add(ctx, TaskInput{Title: "Someday", IsRecurring: true, RecurringType: model.RecurringWeekly})
	if _, spawned := s.Complete(ctx, task.ID); spawned {
		t.Fatal("expected no sibling without a due date")
	}

	if len(s.Tasks()) != 1 {
		t.Fatalf("expected no sibling, got %d tasks", len(s.Tasks()))
	}

	if _, spawned := s.Complete(ctx, "missing"); spawned {
		t.Fatal("unknown id must not report a sibling")
	}
}

func TestAddTime(t *testing.T) {
	s, _ := setupStore(t)
	fixClock(s, time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local))
	ctx := context.Background()
	task := s.Add(ctx, TaskInput{Title: "Deep work"})

	s.AddTime(ctx, task.ID, 25)
	s.AddTime(ctx, task.ID, 3)
	got, _ := s.Get(task.ID)
	if got.TimeSpent != 28 {
		t.Fatalf("expected 28 minutes, got %d", got.TimeSpent)
	}

	s.AddTime(ctx, "missing", 10)
}

func TestStreakContinuity(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	day1 := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)

	fixClock(s, day1)
	first := s.Add(ctx, TaskInput{Title: "Day one"})
	s.Complete(ctx, first.ID)
	if s.StreakCount() != 1 {
		t.Fatalf("expected streak 1 after first completion, got %d", s.StreakCount())
	}

	day2 := day1.AddDate(0, 0, 1)
	fixClock(s, day2)
	second := s.Add(ctx, TaskInput{Title: "Day two"})
	s.Complete(ctx, second.ID)
	if s.StreakCount() != 2 {
		t.Fatalf("expected streak 2 on consecutive day, got %d", s.StreakCount())
	}

	// Skip a day: streak resets to 1.
	day4 := day2.AddDate(0, 0, 2)
	fixClock(s, day4)
	third := s.Add(ctx, TaskInput{Title: "Day four"})
	s.Complete(ctx, third.ID)
	if s.StreakCount() != 1 {
		t.Fatalf("expected streak reset to 1 after a gap, got %d", s.StreakCount())
	}
}

func TestStreakIdempotentSameDay(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, day)

	a := s.Add(ctx, TaskInput{Title: "First"})
	b := s.Add(ctx, TaskInput{Title: "Second"})
	s.Complete(ctx, a.ID)
	if s.StreakCount() != 1 {
		t.Fatalf("expected streak 1, got %d", s.StreakCount())
	}
	s.Complete(ctx, b.ID)
	if s.StreakCount() != 1 {
		t.Fatalf("second same-day completion must not change streak, got %d", s.StreakCount())
	}
}

func TestStreakSurvivesReload(t *testing.T) {
	s, kv := setupStore(t)
	ctx := context.Background()
	day := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, day)
	task := s.Add(ctx, TaskInput{Title: "Keep streak"})
	s.Complete(ctx, task.ID)

	reloaded := NewStore(ctx, kv, zerolog.Nop())
	if reloaded.StreakCount() != 1 {
		t.Fatalf("expected streak 1 after reload, got %d", reloaded.StreakCount())
	}
	last := reloaded.LastCompletedDate()
	if last == nil || !model.SameDay(*last, day) {
		t.Fatalf("expected last completed on %v, got %v", day, last)
	}
}

func TestCompletionRateBounds(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, now)
	ctx := context.Background()

	if rate := s.CompletionRate(7); rate != 0 {
		t.Fatalf("expected 0 with no tasks in window, got %v", rate)
	}

	a := s.Add(ctx, TaskInput{Title: "One"})
	b := s.Add(ctx, TaskInput{Title: "Two"})
	s.Complete(ctx, a.ID)
	s.Complete(ctx, b.ID)
	if rate := s.CompletionRate(7); rate != 100 {
		t.Fatalf("expected 100 with all tasks completed, got %v", rate)
	}

	s.Add(ctx, TaskInput{Title: "Three"})
	s.Add(ctx, TaskInput{Title: "Four"})
	if rate := s.CompletionRate(7); rate != 50 {
		t.Fatalf("expected 50, got %v", rate)
	}
}

func TestCompletedToday(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	yesterday := time.Date(2024, 1, 9, 18, 0, 0, 0, time.Local)
	fixClock(s, yesterday)
	old := s.Add(ctx, TaskInput{Title: "Old win"})
	s.Complete(ctx, old.ID)

	today := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, today)
	fresh := s.Add(ctx, TaskInput{Title: "Fresh win"})
	s.Add(ctx, TaskInput{Title: "Still open"})
	s.Complete(ctx, fresh.ID)

	done := s.CompletedToday()
	if len(done) != 1 {
		t.Fatalf("expected 1 task completed today, got %d", len(done))
	}
	if done[0].ID != fresh.ID {
		t.Fatalf("expected %s, got %s", fresh.ID, done[0].ID)
	}
}

func TestQueriesDueTodayAndOverdue(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, now)
	ctx := context.Background()

	today := time.Date(2024, 1, 10, 18, 0, 0, 0, time.Local)
	yesterday := time.Date(2024, 1, 9, 18, 0, 0, 0, time.Local)
	tomorrow := time.Date(2024, 1, 11, 18, 0, 0, 0, time.Local)

	dueToday := s.Add(ctx, TaskInput{Title: "Today", DueDate: &today})
	overdue := s.Add(ctx, TaskInput{Title: "Late", DueDate: &yesterday})
	s.Add(ctx, TaskInput{Title: "Future", DueDate: &tomorrow})
	s.Add(ctx, TaskInput{Title: "No deadline"})

	got := s.DueToday()
	if len(got) != 1 || got[0].ID != dueToday.ID {
		t.Fatalf("unexpected due-today set: %+v", got)
	}
	got = s.Overdue()
	if len(got) != 1 || got[0].ID != overdue.ID {
		t.Fatalf("unexpected overdue set: %+v", got)
	}

	// Completed tasks drop out of both.
	s.Complete(ctx, dueToday.ID)
	s.Complete(ctx, overdue.ID)
	if len(s.DueToday()) != 0 || len(s.Overdue()) != 0 {
		t.Fatal("completed tasks must not be due or overdue")
	}
}

func TestRealityCheckSeverityOrdering(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, now)
	ctx := context.Background()
	past := time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)

	// 4 overdue and 3 high-priority pending at once: "high" wins.
	for i := 0; i < 4; i++ {
		s.Add(ctx, TaskInput{Title: "Late", DueDate: &past})
	}
	for i := 0; i < 3; i++ {
		s.Add(ctx, TaskInput{Title: "Urgent", Priority: model.PriorityHigh})
	}
	check := s.Check()
	if check.Severity != SeverityHigh {
		t.Fatalf("expected high severity, got %q", check.Severity)
	}
	if check.Message != "You have 4 overdue tasks! Time for a serious catch-up session." {
		t.Fatalf("unexpected message: %q", check.Message)
	}
}

func TestRealityCheckLowerRules(t *testing.T) {
	s, _ := setupStore(t)
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local)
	fixClock(s, now)
	ctx := context.Background()

	if check := s.Check(); check.Severity != SeverityGood {
		t.Fatalf("expected good severity on empty store, got %q", check.Severity)
	}

	today := time.Date(2024, 1, 10, 18, 0, 0, 0, time.Local)
	s.Add(ctx, TaskInput{Title: "Due", DueDate: &today})
	if check := s.Check(); check.Severity != SeverityNormal {
		t.Fatalf("expected normal severity, got %q", check.Severity)
	}

	for i := 0; i < 3; i++ {
		s.Add(ctx, TaskInput{Title: "Urgent", Priority: model.PriorityHigh})
	}
	if check := s.Check(); check.Severity != SeverityMedium {
		t.Fatalf("expected medium severity, got %q", check.Severity)
	}
}

func TestLoadDegradesToDefaultsOnCorruptData(t *testing.T) {
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	if err := kv.Set(ctx, storage.KeyTasks, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := kv.Set(ctx, storage.KeyStreak, "also broken"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewStore(ctx, kv, zerolog.Nop())
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected empty collection, got %d", len(s.Tasks()))
	}
	if s.StreakCount() != 0 {
		t.Fatalf("expected zero streak, got %d", s.StreakCount())
	}
}

type failingStore struct{ storage.Store }

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	kv := failingStore{Store: storage.NewMemoryStore()}
	ctx := context.Background()
	s := NewStore(ctx, kv, zerolog.Nop())
	fixClock(s, time.Date(2024, 1, 10, 10, 0, 0, 0, time.Local))

	task := s.Add(ctx, TaskInput{Title: "Still here"})
	if _, ok := s.Get(task.ID); !ok {
		t.Fatal("in-memory state must survive a failed write")
	}
	s.Complete(ctx, task.ID)
	if s.StreakCount() != 1 {
		t.Fatalf("streak must update in memory despite write failure, got %d", s.StreakCount())
	}
}
