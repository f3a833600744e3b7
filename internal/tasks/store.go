package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/model"
	"github.com/lazybuster/lazybuster/internal/storage"
)

// Store owns the task collection, completion and recurrence logic, and the
// streak derived from it. The in-memory collection is the source of truth for
// the process lifetime; persistence writes are fire-and-forget and a failed
// write is logged, never rolled back.
type Store struct {
	kv  storage.Store
	log zerolog.Logger
	now func() time.Time

	tasks         []model.Task
	streakCount   int
	lastCompleted *time.Time

	onDelete []func(taskID string)
}

// TaskInput carries the caller-supplied fields for a new task. Empty
// priority/category fall back to their defaults. Title validity is the
// caller's concern.
type TaskInput struct {
	Title         string
	Description   string
	Priority      model.Priority
	Category      string
	DueDate       *time.Time
	IsRecurring   bool
	RecurringType model.RecurringType
}

// TaskUpdate is a partial field replacement; nil fields are left untouched.
// ClearDueDate removes an existing due date.
type TaskUpdate struct {
	Title         *string
	Description   *string
	Priority      *model.Priority
	Category      *string
	DueDate       *time.Time
	ClearDueDate  bool
	IsRecurring   *bool
	RecurringType *model.RecurringType
}

type streakRecord struct {
	Count int `json:"count"`
}

func NewStore(ctx context.Context, kv storage.Store, log zerolog.Logger) *Store {
	s := &Store{
		kv:  kv,
		log: log,
		now: time.Now,
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, storage.KeyTasks)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &s.tasks); jsonErr != nil {
			s.log.Error().Err(jsonErr).Msg("decode stored tasks, starting empty")
			s.tasks = nil
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		s.log.Error().Err(err).Msg("load tasks, starting empty")
	}

	raw, err = s.kv.Get(ctx, storage.KeyStreak)
	if err == nil {
		var rec streakRecord
		if jsonErr := json.Unmarshal([]byte(raw), &rec); jsonErr != nil {
			s.log.Error().Err(jsonErr).Msg("decode stored streak, starting at zero")
		} else {
			s.streakCount = rec.Count
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Error().Err(err).Msg("load streak, starting at zero")
	}

	raw, err = s.kv.Get(ctx, storage.KeyLastCompletedDate)
	if err == nil {
		if parsed, parseErr := time.Parse(time.RFC3339, raw); parseErr != nil {
			s.log.Error().Err(parseErr).Msg("parse last completed date, ignoring")
		} else {
			local := parsed.Local()
			s.lastCompleted = &local
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Error().Err(err).Msg("load last completed date, ignoring")
	}
}

// OnDelete registers a hook invoked with the id of every deleted task. The
// Timer Engine uses this to drop a dangling current-task reference.
func (s *Store) OnDelete(fn func(taskID string)) {
	if fn != nil {
		s.onDelete = append(s.onDelete, fn)
	}
}

// Add constructs a task with defaulted fields, appends it, persists the
// collection, and returns the new task so callers can chain (for example to
// schedule a reminder).
func (s *Store) Add(ctx context.Context, in TaskInput) model.Task {
	now := s.now()
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		IsRecurring: in.IsRecurring,
		CreatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Category == "" {
		task.Category = model.DefaultCategory
	}
	if task.IsRecurring {
		task.RecurringType = in.RecurringType
	}

	s.tasks = append(s.tasks, task)
	s.persistTasks(ctx)
	s.recomputeStreak(ctx)
	return task
}

// Update merges the partial fields onto the matching task. Unknown ids are a
// silent no-op.
func (s *Store) Update(ctx context.Context, id string, upd TaskUpdate) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	task := &s.tasks[idx]
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	if upd.Category != nil {
		task.Category = *upd.Category
	}
	if upd.ClearDueDate {
		task.DueDate = nil
	} else if upd.DueDate != nil {
		due := *upd.DueDate
		task.DueDate = &due
	}
	if upd.IsRecurring != nil {
		task.IsRecurring = *upd.IsRecurring
		if !task.IsRecurring {
			task.RecurringType = ""
		}
	}
	if upd.RecurringType != nil && task.IsRecurring {
		task.RecurringType = *upd.RecurringType
	}

	s.persistTasks(ctx)
	s.recomputeStreak(ctx)
}

// Delete removes the task and fires the registered delete hooks. Unknown ids
// are a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persistTasks(ctx)
	s.recomputeStreak(ctx)
	for _, fn := range s.onDelete {
		fn(id)
	}
}

// Complete marks the task completed and, for recurring tasks with a due date,
// spawns the next occurrence. Original and sibling land in one persisted
// write. The spawned sibling is returned so callers can schedule follow-up
// work for it, such as a due-date reminder.
func (s *Store) Complete(ctx context.Context, id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	task := &s.tasks[idx]
	if !task.Completed {
		now := s.now()
		task.Completed = true
		task.CompletedAt = &now
	}

	var sibling model.Task
	spawned := false
	if task.IsRecurring {
		if nextDue, ok := task.NextDueDate(); ok {
			sibling = model.Task{
				ID:            uuid.NewString(),
				Title:         task.Title,
				Description:   task.Description,
				Priority:      task.Priority,
				Category:      task.Category,
				DueDate:       &nextDue,
				IsRecurring:   true,
				RecurringType: task.RecurringType,
				CreatedAt:     s.now(),
			}
			s.tasks = append(s.tasks, sibling)
			spawned = true
		}
	}

	s.persistTasks(ctx)
	s.recomputeStreak(ctx)
	return sibling, spawned
}

// AddTime adds focus minutes to the task's accumulated time. Unknown ids are
// a silent no-op.
func (s *Store) AddTime(ctx context.Context, id string, minutes int) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.tasks[idx].TimeSpent += minutes
	s.persistTasks(ctx)
	s.recomputeStreak(ctx)
}

// Tasks returns a copy of the current collection.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

func (s *Store) StreakCount() int {
	return s.streakCount
}

func (s *Store) LastCompletedDate() *time.Time {
	if s.lastCompleted == nil {
		return nil
	}
	d := *s.lastCompleted
	return &d
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistTasks(ctx context.Context) {
	payload, err := json.Marshal(s.tasks)
	if err != nil {
		s.log.Error().Err(err).Msg("encode tasks")
		return
	}
	if err := s.kv.Set(ctx, storage.KeyTasks, string(payload)); err != nil {
		s.log.Error().Err(err).Msg("persist tasks")
	}
}

// recomputeStreak runs after every collection mutation. It writes only the
// streak keys, never the task collection, so it cannot feed back into the
// triggering write.
func (s *Store) recomputeStreak(ctx context.Context) {
	today := model.DayStart(s.now())

	completedToday := 0
	for _, task := range s.tasks {
		if task.Completed && task.CompletedAt != nil && model.SameDay(*task.CompletedAt, today) {
			completedToday++
		}
	}
	if completedToday == 0 {
		return
	}

	if s.lastCompleted == nil {
		s.setStreak(ctx, 1, today)
		return
	}

	last := model.DayStart(*s.lastCompleted)
	yesterday := today.AddDate(0, 0, -1)
	switch {
	case last.Equal(yesterday):
		s.setStreak(ctx, s.streakCount+1, today)
	case last.Before(yesterday):
		s.setStreak(ctx, 1, today)
	default:
		// Already counted today; repeated completions are idempotent.
	}
}

func (s *Store) setStreak(ctx context.Context, count int, day time.Time) {
	s.streakCount = count
	s.lastCompleted = &day

	payload, err := json.Marshal(streakRecord{Count: count})
	if err != nil {
		s.log.Error().Err(err).Msg("encode streak")
	} else if err := s.kv.Set(ctx, storage.KeyStreak, string(payload)); err != nil {
		s.log.Error().Err(err).Msg("persist streak")
	}
	if err := s.kv.Set(ctx, storage.KeyLastCompletedDate, day.Format(time.RFC3339)); err != nil {
		s.log.Error().Err(err).Msg("persist last completed date")
	}
}
