// Package journal stores the daily reflection entries and serves the rotating
// writing prompts.
package journal

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

var prompts = []string{
	"What was your biggest accomplishment today?",
	"What could you have done better today?",
	"What are you grateful for today?",
	"What is your main focus for tomorrow?",
	"What distracted you the most today?",
	"What new habit would help you be more productive?",
	"What task did you procrastinate on today and why?",
	"How could you better manage your time tomorrow?",
	"Rate your productivity today from 1-10 and explain why.",
	"What is one thing you learned today?",
}

type Service struct {
	kv  storage.Store
	log zerolog.Logger
	now func() time.Time

	entries []model.JournalEntry
}

func NewService(ctx context.Context, kv storage.Store, log zerolog.Logger) *Service {
	s := &Service{
		kv:  kv,
		log: log,
		now: time.Now,
	}
	raw, err := kv.Get(ctx, storage.KeyJournalEntries)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal([]byte(raw), &s.entries); jsonErr != nil {
			log.Error().Err(jsonErr).Msg("decode journal entries, starting empty")
			s.entries = nil
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		log.Error().Err(err).Msg("load journal entries, starting empty")
	}
	return s
}

// Add appends an entry and persists the whole list.
func (s *Service) Add(ctx context.Context, text, prompt, mood string) model.JournalEntry {
	entry := model.JournalEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Prompt:    prompt,
		Mood:      mood,
		CreatedAt: s.now(),
	}
	s.entries = append(s.entries, entry)

	payload, err := json.Marshal(s.entries)
	if err != nil {
		s.log.Error().Err(err).Msg("encode journal entries")
	} else if err := s.kv.Set(ctx, storage.KeyJournalEntries, string(payload)); err != nil {
		s.log.Error().Err(err).Msg("persist journal entries")
	}
	return entry
}

func (s *Service) Entries() []model.JournalEntry {
	out := make([]model.JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// EntriesOn returns the entries written on the given calendar day.
func (s *Service) EntriesOn(day time.Time) []model.JournalEntry {
	out := make([]model.JournalEntry, 0)
	for _, entry := range s.entries {
		if model.SameDay(entry.CreatedAt, day) {
			out = append(out, entry)
		}
	}
	return out
}

// Recent returns up to n entries, newest last.
func (s *Service) Recent(n int) []model.JournalEntry {
	if n <= 0 || len(s.entries) == 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]model.JournalEntry, n)
	copy(out, s.entries[len(s.entries)-n:])
	return out
}

// PromptFor rotates through the prompt list by calendar day, so the daily
// prompt is stable within a day and changes overnight.
func PromptFor(day time.Time) string {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, day.Location())
	days := int(model.DayStart(day).Sub(epoch).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return prompts[days%len(prompts)]
}
