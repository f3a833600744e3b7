package journal

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lazybuster/lazybuster/internal/storage"
)

func setupService(t *testing.T) (*Service, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewService(context.Background(), kv, zerolog.Nop()), kv
}

func fixClock(s *Service, at time.Time) {
	s.now = func() time.Time { return at }
}

func TestAddAndReload(t *testing.T) {
	ctx := context.Background()
	svc, kv := setupService(t)
	fixClock(svc, time.Date(2024, 3, 5, 21, 0, 0, 0, time.UTC))

	entry := svc.Add(ctx, "shipped the report", "What was your biggest accomplishment today?", "good")
	if entry.ID == "" {
		t.Fatal("expected generated id")
	}
	svc.Add(ctx, "too much scrolling", "", "meh")

	reloaded := NewService(ctx, kv, zerolog.Nop())
	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(entries))
	}
	if entries[0].Text != "shipped the report" || entries[0].Mood != "good" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestEntriesOn(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	fixClock(svc, monday)
	svc.Add(ctx, "monday note", "", "")
	fixClock(svc, tuesday)
	svc.Add(ctx, "tuesday note", "", "")

	got := svc.EntriesOn(monday.Add(14 * time.Hour))
	if len(got) != 1 || got[0].Text != "monday note" {
		t.Fatalf("expected only the monday entry, got %+v", got)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	fixClock(svc, time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC))

	for _, text := range []string{"a", "b", "c"} {
		svc.Add(ctx, text, "", "")
	}

	got := svc.Recent(2)
	if len(got) != 2 || got[0].Text != "b" || got[1].Text != "c" {
		t.Fatalf("expected last two entries, got %+v", got)
	}
	if all := svc.Recent(10); len(all) != 3 {
		t.Fatalf("expected all entries when n exceeds length, got %d", len(all))
	}
	if none := svc.Recent(0); none != nil {
		t.Fatalf("expected nil for n=0, got %+v", none)
	}
}

func TestPromptForStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 6, 7, 0, 0, 0, time.UTC)

	if PromptFor(morning) != PromptFor(evening) {
		t.Fatal("prompt changed within the same day")
	}
	if PromptFor(morning) == PromptFor(nextDay) {
		t.Fatal("prompt did not rotate overnight")
	}
}

func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	if err := kv.Set(ctx, storage.KeyJournalEntries, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(ctx, kv, zerolog.Nop())
	if len(svc.Entries()) != 0 {
		t.Fatal("expected empty journal after corrupt load")
	}
}
