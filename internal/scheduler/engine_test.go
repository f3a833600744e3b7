package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Reminder{TaskID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Reminder{TaskID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitReminder(t, engine.C(), time.Second)
	second := waitReminder(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestCancelRemovesPendingReminders(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	far := time.Now().Add(time.Hour)
	for _, id := range []string{"keep", "drop", "drop"} {
		if err := engine.Schedule(Reminder{TaskID: id, TriggerAt: far}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}

	engine.Cancel("drop")
	if got := engine.Pending(); got != 1 {
		t.Fatalf("expected 1 pending reminder after cancel, got %d", got)
	}
	engine.Cancel("missing")
	if got := engine.Pending(); got != 1 {
		t.Fatalf("cancel of unknown task changed the queue, got %d pending", got)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Reminder{TaskID: "t", TriggerAt: at}); err != nil {
			t.Fatalf("schedule reminder: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped reminders > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Reminder{TaskID: "bad"}); !errors.Is(err, ErrInvalidTriggerTime) {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Reminder{TaskID: "late", TriggerAt: time.Now().Add(time.Minute)}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitReminder(t *testing.T, ch <-chan Reminder, timeout time.Duration) Reminder {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for reminder")
		return Reminder{}
	}
}
