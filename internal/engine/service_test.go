package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sunup/internal/storage"
)

// stubScheduler records trigger traffic without any real timers.
type stubScheduler struct {
	mu       sync.Mutex
	seq      int
	installs []string // alarm ids, in order
	cancels  []string // handles, in order
	failNext bool
}

func (s *stubScheduler) Install(at time.Time, alarmID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return "", errors.New("install refused")
	}
	s.seq++
	s.installs = append(s.installs, alarmID)
	return fmt.Sprintf("h%d", s.seq), nil
}

func (s *stubScheduler) Cancel(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels = append(s.cancels, handle)
	return nil
}

func newTestService(t *testing.T) (*Service, *stubScheduler) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stub := &stubScheduler{}
	svc := NewService(db, stub)
	svc.Now = func() time.Time { return monday(7, 0) }
	return svc, stub
}

func dailyInput() AlarmInput {
	return AlarmInput{
		Hour:          8,
		Minute:        0,
		Label:         "Wake up",
		RepeatDays:    []int{0, 1, 2, 3, 4, 5, 6},
		SoundID:       "classic",
		Volume:        1.0,
		SnoozeEnabled: true,
		SnoozeMinutes: 5,
		SnoozeMax:     3,
		Difficulty:    DifficultyEasy,
	}
}

func oneOffInput() AlarmInput {
	in := dailyInput()
	in.RepeatDays = nil
	return in
}

func mustEntry(t *testing.T, svc *Service, id string) *storage.ScheduleEntry {
	t.Helper()
	e, err := svc.ScheduleRepo().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("schedule get: %v", err)
	}
	if e == nil {
		t.Fatalf("no schedule entry for %s", id)
	}
	return e
}

func entryCount(t *testing.T, svc *Service) int {
	t.Helper()
	all, err := svc.ScheduleRepo().All(context.Background())
	if err != nil {
		t.Fatalf("schedule all: %v", err)
	}
	return len(all)
}

func TestCreateArmsNextOccurrence(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}

	e := mustEntry(t, svc, a.ID)
	if want := monday(8, 0); !e.FireAt.Equal(want) {
		t.Fatalf("fire_at = %v, want %v", e.FireAt, want)
	}
	if len(stub.installs) != 1 || len(stub.cancels) != 0 {
		t.Fatalf("installs=%d cancels=%d, want 1/0", len(stub.installs), len(stub.cancels))
	}
}

func TestRearmIsIdempotent(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.UpdateAlarm(ctx, a.ID, dailyInput()); err != nil {
			t.Fatalf("UpdateAlarm #%d: %v", i+1, err)
		}
	}

	if got := entryCount(t, svc); got != 1 {
		t.Fatalf("schedule entries = %d, want 1", got)
	}
	// Each rearm cancels the previous handle before installing.
	if len(stub.installs) != 3 || len(stub.cancels) != 2 {
		t.Fatalf("installs=%d cancels=%d, want 3/2", len(stub.installs), len(stub.cancels))
	}
	if stub.cancels[0] != "h1" || stub.cancels[1] != "h2" {
		t.Fatalf("cancelled handles %v, want [h1 h2]", stub.cancels)
	}
}

func TestDisableCancelsTrigger(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	if _, err := svc.SetEnabled(ctx, a.ID, false); err != nil {
		t.Fatalf("SetEnabled(false): %v", err)
	}

	if got := entryCount(t, svc); got != 0 {
		t.Fatalf("schedule entries = %d, want 0", got)
	}
	if len(stub.cancels) != 1 {
		t.Fatalf("cancels = %d, want 1", len(stub.cancels))
	}

	if _, err := svc.SetEnabled(ctx, a.ID, true); err != nil {
		t.Fatalf("SetEnabled(true): %v", err)
	}
	mustEntry(t, svc, a.ID)
}

func TestDeleteCancelsAndRemoves(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	if err := svc.DeleteAlarm(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAlarm: %v", err)
	}

	got, err := svc.AlarmRepo().Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("alarm get: %v", err)
	}
	if got != nil {
		t.Fatal("alarm still present after delete")
	}
	if entryCount(t, svc) != 0 {
		t.Fatal("schedule entry survived delete")
	}

	// Deleting again is a no-op.
	if err := svc.DeleteAlarm(ctx, a.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSnoozeInstallsFixedOffset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	if _, err := svc.HandleFire(ctx, a.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}

	at, err := svc.Snooze(ctx, a.ID)
	if err != nil {
		t.Fatalf("Snooze: %v", err)
	}
	if want := monday(7, 5); !at.Equal(want) {
		t.Fatalf("snooze at %v, want %v", at, want)
	}
	e := mustEntry(t, svc, a.ID)
	if !e.FireAt.Equal(at) {
		t.Fatalf("entry fire_at %v != snooze time %v", e.FireAt, at)
	}
}

func TestSnoozeExhaustion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput()) // snoozeMax 3
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Snooze(ctx, a.ID); err != nil {
			t.Fatalf("snooze #%d: %v", i+1, err)
		}
	}

	_, err = svc.Snooze(ctx, a.ID)
	var exhausted SnoozeExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("fourth snooze error = %v, want SnoozeExhaustedError", err)
	}

	got, err := svc.AlarmRepo().Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("alarm get: %v", err)
	}
	if got.SnoozeCount != 3 {
		t.Fatalf("snoozeCount = %d, want 3", got.SnoozeCount)
	}
}

func TestSnoozeDisabled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := dailyInput()
	in.SnoozeEnabled = false
	a, err := svc.CreateAlarm(ctx, in)
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}

	_, err = svc.Snooze(ctx, a.ID)
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("snooze on no-snooze alarm = %v, want ValidationError", err)
	}
}

func TestFireConsumesEntryWithoutRearming(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	cancelsBefore := len(stub.cancels)

	if _, err := svc.HandleFire(ctx, a.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}

	if entryCount(t, svc) != 0 {
		t.Fatal("entry not consumed by fire")
	}
	// The spent handle is dropped, not cancelled; no re-arm yet.
	if len(stub.cancels) != cancelsBefore || len(stub.installs) != 1 {
		t.Fatalf("fire touched the scheduler: installs=%d cancels=%d", len(stub.installs), len(stub.cancels))
	}
}

func TestResolveRearmsRepeating(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	if _, err := svc.HandleFire(ctx, a.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}
	if _, err := svc.Snooze(ctx, a.ID); err != nil {
		t.Fatalf("Snooze: %v", err)
	}

	res, err := svc.ResolveSuccess(ctx, a.ID)
	if err != nil {
		t.Fatalf("ResolveSuccess: %v", err)
	}
	if !res.Rearmed {
		t.Fatal("repeating alarm not re-armed on resolve")
	}
	mustEntry(t, svc, a.ID)

	got, err := svc.AlarmRepo().Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("alarm get: %v", err)
	}
	if got.SnoozeCount != 0 {
		t.Fatalf("snoozeCount after resolve = %d, want 0", got.SnoozeCount)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("player get: %v", err)
	}
	if p.XP != 20 || p.Coins != 5 || p.TotalWakes != 1 || p.StreakDays != 1 {
		t.Fatalf("player after easy resolve = %+v", p)
	}

	wakes, err := svc.WakeRepo().ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("wake list: %v", err)
	}
	if len(wakes) != 1 || wakes[0].XPAwarded != 20 {
		t.Fatalf("wake log = %+v", wakes)
	}
}

func TestResolveOneOffStaysUnscheduled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateAlarm(ctx, oneOffInput())
	if err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	if _, err := svc.HandleFire(ctx, a.ID); err != nil {
		t.Fatalf("HandleFire: %v", err)
	}

	res, err := svc.ResolveSuccess(ctx, a.ID)
	if err != nil {
		t.Fatalf("ResolveSuccess: %v", err)
	}
	if res.Rearmed {
		t.Fatal("one-off alarm was re-armed")
	}
	if entryCount(t, svc) != 0 {
		t.Fatal("one-off alarm has a schedule entry after resolve")
	}

	got, err := svc.AlarmRepo().Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("alarm get: %v", err)
	}
	if !got.Enabled {
		t.Fatal("one-off alarm was disabled on resolve")
	}
}

func TestReconcileRearmsAndCleansUp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	enabled, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm enabled: %v", err)
	}
	disabled, err := svc.CreateAlarm(ctx, dailyInput())
	if err != nil {
		t.Fatalf("CreateAlarm disabled: %v", err)
	}
	if _, err := svc.SetEnabled(ctx, disabled.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}

	// Strand entries the way a crash would: one for a deleted alarm, one
	// pointing at a dead handle for the disabled alarm.
	if err := svc.ScheduleRepo().Put(ctx, storage.ScheduleEntry{AlarmID: "ghost", Handle: "dead1", FireAt: monday(9, 0)}); err != nil {
		t.Fatalf("put ghost entry: %v", err)
	}
	if err := svc.ScheduleRepo().Put(ctx, storage.ScheduleEntry{AlarmID: disabled.ID, Handle: "dead2", FireAt: monday(9, 0)}); err != nil {
		t.Fatalf("put stale entry: %v", err)
	}

	rep, err := svc.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if rep.Armed != 1 || rep.Cancelled != 2 {
		t.Fatalf("report = %+v, want Armed=1 Cancelled=2", rep)
	}

	if entryCount(t, svc) != 1 {
		t.Fatalf("entries after reconcile = %d, want 1", entryCount(t, svc))
	}
	mustEntry(t, svc, enabled.ID)
}

func TestValidationRejectsBadInput(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	bad := []AlarmInput{}
	in := dailyInput()
	in.Hour = 24
	bad = append(bad, in)
	in = dailyInput()
	in.Minute = -1
	bad = append(bad, in)
	in = dailyInput()
	in.RepeatDays = []int{1, 1}
	bad = append(bad, in)
	in = dailyInput()
	in.RepeatDays = []int{8}
	bad = append(bad, in)
	in = dailyInput()
	in.SnoozeMinutes = 0
	bad = append(bad, in)
	in = dailyInput()
	in.Volume = 1.5
	bad = append(bad, in)
	in = dailyInput()
	in.Difficulty = "nightmare"
	bad = append(bad, in)

	for i, in := range bad {
		_, err := svc.CreateAlarm(ctx, in)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: err = %v, want ValidationError", i, err)
		}
	}
	if len(stub.installs) != 0 {
		t.Fatalf("rejected input still installed %d triggers", len(stub.installs))
	}
}

func TestEditMissingAlarmErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateAlarm(ctx, "nope", dailyInput())
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("UpdateAlarm on missing id = %v, want NotFoundError", err)
	}
	if _, err := svc.SetEnabled(ctx, "nope", true); !errors.As(err, &nf) {
		t.Fatalf("SetEnabled on missing id = %v, want NotFoundError", err)
	}
}

func TestInstallFailureLeavesNoEntry(t *testing.T) {
	svc, stub := newTestService(t)
	ctx := context.Background()

	stub.failNext = true
	_, err := svc.CreateAlarm(ctx, dailyInput())
	if err == nil {
		t.Fatal("expected error when install fails")
	}
	if entryCount(t, svc) != 0 {
		t.Fatal("schedule entry recorded for a trigger that was never installed")
	}
}
