package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"sunup/internal/storage"
)

// The reconciler keeps one invariant: the schedule table holds exactly
// the outstanding triggers. Every path below cancels before installing
// and persists the table before reporting success.

// CreateAlarm validates, stores and arms a new alarm.
func (s *Service) CreateAlarm(ctx context.Context, in AlarmInput) (*storage.Alarm, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	a := &storage.Alarm{ID: uuid.NewString(), Enabled: true}
	applyInput(a, in)
	if err := s.alarms.Insert(ctx, a); err != nil {
		return nil, err
	}
	if err := s.arm(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAlarm applies edits. An edit produces a new base occurrence, so
// the snooze counter resets and any outstanding trigger is replaced.
func (s *Service) UpdateAlarm(ctx context.Context, id string, in AlarmInput) (*storage.Alarm, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	a, err := s.alarms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NotFoundError{ID: id}
	}

	applyInput(a, in)
	a.SnoozeCount = 0
	if err := s.alarms.Update(ctx, a); err != nil {
		return nil, err
	}

	if a.Enabled {
		if err := s.arm(ctx, a); err != nil {
			return nil, err
		}
	} else if err := s.disarm(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// SetEnabled turns an alarm on or off, arming or cancelling as needed.
func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*storage.Alarm, error) {
	a, err := s.alarms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NotFoundError{ID: id}
	}

	a.Enabled = enabled
	a.SnoozeCount = 0
	if err := s.alarms.Update(ctx, a); err != nil {
		return nil, err
	}

	if enabled {
		if err := s.arm(ctx, a); err != nil {
			return nil, err
		}
	} else if err := s.disarm(ctx, id); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAlarm cancels any outstanding trigger and removes the alarm.
// Deleting an unknown id is a no-op.
func (s *Service) DeleteAlarm(ctx context.Context, id string) error {
	if err := s.disarm(ctx, id); err != nil {
		return err
	}
	return s.alarms.Delete(ctx, id)
}

// arm replaces the alarm's outstanding trigger with one for the next
// occurrence. Cancel-then-install keeps at most one live handle even
// when called repeatedly with the same state.
func (s *Service) arm(ctx context.Context, a *storage.Alarm) error {
	existing, err := s.schedule.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.sched.Cancel(existing.Handle); err != nil {
			return fmt.Errorf("cancel trigger: %w", err)
		}
	}

	at := NextOccurrence(*a, s.Now())
	handle, err := s.sched.Install(at, a.ID)
	if err != nil {
		return fmt.Errorf("install trigger: %w", err)
	}
	if err := s.schedule.Put(ctx, storage.ScheduleEntry{AlarmID: a.ID, Handle: handle, FireAt: at}); err != nil {
		return err
	}
	slog.Debug("alarm armed", "alarm_id", a.ID, "fire_at", at)
	return nil
}

// disarm cancels the outstanding trigger, if any, and clears the entry.
func (s *Service) disarm(ctx context.Context, id string) error {
	entry, err := s.schedule.Get(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	if err := s.sched.Cancel(entry.Handle); err != nil {
		return fmt.Errorf("cancel trigger: %w", err)
	}
	if err := s.schedule.Remove(ctx, id); err != nil {
		return err
	}
	slog.Debug("alarm disarmed", "alarm_id", id)
	return nil
}
