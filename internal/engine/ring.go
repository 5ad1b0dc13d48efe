package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sunup/internal/storage"
)

// HandleFire records that the platform consumed the alarm's trigger.
// The entry is dropped without cancelling (the handle is already spent)
// and re-arming waits until the wake is resolved, so a repeating alarm
// cannot ring again while its challenge is still on screen.
func (s *Service) HandleFire(ctx context.Context, id string) (*storage.Alarm, error) {
	if err := s.schedule.Remove(ctx, id); err != nil {
		return nil, err
	}
	a, err := s.alarms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NotFoundError{ID: id}
	}
	slog.Info("alarm fired", "alarm_id", id, "label", a.Label)
	return a, nil
}

// Snooze installs a trigger at now + snoozeMinutes and bumps the
// counter. Refused when snoozing is disabled or the ceiling is reached;
// the counter never exceeds SnoozeMax.
func (s *Service) Snooze(ctx context.Context, id string) (time.Time, error) {
	a, err := s.alarms.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if a == nil {
		return time.Time{}, NotFoundError{ID: id}
	}
	if !a.SnoozeEnabled {
		return time.Time{}, ValidationError{Field: "snooze", Reason: "disabled for this alarm"}
	}
	if a.SnoozeCount >= a.SnoozeMax {
		return time.Time{}, SnoozeExhaustedError{Max: a.SnoozeMax}
	}

	existing, err := s.schedule.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if existing != nil {
		if err := s.sched.Cancel(existing.Handle); err != nil {
			return time.Time{}, fmt.Errorf("cancel trigger: %w", err)
		}
	}

	at := s.Now().Add(time.Duration(a.SnoozeMinutes) * time.Minute)
	handle, err := s.sched.Install(at, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("install trigger: %w", err)
	}
	if err := s.schedule.Put(ctx, storage.ScheduleEntry{AlarmID: id, Handle: handle, FireAt: at}); err != nil {
		return time.Time{}, err
	}
	if err := s.alarms.UpdateSnoozeCount(ctx, id, a.SnoozeCount+1); err != nil {
		return time.Time{}, err
	}
	slog.Info("alarm snoozed", "alarm_id", id, "until", at, "count", a.SnoozeCount+1, "max", a.SnoozeMax)
	return at, nil
}

// WakeResult summarizes a resolved wake for the UI.
type WakeResult struct {
	Alarm       *storage.Alarm
	Player      *storage.Player
	Reward      Reward
	LevelBefore int
	LevelUp     bool
	Rearmed     bool
	NextFire    time.Time
}

// ResolveSuccess finishes a ring cycle after the challenge was cleared:
// pays the reward, logs the wake, resets the snooze counter and re-arms
// repeating alarms. A one-off stays enabled but unscheduled until the
// user re-arms it.
func (s *Service) ResolveSuccess(ctx context.Context, id string) (*WakeResult, error) {
	a, err := s.alarms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NotFoundError{ID: id}
	}

	p, err := s.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	levelBefore := p.Level
	next := ApplySuccess(*p, *a, now)
	if err := s.players.Update(ctx, &next); err != nil {
		return nil, err
	}

	reward := RewardFor(Difficulty(a.Difficulty))
	if _, err := s.wakes.Insert(ctx, storage.WakeRecord{
		AlarmID:      a.ID,
		WokeAt:       now,
		Difficulty:   a.Difficulty,
		XPAwarded:    reward.XP,
		CoinsAwarded: reward.Coins,
	}); err != nil {
		return nil, err
	}

	a.SnoozeCount = 0
	if err := s.alarms.UpdateSnoozeCount(ctx, a.ID, 0); err != nil {
		return nil, err
	}

	res := &WakeResult{
		Alarm:       a,
		Player:      &next,
		Reward:      reward,
		LevelBefore: levelBefore,
		LevelUp:     next.Level > levelBefore,
	}
	if len(a.RepeatDays) > 0 && a.Enabled {
		if err := s.arm(ctx, a); err != nil {
			return nil, err
		}
		entry, err := s.schedule.Get(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			res.Rearmed = true
			res.NextFire = entry.FireAt
		}
	}
	slog.Info("wake resolved", "alarm_id", a.ID, "xp", reward.XP, "coins", reward.Coins,
		"level", next.Level, "streak", next.StreakDays)
	return res, nil
}
