package engine

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"sunup/internal/notify"
	"sunup/internal/storage"
)

type Service struct {
	db       *sql.DB
	alarms   *storage.AlarmRepo
	players  *storage.PlayerRepo
	schedule *storage.ScheduleRepo
	wakes    *storage.WakeRepo
	sched    notify.Scheduler

	// Now is the clock for occurrence and reward computations.
	// Overridable in tests; pure helpers never read it themselves.
	Now func() time.Time
}

func NewService(db *sql.DB, sched notify.Scheduler) *Service {
	return &Service{
		db:       db,
		alarms:   storage.NewAlarmRepo(db),
		players:  storage.NewPlayerRepo(db),
		schedule: storage.NewScheduleRepo(db),
		wakes:    storage.NewWakeRepo(db),
		sched:    sched,
		Now:      time.Now,
	}
}

func (s *Service) AlarmRepo() *storage.AlarmRepo       { return s.alarms }
func (s *Service) PlayerRepo() *storage.PlayerRepo     { return s.players }
func (s *Service) ScheduleRepo() *storage.ScheduleRepo { return s.schedule }
func (s *Service) WakeRepo() *storage.WakeRepo         { return s.wakes }

// AlarmInput carries the user-editable alarm fields.
type AlarmInput struct {
	Hour          int
	Minute        int
	Label         string
	RepeatDays    []int
	SoundID       string
	Volume        float64
	SnoozeEnabled bool
	SnoozeMinutes int
	SnoozeMax     int
	Difficulty    Difficulty
}

func validateInput(in AlarmInput) error {
	if in.Hour < 0 || in.Hour > 23 {
		return ValidationError{Field: "hour", Reason: fmt.Sprintf("%d out of range 0-23", in.Hour)}
	}
	if in.Minute < 0 || in.Minute > 59 {
		return ValidationError{Field: "minute", Reason: fmt.Sprintf("%d out of range 0-59", in.Minute)}
	}
	seen := map[int]bool{}
	for _, d := range in.RepeatDays {
		if d < 0 || d > 6 {
			return ValidationError{Field: "repeat days", Reason: fmt.Sprintf("weekday %d out of range 0-6", d)}
		}
		if seen[d] {
			return ValidationError{Field: "repeat days", Reason: fmt.Sprintf("weekday %d repeated", d)}
		}
		seen[d] = true
	}
	if in.Volume < 0 || in.Volume > 1 {
		return ValidationError{Field: "volume", Reason: "out of range 0-1"}
	}
	if in.SnoozeMinutes <= 0 {
		return ValidationError{Field: "snooze minutes", Reason: "must be positive"}
	}
	if in.SnoozeMax < 0 {
		return ValidationError{Field: "snooze max", Reason: "must not be negative"}
	}
	if !in.Difficulty.IsValid() {
		return ValidationError{Field: "difficulty", Reason: fmt.Sprintf("%q", in.Difficulty)}
	}
	return nil
}

func applyInput(a *storage.Alarm, in AlarmInput) {
	a.Hour = in.Hour
	a.Minute = in.Minute
	a.Label = in.Label
	days := append([]int(nil), in.RepeatDays...)
	sort.Ints(days)
	a.RepeatDays = days
	a.SoundID = in.SoundID
	a.Volume = in.Volume
	a.SnoozeEnabled = in.SnoozeEnabled
	a.SnoozeMinutes = in.SnoozeMinutes
	a.SnoozeMax = in.SnoozeMax
	a.Difficulty = string(in.Difficulty)
}
