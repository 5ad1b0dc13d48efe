package engine

import (
	"context"
	"log/slog"
)

// ReconcileReport counts what the startup audit touched.
type ReconcileReport struct {
	Armed     int
	Cancelled int
}

// Reconcile is the startup audit. The schedule table survives restarts
// but the handles it names may not (in-process timers die with the
// process, and a crash can strand an entry on either side), so every
// enabled alarm is re-armed from scratch: cancel whatever handle the
// entry still names, install a fresh trigger, persist the new entry.
// Cancel is idempotent, so re-arming a perfectly healthy alarm is safe.
// Entries for disabled or deleted alarms are cancelled and dropped.
func (s *Service) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var rep ReconcileReport

	alarms, err := s.alarms.ListAll(ctx)
	if err != nil {
		return rep, err
	}
	entries, err := s.schedule.All(ctx)
	if err != nil {
		return rep, err
	}

	enabled := map[string]bool{}
	for i := range alarms {
		a := &alarms[i]
		enabled[a.ID] = a.Enabled
		if !a.Enabled {
			continue
		}
		if err := s.arm(ctx, a); err != nil {
			return rep, err
		}
		rep.Armed++
	}

	for id := range entries {
		if enabled[id] {
			continue
		}
		if err := s.disarm(ctx, id); err != nil {
			return rep, err
		}
		rep.Cancelled++
	}

	slog.Info("schedule reconciled", "armed", rep.Armed, "cancelled", rep.Cancelled)
	return rep, nil
}
