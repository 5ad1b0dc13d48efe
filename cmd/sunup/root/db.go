package root

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sunup/internal/config"
	"sunup/internal/engine"
	"sunup/internal/notify"
	"sunup/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

// openService wires the service to an in-process timer scheduler. For
// one-shot commands the timers die with the process; the schedule table
// keeps the intent and `sunup watch` re-arms everything on startup.
func openService(ctx context.Context) (*engine.Service, *notify.TimerScheduler, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	sched := notify.NewTimerScheduler()
	svc := engine.NewService(db, sched)
	return svc, sched, func() {
		sched.Close()
		cleanup()
	}, nil
}

// resolveAlarm accepts a full alarm id or a unique prefix of one.
func resolveAlarm(ctx context.Context, svc *engine.Service, idOrPrefix string) (*storage.Alarm, error) {
	a, err := svc.AlarmRepo().Get(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if a != nil {
		return a, nil
	}

	all, err := svc.AlarmRepo().ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var match *storage.Alarm
	for i := range all {
		if strings.HasPrefix(all[i].ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("id %q is ambiguous", idOrPrefix)
			}
			match = &all[i]
		}
	}
	if match == nil {
		return nil, engine.NotFoundError{ID: idOrPrefix}
	}
	return match, nil
}
