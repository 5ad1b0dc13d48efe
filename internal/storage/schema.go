package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS alarms (
			id TEXT PRIMARY KEY,
			hour INTEGER NOT NULL,
			minute INTEGER NOT NULL,
			label TEXT DEFAULT '',
			enabled INTEGER DEFAULT 1,
			repeat_days TEXT DEFAULT '',
			sound_id TEXT DEFAULT 'classic',
			volume REAL DEFAULT 1.0,
			snooze_enabled INTEGER DEFAULT 1,
			snooze_minutes INTEGER DEFAULT 5,
			snooze_max INTEGER DEFAULT 3,
			snooze_count INTEGER DEFAULT 0,
			difficulty TEXT DEFAULT 'easy',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			xp INTEGER DEFAULT 0,
			xp_to_next INTEGER DEFAULT 150,
			coins INTEGER DEFAULT 0,
			streak_days INTEGER DEFAULT 0,
			last_success_date TEXT DEFAULT '',
			total_wakes INTEGER DEFAULT 0
		);`,
		// One row per outstanding trigger; the source of truth for
		// what is currently armed.
		`CREATE TABLE IF NOT EXISTS schedule (
			alarm_id TEXT PRIMARY KEY,
			handle TEXT NOT NULL,
			fire_at DATETIME NOT NULL,
			FOREIGN KEY(alarm_id) REFERENCES alarms(id)
		);`,
		// Needed for the status screen and auditing rewards.
		`CREATE TABLE IF NOT EXISTS wake_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			alarm_id TEXT NOT NULL,
			woke_at DATETIME NOT NULL,
			difficulty TEXT NOT NULL,
			xp_awarded INTEGER NOT NULL,
			coins_awarded INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_wake_log_woke_at ON wake_log(woke_at);`,
		`CREATE INDEX IF NOT EXISTS idx_alarms_enabled ON alarms(enabled);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
