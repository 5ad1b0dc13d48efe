package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type AlarmRepo struct {
	db *sql.DB
}

func NewAlarmRepo(db *sql.DB) *AlarmRepo {
	return &AlarmRepo{db: db}
}

const alarmColumns = `id, hour, minute, label, enabled, repeat_days, sound_id, volume,
	snooze_enabled, snooze_minutes, snooze_max, snooze_count, difficulty, created_at`

func scanAlarm(row interface{ Scan(...any) error }) (*Alarm, error) {
	var a Alarm
	var days string
	err := row.Scan(
		&a.ID, &a.Hour, &a.Minute, &a.Label, &a.Enabled, &days, &a.SoundID, &a.Volume,
		&a.SnoozeEnabled, &a.SnoozeMinutes, &a.SnoozeMax, &a.SnoozeCount, &a.Difficulty, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.RepeatDays = decodeDays(days)
	return &a, nil
}

func (r *AlarmRepo) ListAll(ctx context.Context) ([]Alarm, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+alarmColumns+` FROM alarms ORDER BY hour, minute, created_at`)
	if err != nil {
		return nil, fmt.Errorf("alarm list: %w", err)
	}
	defer rows.Close()

	var out []Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, fmt.Errorf("alarm scan: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("alarm rows: %w", err)
	}
	return out, nil
}

func (r *AlarmRepo) Get(ctx context.Context, id string) (*Alarm, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id)
	a, err := scanAlarm(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("alarm get: %w", err)
	}
	return a, nil
}

func (r *AlarmRepo) Insert(ctx context.Context, a *Alarm) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alarms (id, hour, minute, label, enabled, repeat_days, sound_id, volume,
			snooze_enabled, snooze_minutes, snooze_max, snooze_count, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Hour, a.Minute, a.Label, a.Enabled, encodeDays(a.RepeatDays), a.SoundID, a.Volume,
		a.SnoozeEnabled, a.SnoozeMinutes, a.SnoozeMax, a.SnoozeCount, a.Difficulty)
	if err != nil {
		return fmt.Errorf("alarm insert: %w", err)
	}
	return nil
}

func (r *AlarmRepo) Update(ctx context.Context, a *Alarm) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE alarms
		SET hour = ?, minute = ?, label = ?, enabled = ?, repeat_days = ?, sound_id = ?, volume = ?,
			snooze_enabled = ?, snooze_minutes = ?, snooze_max = ?, snooze_count = ?, difficulty = ?
		WHERE id = ?
	`, a.Hour, a.Minute, a.Label, a.Enabled, encodeDays(a.RepeatDays), a.SoundID, a.Volume,
		a.SnoozeEnabled, a.SnoozeMinutes, a.SnoozeMax, a.SnoozeCount, a.Difficulty, a.ID)
	if err != nil {
		return fmt.Errorf("alarm update: %w", err)
	}
	return nil
}

func (r *AlarmRepo) UpdateSnoozeCount(ctx context.Context, id string, count int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE alarms SET snooze_count = ? WHERE id = ?`, count, id)
	if err != nil {
		return fmt.Errorf("alarm snooze count: %w", err)
	}
	return nil
}

func (r *AlarmRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE alarms SET enabled = ? WHERE id = ?`, enabled, id)
	if err != nil {
		return fmt.Errorf("alarm set enabled: %w", err)
	}
	return nil
}

// Delete removes the alarm and any schedule row in one transaction so a
// deleted alarm can never leave a dangling trigger entry behind.
func (r *AlarmRepo) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule WHERE alarm_id = ?`, id); err != nil {
			return fmt.Errorf("alarm delete schedule: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id); err != nil {
			return fmt.Errorf("alarm delete: %w", err)
		}
		return nil
	})
}
