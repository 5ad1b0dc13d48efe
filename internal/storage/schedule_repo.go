package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ScheduleRepo struct {
	db *sql.DB
}

func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) All(ctx context.Context) (map[string]ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT alarm_id, handle, fire_at FROM schedule`)
	if err != nil {
		return nil, fmt.Errorf("schedule list: %w", err)
	}
	defer rows.Close()

	out := map[string]ScheduleEntry{}
	for rows.Next() {
		var e ScheduleEntry
		if err := rows.Scan(&e.AlarmID, &e.Handle, &e.FireAt); err != nil {
			return nil, fmt.Errorf("schedule scan: %w", err)
		}
		out[e.AlarmID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule rows: %w", err)
	}
	return out, nil
}

func (r *ScheduleRepo) Get(ctx context.Context, alarmID string) (*ScheduleEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT alarm_id, handle, fire_at FROM schedule WHERE alarm_id = ?`, alarmID)
	var e ScheduleEntry
	if err := row.Scan(&e.AlarmID, &e.Handle, &e.FireAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("schedule get: %w", err)
	}
	return &e, nil
}

// Put upserts the entry for its alarm; at most one row per alarm id.
func (r *ScheduleRepo) Put(ctx context.Context, e ScheduleEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule (alarm_id, handle, fire_at) VALUES (?, ?, ?)
		ON CONFLICT(alarm_id) DO UPDATE SET handle = excluded.handle, fire_at = excluded.fire_at
	`, e.AlarmID, e.Handle, e.FireAt)
	if err != nil {
		return fmt.Errorf("schedule put: %w", err)
	}
	return nil
}

// Remove deletes the entry if present; removing an absent entry is a no-op.
func (r *ScheduleRepo) Remove(ctx context.Context, alarmID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedule WHERE alarm_id = ?`, alarmID)
	if err != nil {
		return fmt.Errorf("schedule remove: %w", err)
	}
	return nil
}
