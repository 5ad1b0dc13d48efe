package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type WakeRepo struct {
	db *sql.DB
}

func NewWakeRepo(db *sql.DB) *WakeRepo {
	return &WakeRepo{db: db}
}

func (r *WakeRepo) Insert(ctx context.Context, rec WakeRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wake_log (alarm_id, woke_at, difficulty, xp_awarded, coins_awarded)
		VALUES (?, ?, ?, ?, ?)
	`, rec.AlarmID, rec.WokeAt, rec.Difficulty, rec.XPAwarded, rec.CoinsAwarded)
	if err != nil {
		return 0, fmt.Errorf("wake insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("wake last insert id: %w", err)
	}
	return id, nil
}

func (r *WakeRepo) ListRecent(ctx context.Context, limit int) ([]WakeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, alarm_id, woke_at, difficulty, xp_awarded, coins_awarded
		FROM wake_log
		ORDER BY woke_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("wake list: %w", err)
	}
	defer rows.Close()

	var out []WakeRecord
	for rows.Next() {
		var rec WakeRecord
		if err := rows.Scan(&rec.ID, &rec.AlarmID, &rec.WokeAt, &rec.Difficulty, &rec.XPAwarded, &rec.CoinsAwarded); err != nil {
			return nil, fmt.Errorf("wake scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wake rows: %w", err)
	}
	return out, nil
}

func (r *WakeRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wake_log WHERE woke_at >= ?`, since)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("wake count: %w", err)
	}
	return n, nil
}
