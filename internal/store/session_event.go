package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on the session and attempt event tables.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type sessionEventRow struct {
	ID          int64  `db:"id"`
	Sequence    int64  `db:"sequence"`
	Timestamp   string `db:"timestamp"`
	SessionID   string `db:"session_id"`
	Theme       string `db:"theme"`
	Score       int    `db:"score"`
	LevelBefore string `db:"level_before"`
	LevelAfter  string `db:"level_after"`
	Attempts    int    `db:"attempts"`
	Correct     int    `db:"correct"`
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, theme, score, level_before, level_after, attempts, correct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum,
		formatTime(time.Now()),
		data.SessionID,
		data.Theme,
		data.Score,
		data.LevelBefore,
		data.LevelAfter,
		data.Attempts,
		data.Correct,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	correct := 0
	if data.Correct {
		correct = 1
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events (sequence, timestamp, session_id, theme, level, correct)
		VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum,
		formatTime(time.Now()),
		data.SessionID,
		data.Theme,
		data.Level,
		correct,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Theme != "" {
		where = append(where, "theme = ?")
		args = append(args, opts.Theme)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, formatTime(opts.From))
	}

	query := `SELECT id, sequence, timestamp, session_id, theme, score,
		level_before, level_after, attempts, correct FROM session_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var rows []sessionEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	records := make([]SessionEventRecord, 0, len(rows))
	for _, row := range rows {
		ts, err := parseTime(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("session event %d: parse timestamp: %w", row.ID, err)
		}
		records = append(records, SessionEventRecord{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: ts,
			SessionEventData: SessionEventData{
				SessionID:   row.SessionID,
				Theme:       row.Theme,
				Score:       row.Score,
				LevelBefore: row.LevelBefore,
				LevelAfter:  row.LevelAfter,
				Attempts:    row.Attempts,
				Correct:     row.Correct,
			},
		})
	}
	return records, nil
}

func (r *eventRepo) ThemeAttemptStats(ctx context.Context, theme string) (int, int, error) {
	var stats struct {
		Attempts int `db:"attempts"`
		Correct  int `db:"correct"`
	}
	err := r.db.GetContext(ctx, &stats,
		`SELECT COUNT(*) AS attempts, COALESCE(SUM(correct), 0) AS correct
		FROM attempt_events WHERE theme = ?`, theme)
	if err != nil {
		return 0, 0, fmt.Errorf("query attempt stats: %w", err)
	}
	return stats.Attempts, stats.Correct, nil
}
