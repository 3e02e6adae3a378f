package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// timeLayout is the text encoding of timestamps in every table. Timestamps
// are stored in UTC with a fixed-width fraction so that text order matches
// time order in range filters.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime encodes t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime decodes a stored timestamp. RFC 3339 accepts any fraction width.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type snapshotRow struct {
	ID        int64  `db:"id"`
	Sequence  int64  `db:"sequence"`
	Timestamp string `db:"timestamp"`
	Data      string `db:"data"`
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	raw, err := EncodeSnapshotData(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	if snap.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)`,
		snap.Sequence, formatTime(snap.Timestamp), string(raw),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = id
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, sequence, timestamp, data FROM snapshots ORDER BY id DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return rowToSnapshot(row)
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// rowToSnapshot decodes a stored row, validating its document.
func rowToSnapshot(row snapshotRow) (*Snapshot, error) {
	data, err := DecodeSnapshotData([]byte(row.Data))
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", row.ID, err)
	}
	ts, err := parseTime(row.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: parse timestamp: %w", row.ID, err)
	}
	return &Snapshot{
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: ts,
		Data:      *data,
	}, nil
}
