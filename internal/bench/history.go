// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bench

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	started_ns   INTEGER NOT NULL,
	kind         TEXT    NOT NULL,
	mode         TEXT    NOT NULL,
	capacity     INTEGER NOT NULL,
	count        INTEGER NOT NULL,
	producer_cpu INTEGER NOT NULL,
	consumer_cpu INTEGER NOT NULL,
	elapsed_ns   INTEGER NOT NULL,
	ops_per_sec  REAL    NOT NULL,
	verified     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_kind_mode ON runs (kind, mode);`

// History stores results in a SQLite database so that runs on the same
// machine can be compared over time.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("bench: open history %s: %w", path, err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bench: init history %s: %w", path, err)
	}
	return &History{db: db}, nil
}

// Append records r.
func (h *History) Append(ctx context.Context, r Result) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (started_ns, kind, mode, capacity, count, producer_cpu, consumer_cpu, elapsed_ns, ops_per_sec, verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Started.UnixNano(), string(r.Kind), string(r.Mode), r.Capacity, int64(r.Count),
		r.ProducerCPU, r.ConsumerCPU, int64(r.Elapsed), r.OpsPerSec, r.Verified,
	)
	if err != nil {
		return fmt.Errorf("bench: append history: %w", err)
	}
	return nil
}

// List returns up to limit results, newest first. An empty kind matches
// every kind.
func (h *History) List(ctx context.Context, kind Kind, limit int) ([]Result, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT started_ns, kind, mode, capacity, count, producer_cpu, consumer_cpu, elapsed_ns, ops_per_sec, verified
		 FROM runs WHERE ? = '' OR kind = ? ORDER BY started_ns DESC, id DESC LIMIT ?`,
		string(kind), string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("bench: list history: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r                     Result
			started, count, nanos int64
			kindStr, modeStr      string
		)
		if err := rows.Scan(&started, &kindStr, &modeStr, &r.Capacity, &count,
			&r.ProducerCPU, &r.ConsumerCPU, &nanos, &r.OpsPerSec, &r.Verified); err != nil {
			return nil, fmt.Errorf("bench: scan history: %w", err)
		}
		r.Started = time.Unix(0, started)
		r.Kind, r.Mode = Kind(kindStr), Mode(modeStr)
		r.Count = uint64(count)
		r.Elapsed = time.Duration(nanos)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bench: list history: %w", err)
	}
	return out, nil
}

// Best returns the fastest recorded result for kind and mode, or
// sql.ErrNoRows if there is none.
func (h *History) Best(ctx context.Context, kind Kind, mode Mode) (Result, error) {
	var (
		r                     Result
		started, count, nanos int64
	)
	err := h.db.QueryRowContext(ctx,
		`SELECT started_ns, capacity, count, producer_cpu, consumer_cpu, elapsed_ns, ops_per_sec, verified
		 FROM runs WHERE kind = ? AND mode = ? ORDER BY ops_per_sec DESC LIMIT 1`,
		string(kind), string(mode),
	).Scan(&started, &r.Capacity, &count, &r.ProducerCPU, &r.ConsumerCPU, &nanos, &r.OpsPerSec, &r.Verified)
	if err != nil {
		return Result{}, err
	}
	r.Kind, r.Mode = kind, mode
	r.Started = time.Unix(0, started)
	r.Count = uint64(count)
	r.Elapsed = time.Duration(nanos)
	return r, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
