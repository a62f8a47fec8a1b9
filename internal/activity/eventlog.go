// Package activity is an append-only log of user-facing events
// (lesson completions, quiz attempts, certificate issuance) backing the
// dashboard's recent-activity feed.
package activity

import (
	"context"
	"database/sql"
	"time"
)

type Event struct {
	Seq       int64
	UserID    string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

// Execer is satisfied by *sql.DB and *sql.Tx so appends can join the
// caller's transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, ex Execer, e Event) error {
	if ex == nil {
		ex = r.db
	}
	_, err := ex.ExecContext(ctx,
		`INSERT INTO event_log (user_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.UserID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// List returns a user's most recent events, newest first.
func (r *EventRepo) List(ctx context.Context, userID string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, user_id, typ, key, data, created_at
		   FROM event_log WHERE user_id=$1
		  ORDER BY seq DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.UserID, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
