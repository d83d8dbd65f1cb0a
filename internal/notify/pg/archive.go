// Package pg is an optional durable archive of synthesized
// notifications. The file-backed feed stays the source of truth for the
// UI; the archive exists for operators who want history beyond the feed
// cap.
package pg

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/spex2024/ug-dashboard/internal/notify"
)

// Archive appends notifications to Postgres.
type Archive struct {
	db *sql.DB
}

var _ notify.Archiver = (*Archive)(nil)

// Open connects to Postgres with modest pool defaults.
func Open(dsn string) (*Archive, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return &Archive{db: db}, nil
}

// New wraps an existing database handle (useful for tests).
func New(db *sql.DB) *Archive { return &Archive{db: db} }

func (a *Archive) Close() error { return a.db.Close() }

// DB exposes the handle for readiness pings.
func (a *Archive) DB() *sql.DB { return a.db }

// EnsureSchema creates the archive table when missing.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		create table if not exists notifications (
			id         text primary key,
			message    text not null,
			created_at timestamptz not null,
			read       boolean not null default false,
			officer_id text,
			admin_id   text,
			type       text not null
		)`)
	return err
}

// Append inserts a batch inside one transaction. Replayed ids are
// ignored so a retried poll cycle cannot duplicate rows.
func (a *Archive) Append(ctx context.Context, batch []notify.Notification) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, n := range batch {
		if _, err := tx.ExecContext(ctx, `
			insert into notifications(id, message, created_at, read, officer_id, admin_id, type)
			values ($1,$2,$3,$4,$5,$6,$7)
			on conflict (id) do nothing
		`, n.ID, n.Message, n.Timestamp, n.Read, nullable(n.OfficerID), nullable(n.AdminID), string(n.Type)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns the latest archived notifications, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]notify.Notification, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := a.db.QueryContext(ctx, `
		select id, message, created_at, read, coalesce(officer_id,''), coalesce(admin_id,''), type
		from notifications
		order by created_at desc
		limit $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notify.Notification
	for rows.Next() {
		var n notify.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.Message, &n.Timestamp, &n.Read, &n.OfficerID, &n.AdminID, &typ); err != nil {
			return nil, err
		}
		n.Type = notify.Type(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
