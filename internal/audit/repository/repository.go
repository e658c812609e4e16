// Package repository persists the audit trail.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one audit trail record.
type Entry struct {
	OccurredAt time.Time
	ActorID    *uuid.UUID
	ActorRole  string
	Event      string
	Entity     string
	EntityRef  string
	Detail     map[string]interface{}
}

// Repository is the audit persistence interface.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Insert appends an audit entry.
func (r *Repo) Insert(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_log (occurred_at, actor_user_id, actor_role, event, entity, entity_ref, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.OccurredAt, entry.ActorID, entry.ActorRole,
		entry.Event, entry.Entity, entry.EntityRef, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List retrieves audit entries, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]Entry, error) {
	query := `
		SELECT occurred_at, actor_user_id, actor_role, event, entity, entity_ref, detail
		FROM audit_log
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.OccurredAt, &e.ActorID, &e.ActorRole, &e.Event, &e.Entity, &e.EntityRef, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
