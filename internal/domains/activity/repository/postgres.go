package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"noteboard-backend/internal/domains/activity/model"
)

// ================================================
// POSTGRES ACTIVITY REPOSITORY
// ================================================

type postgresActivityRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &postgresActivityRepository{pool: pool}
}

// Insert writes one archived event. The worker may deliver a task more
// than once, so conflicts on the event id are dropped.
func (r *postgresActivityRepository) Insert(ctx context.Context, e *model.ArchivedEvent) error {
	query := `
		INSERT INTO note_events (
			id, event_type, note_id, actor_id, amount,
			content, channels, payload, occurred_at, archived_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.EventType,
		e.NoteID,
		e.ActorID,
		e.Amount,
		e.Content,
		pq.Array(e.Channels),
		e.Payload,
		e.OccurredAt,
		e.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert archived event: %w", err)
	}

	return nil
}

// ListRecent returns the newest events first.
func (r *postgresActivityRepository) ListRecent(ctx context.Context, limit int) ([]model.ArchivedEvent, error) {
	query := `
		SELECT
			id, event_type, note_id, actor_id, amount,
			content, channels, payload, occurred_at, archived_at
		FROM note_events
		ORDER BY occurred_at DESC, archived_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	defer rows.Close()

	events := make([]model.ArchivedEvent, 0, limit)
	for rows.Next() {
		var e model.ArchivedEvent
		err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.NoteID,
			&e.ActorID,
			&e.Amount,
			&e.Content,
			pq.Array(&e.Channels),
			&e.Payload,
			&e.OccurredAt,
			&e.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan archived event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return events, nil
}

// PurgeOlderThan deletes events past the retention window.
func (r *postgresActivityRepository) PurgeOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM note_events
		WHERE occurred_at < NOW() - ($1 * INTERVAL '1 day')
	`

	result, err := r.pool.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("purge old events: %w", err)
	}

	return result.RowsAffected(), nil
}
