package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// SQLOutboxRepository appends activity events to the gateway-owned
// outbox_events table. A database trigger raises NOTIFY on outbox_channel so
// the relay picks events up without polling.
type SQLOutboxRepository struct {
	db *sql.DB
}

var _ ports.OutboxRepository = (*SQLOutboxRepository)(nil)

func NewSQLOutboxRepository(db *sql.DB) *SQLOutboxRepository {
	return &SQLOutboxRepository{db: db}
}

func (r *SQLOutboxRepository) AppendEvent(ctx context.Context, eventType string, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload, created_at) VALUES ($1, $2, $3, NOW())",
		uuid.NewString(),
		eventType,
		payload,
	)
	return err
}
