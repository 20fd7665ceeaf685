package ports

import (
	"context"
)

// OutboxRepository appends activity events for the relay to pick up.
type OutboxRepository interface {
	AppendEvent(ctx context.Context, eventType string, payload []byte) error
}
