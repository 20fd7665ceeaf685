package ports

import (
	"context"
)

const (
	EventRequestSubmitted     = "request.submitted"
	EventRequestStatusChanged = "request.status_changed"
	EventSessionStarted       = "session.started"
	EventSessionEnded         = "session.ended"
)

// ActivityEvent describes one user-visible action for downstream consumers
// (notification fan-out, audit).
type ActivityEvent struct {
	Kind        string `json:"kind"`
	UserID      string `json:"user_id"`
	RequestID   string `json:"request_id,omitempty"`
	RequestKind string `json:"request_kind,omitempty"` // "bed" or "blood"
	Status      string `json:"status,omitempty"`
	FacilityID  string `json:"facility_id,omitempty"`
}

type ActivityPublisher interface {
	PublishActivity(ctx context.Context, evt ActivityEvent) error
}
