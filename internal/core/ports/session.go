package ports

import (
	"context"
	"errors"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the cached pair kept per browser session. Token and user are
// written and cleared together, never separately.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type SessionStore interface {
	Save(ctx context.Context, sid string, session Session) error
	Load(ctx context.Context, sid string) (*Session, error)
	Delete(ctx context.Context, sid string) error
}
