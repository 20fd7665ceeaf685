package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

// SessionService keeps the token+user pair cached per browser session and
// re-verifies it against the upstream backend on resume.
type SessionService struct {
	store    ports.SessionStore
	upstream ports.UpstreamClient
	outbox   ports.OutboxRepository // optional
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(store ports.SessionStore, upstream ports.UpstreamClient, outbox ports.OutboxRepository) *SessionService {
	return &SessionService{
		store:    store,
		upstream: upstream,
		outbox:   outbox,
	}
}

// Resume loads the cached session and re-verifies its token. The server's
// user record wins over the cached one; the token is left as-is. Any
// verification failure clears token and user together and reads as "not
// logged in".
func (s *SessionService) Resume(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, nil
	}

	sess, err := s.store.Load(ctx, sid)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	user, err := s.upstream.Verify(ctx, sess.Token)
	if err != nil {
		log.Printf("session: verification failed for %s: %v", sid, err)
		if delErr := s.store.Delete(ctx, sid); delErr != nil {
			log.Printf("session: failed to clear invalid session %s: %v", sid, delErr)
		}
		return nil, nil
	}

	// Role and profile may have changed server-side; replace the cached user.
	if err := s.store.Save(ctx, sid, ports.Session{Token: sess.Token, User: user}); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	return user, nil
}

// Login exchanges credentials for a token+user pair and caches both under a
// fresh session ID. A failed login leaves any prior session untouched.
func (s *SessionService) Login(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	if !role.Valid() {
		return "", nil, domain.ErrUnknownRole
	}

	token, user, err := s.upstream.Login(ctx, email, password, role)
	if err != nil {
		return "", nil, err
	}

	sid := uuid.NewString()
	if err := s.store.Save(ctx, sid, ports.Session{Token: token, User: user}); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.recordActivity(ctx, ports.ActivityEvent{Kind: ports.EventSessionStarted, UserID: user.ID})
	return sid, user, nil
}

// Register creates an account upstream. The role-keyed profile variant must
// match the role; a mismatch is rejected before any network call.
func (s *SessionService) Register(ctx context.Context, params ports.RegisterParams) (string, *domain.User, error) {
	probe := domain.User{
		Role:          params.Role,
		HospitalInfo:  params.HospitalInfo,
		BloodBankInfo: params.BloodBankInfo,
	}
	if err := probe.ValidateProfile(); err != nil {
		return "", nil, err
	}

	token, user, err := s.upstream.Register(ctx, params)
	if err != nil {
		return "", nil, err
	}

	sid := uuid.NewString()
	if err := s.store.Save(ctx, sid, ports.Session{Token: token, User: user}); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.recordActivity(ctx, ports.ActivityEvent{Kind: ports.EventSessionStarted, UserID: user.ID})
	return sid, user, nil
}

// Logout clears the cached session unconditionally.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	sess, err := s.store.Load(ctx, sid)
	if err == nil && sess.User != nil {
		s.recordActivity(ctx, ports.ActivityEvent{Kind: ports.EventSessionEnded, UserID: sess.User.ID})
	}
	return s.store.Delete(ctx, sid)
}

// recordActivity appends an outbox event, best-effort.
func (s *SessionService) recordActivity(ctx context.Context, evt ports.ActivityEvent) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.outbox.AppendEvent(ctx, evt.Kind, payload); err != nil {
		log.Printf("session: failed to record %s event: %v", evt.Kind, err)
	}
}
