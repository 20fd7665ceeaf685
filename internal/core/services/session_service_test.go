package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
	"github.com/Tarush5253/swasthya-setu/test/mocks"
)

func TestResume_NoSession(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	svc := NewSessionService(store, upstream, nil)

	user, err := svc.Resume(context.Background(), "missing-sid")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for unknown session, got %+v", user)
	}
	if len(upstream.VerifyCalls) != 0 {
		t.Error("expected no verify call without a cached session")
	}
}

func TestResume_EmptySessionID(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	svc := NewSessionService(store, upstream, nil)

	user, err := svc.Resume(context.Background(), "")
	if err != nil || user != nil {
		t.Errorf("expected (nil, nil), got (%+v, %v)", user, err)
	}
	if len(store.LoadCalls) != 0 {
		t.Error("expected no store access for empty session ID")
	}
}

func TestResume_VerificationFailureClearsSession(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.Seed("sid-1", ports.Session{Token: "stale-token", User: &domain.User{ID: "u1", Role: domain.RoleUser}})

	upstream := mocks.NewMockUpstreamClient()
	upstream.VerifyError = &ports.UpstreamError{StatusCode: 401, Message: "token expired"}

	svc := NewSessionService(store, upstream, nil)

	user, err := svc.Resume(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("verification failure must not surface as an error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user after failed verification, got %+v", user)
	}

	if len(store.DeleteCalls) != 1 || store.DeleteCalls[0] != "sid-1" {
		t.Errorf("expected session to be cleared, delete calls: %v", store.DeleteCalls)
	}
	if _, ok := store.Stored("sid-1"); ok {
		t.Error("expected token and user gone together after failed verification")
	}
}

func TestResume_RefreshesCachedUser(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1", FirstName: "Old"}})

	upstream := mocks.NewMockUpstreamClient()
	upstream.VerifyUser = &domain.User{ID: "u1", FirstName: "New", Role: domain.RoleUser}

	svc := NewSessionService(store, upstream, nil)

	user, err := svc.Resume(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil || user.FirstName != "New" {
		t.Fatalf("expected the server's user record, got %+v", user)
	}

	cached, ok := store.Stored("sid-1")
	if !ok {
		t.Fatal("expected session to remain cached")
	}
	if cached.Token != "tok" {
		t.Errorf("expected token untouched, got %q", cached.Token)
	}
	if cached.User.FirstName != "New" {
		t.Errorf("expected cached user replaced, got %+v", cached.User)
	}
	if len(upstream.VerifyCalls) != 1 || upstream.VerifyCalls[0] != "tok" {
		t.Errorf("expected one verify with the cached token, got %v", upstream.VerifyCalls)
	}
}

func TestLogin_Success(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	upstream.LoginToken = "tok-123"
	upstream.LoginUser = &domain.User{ID: "u1", Role: domain.RoleHospitalAdmin, HospitalInfo: &domain.HospitalInfo{Name: "City"}}
	outbox := mocks.NewMockOutboxRepository()

	svc := NewSessionService(store, upstream, outbox)

	sid, user, err := svc.Login(context.Background(), "a@b.c", "secret", domain.RoleHospitalAdmin)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sid == "" {
		t.Error("expected a session ID")
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("unexpected user %+v", user)
	}

	cached, ok := store.Stored(sid)
	if !ok || cached.Token != "tok-123" || cached.User == nil {
		t.Errorf("expected token and user cached together, got %+v ok=%v", cached, ok)
	}

	events := outbox.Events()
	if len(events) != 1 || events[0] != ports.EventSessionStarted {
		t.Errorf("expected a session.started event, got %v", events)
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	svc := NewSessionService(store, upstream, nil)

	_, _, err := svc.Login(context.Background(), "a@b.c", "secret", domain.Role("superuser"))
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if len(upstream.LoginCalls) != 0 {
		t.Error("expected no upstream call for unknown role")
	}
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.Seed("existing", ports.Session{Token: "tok", User: &domain.User{ID: "u0"}})

	upstream := mocks.NewMockUpstreamClient()
	upstream.LoginError = &ports.UpstreamError{StatusCode: 401, Message: "invalid credentials"}

	svc := NewSessionService(store, upstream, nil)

	_, _, err := svc.Login(context.Background(), "a@b.c", "wrong", domain.RoleUser)
	var ue *ports.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected the upstream error through, got %v", err)
	}

	if len(store.SaveCalls) != 0 {
		t.Error("expected no session writes on failed login")
	}
	if _, ok := store.Stored("existing"); !ok {
		t.Error("expected prior session untouched by failed login")
	}
}

func TestRegister_ProfileMismatchRejectedBeforeUpstream(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	svc := NewSessionService(store, upstream, nil)

	_, _, err := svc.Register(context.Background(), ports.RegisterParams{
		Email: "a@b.c",
		Role:  domain.RoleHospitalAdmin,
		// hospital_admin without a hospital profile
	})
	if err == nil {
		t.Fatal("expected profile validation error")
	}
	if len(upstream.RegisterCalls) != 0 {
		t.Error("expected no upstream call for an invalid profile")
	}
}

func TestRegister_Success(t *testing.T) {
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()
	upstream.RegisterToken = "tok-new"
	upstream.RegisterUser = &domain.User{ID: "u2", Role: domain.RoleUser}

	svc := NewSessionService(store, upstream, nil)

	sid, user, err := svc.Register(context.Background(), ports.RegisterParams{
		FirstName: "Asha",
		Email:     "a@b.c",
		Password:  "secret",
		Role:      domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user == nil || user.ID != "u2" {
		t.Fatalf("unexpected user %+v", user)
	}
	if cached, ok := store.Stored(sid); !ok || cached.Token != "tok-new" {
		t.Errorf("expected fresh session cached, got %+v ok=%v", cached, ok)
	}
}

func TestLogout_ClearsSessionAndRecordsEvent(t *testing.T) {
	store := mocks.NewMockSessionStore()
	store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1"}})
	outbox := mocks.NewMockOutboxRepository()

	svc := NewSessionService(store, mocks.NewMockUpstreamClient(), outbox)

	if err := svc.Logout(context.Background(), "sid-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := store.Stored("sid-1"); ok {
		t.Error("expected session removed")
	}

	events := outbox.Events()
	if len(events) != 1 || events[0] != ports.EventSessionEnded {
		t.Errorf("expected a session.ended event, got %v", events)
	}
}

func TestLogout_UnknownSessionIsNoError(t *testing.T) {
	store := mocks.NewMockSessionStore()
	svc := NewSessionService(store, mocks.NewMockUpstreamClient(), nil)

	if err := svc.Logout(context.Background(), "never-existed"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
