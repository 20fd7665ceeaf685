package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/session"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
	"github.com/Tarush5253/swasthya-setu/internal/core/services"
	"github.com/Tarush5253/swasthya-setu/test/mocks"
)

var testKey = []byte("test-signing-key-32-bytes-long!!")

type authFixture struct {
	handler  *AuthHandler
	codec    *session.CookieCodec
	store    *mocks.MockSessionStore
	upstream *mocks.MockUpstreamClient
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	codec := session.NewCookieCodec(testKey, time.Hour)
	store := mocks.NewMockSessionStore()
	upstream := mocks.NewMockUpstreamClient()

	sessionService := services.NewSessionService(store, upstream, nil)
	resourceService := services.NewResourceService(upstream, nil)

	return &authFixture{
		handler:  NewAuthHandler(sessionService, resourceService, codec),
		codec:    codec,
		store:    store,
		upstream: upstream,
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestLoginHandler_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.upstream.LoginToken = "tok-123"
	f.upstream.LoginUser = &domain.User{ID: "u1", Role: domain.RoleHospitalAdmin}

	body := `{"email":"a@b.c","password":"secret","role":"hospital_admin"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected a session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly session cookie")
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Errorf("unexpected user %+v", resp.User)
	}
	if resp.Redirect != "/dashboard/hospital" {
		t.Errorf("expected hospital dashboard redirect, got %q", resp.Redirect)
	}
}

func TestLoginHandler_InvalidBody(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	f.handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(f.upstream.LoginCalls) != 0 {
		t.Error("expected no upstream call for a bad body")
	}
}

func TestLoginHandler_UpstreamRejection(t *testing.T) {
	f := newAuthFixture(t)
	f.upstream.LoginError = &ports.UpstreamError{StatusCode: 401, Message: "invalid credentials"}

	body := `{"email":"a@b.c","password":"wrong","role":"user"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "invalid credentials" {
		t.Errorf("expected the upstream message through, got %q", resp["message"])
	}
	if sessionCookie(t, rec) != nil {
		t.Error("expected no cookie on failed login")
	}
}

func TestRegisterHandler_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.upstream.RegisterToken = "tok-new"
	f.upstream.RegisterUser = &domain.User{ID: "u2", Role: domain.RoleUser}

	body := `{"firstName":"Asha","email":"a@b.c","password":"secret","role":"user"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if sessionCookie(t, rec) == nil {
		t.Error("expected a session cookie after registration")
	}
}

func TestRegisterHandler_ProfileMismatch(t *testing.T) {
	f := newAuthFixture(t)

	body := `{"email":"a@b.c","password":"secret","role":"hospital_admin"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	f.handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing hospital profile, got %d", rec.Code)
	}
	if len(f.upstream.RegisterCalls) != 0 {
		t.Error("expected no upstream call for an invalid profile")
	}
}

func TestSessionHandler_NoCookie(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()

	f.handler.Session(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestSessionHandler_ResumesVerifiedSession(t *testing.T) {
	f := newAuthFixture(t)
	f.store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1", Role: domain.RoleUser}})
	f.upstream.VerifyUser = &domain.User{ID: "u1", FirstName: "Fresh", Role: domain.RoleUser}

	cookie, err := f.codec.Issue("sid-1")
	if err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	f.handler.Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]*domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["user"] == nil || resp["user"].FirstName != "Fresh" {
		t.Errorf("expected the re-verified user, got %+v", resp["user"])
	}
}

func TestSessionHandler_FailedVerificationClearsCookie(t *testing.T) {
	f := newAuthFixture(t)
	f.store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1", Role: domain.RoleUser}})
	f.upstream.VerifyError = &ports.UpstreamError{StatusCode: 401, Message: "token expired"}

	cookie, err := f.codec.Issue("sid-1")
	if err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	f.handler.Session(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	cleared := sessionCookie(t, rec)
	if cleared == nil || cleared.MaxAge != -1 {
		t.Error("expected the cookie to be cleared")
	}
	if _, ok := f.store.Stored("sid-1"); ok {
		t.Error("expected the cached session gone")
	}
}

func TestLogoutHandler_ClearsEverything(t *testing.T) {
	f := newAuthFixture(t)
	f.store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1", Role: domain.RoleUser}})

	cookie, err := f.codec.Issue("sid-1")
	if err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	f.handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cleared := sessionCookie(t, rec)
	if cleared == nil || cleared.MaxAge != -1 {
		t.Error("expected the cookie to be cleared")
	}
	if _, ok := f.store.Stored("sid-1"); ok {
		t.Error("expected the cached session gone")
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["redirect"] != "/login" {
		t.Errorf("expected redirect to /login, got %q", resp["redirect"])
	}
}

func TestLogoutHandler_StoreFailureStillClearsCookie(t *testing.T) {
	f := newAuthFixture(t)
	f.store.Seed("sid-1", ports.Session{Token: "tok", User: &domain.User{ID: "u1", Role: domain.RoleUser}})
	f.store.DeleteError = errors.New("redis unreachable")

	cookie, err := f.codec.Issue("sid-1")
	if err != nil {
		t.Fatalf("failed to issue cookie: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	f.handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite the store failure, got %d", rec.Code)
	}
	cleared := sessionCookie(t, rec)
	if cleared == nil || cleared.MaxAge != -1 {
		t.Error("expected the cookie to be cleared")
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["redirect"] != "/login" {
		t.Errorf("expected redirect to /login, got %q", resp["redirect"])
	}
}

func TestLogoutHandler_NoCookieStillSucceeds(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()

	f.handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
