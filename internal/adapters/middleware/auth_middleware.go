package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/session"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionID"
	SessionKey   contextKey = "session"
)

// RouteGuard gates handlers on a cached, role-checked session. It decides one
// of three outcomes per request: continue, send to /login, or send the user
// to their own dashboard.
type RouteGuard struct {
	codec *session.CookieCodec
	store ports.SessionStore
}

func NewRouteGuard(codec *session.CookieCodec, store ports.SessionStore) *RouteGuard {
	return &RouteGuard{codec: codec, store: store}
}

// RequireRole allows only users whose role is in the allow-list. An empty
// list means any logged-in user.
func (g *RouteGuard) RequireRole(roles []domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, err := g.codec.Decode(r)
		if err != nil {
			g.toLogin(w, r)
			return
		}

		sess, err := g.store.Load(r.Context(), sid)
		if err != nil {
			if err != ports.ErrSessionNotFound {
				log.Printf("route guard: session load failed: %v", err)
			}
			g.toLogin(w, r)
			return
		}
		if sess.User == nil || sess.Token == "" {
			g.toLogin(w, r)
			return
		}

		if len(roles) > 0 && !roleAllowed(sess.User.Role, roles) {
			// Wrong role: send the user to their own dashboard.
			g.redirect(w, r, sess.User.Role.DashboardPath(), http.StatusForbidden, "forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sid)
		ctx = context.WithValue(ctx, SessionKey, *sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *RouteGuard) toLogin(w http.ResponseWriter, r *http.Request) {
	g.redirect(w, r, "/login", http.StatusUnauthorized, "not logged in")
}

// redirect sends browsers a 303 to target; API clients get the status code
// with the target in the body so they can navigate themselves.
func (g *RouteGuard) redirect(w http.ResponseWriter, r *http.Request, target string, apiStatus int, message string) {
	if wantsHTML(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiStatus)
	_, _ = w.Write([]byte(`{"message":"` + message + `","redirect":"` + target + `"}`))
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func roleAllowed(role domain.Role, roles []domain.Role) bool {
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// SessionFromContext returns the guard-injected session for the request.
func SessionFromContext(ctx context.Context) (string, ports.Session, bool) {
	sid, ok := ctx.Value(SessionIDKey).(string)
	if !ok {
		return "", ports.Session{}, false
	}
	sess, ok := ctx.Value(SessionKey).(ports.Session)
	if !ok {
		return "", ports.Session{}, false
	}
	return sid, sess, true
}
