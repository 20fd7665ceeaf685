package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/session"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

type AuthHandler struct {
	sessions  ports.SessionService
	resources ports.ResourceService
	codec     *session.CookieCodec
}

func NewAuthHandler(sessions ports.SessionService, resources ports.ResourceService, codec *session.CookieCodec) *AuthHandler {
	return &AuthHandler{sessions: sessions, resources: resources, codec: codec}
}

type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AuthResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.sessions.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cookie, err := h.codec.Issue(sid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, AuthResponse{User: user, Redirect: user.Role.DashboardPath()})
}

type RegisterRequest struct {
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	Email         string                `json:"email"`
	Password      string                `json:"password"`
	Role          domain.Role           `json:"role"`
	HospitalInfo  *domain.HospitalInfo  `json:"hospitalInfo,omitempty"`
	BloodBankInfo *domain.BloodBankInfo `json:"bloodBankInfo,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.sessions.Register(r.Context(), ports.RegisterParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		HospitalInfo:  req.HospitalInfo,
		BloodBankInfo: req.BloodBankInfo,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	cookie, err := h.codec.Issue(sid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusCreated, AuthResponse{User: user, Redirect: user.Role.DashboardPath()})
}

// Session resumes and re-verifies the cached session. This is the one place
// the token is re-checked against the backend; the route guard trusts the
// cached user afterwards.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sid, err := h.codec.Decode(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	user, err := h.sessions.Resume(r.Context(), sid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resume session")
		return
	}
	if user == nil {
		http.SetCookie(w, h.codec.Clear())
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*domain.User{"user": user})
}

// Logout always clears the browser cookie, even when the session store
// cannot be reached; a lingering cookie would keep the user logged in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sid, err := h.codec.Decode(r); err == nil {
		if err := h.sessions.Logout(r.Context(), sid); err != nil {
			log.Printf("Failed to clear session %s on logout: %v", sid, err)
		}
		h.resources.DropSession(sid)
	}
	http.SetCookie(w, h.codec.Clear())
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out", "redirect": "/login"})
}
