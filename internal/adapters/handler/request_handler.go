package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/middleware"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

type RequestHandler struct {
	resources ports.ResourceService
}

func NewRequestHandler(resources ports.ResourceService) *RequestHandler {
	return &RequestHandler{resources: resources}
}

func (h *RequestHandler) CreateBedRequest(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var params ports.BedRequestParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.resources.CreateBedRequest(r.Context(), sid, sess, r.PathValue("hospitalId"), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RequestHandler) CreateBloodRequest(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var params ports.BloodRequestParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.resources.CreateBloodRequest(r.Context(), sid, sess, r.PathValue("bloodBankId"), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *RequestHandler) ListBedRequests(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	requests, err := h.resources.BedRequests(r.Context(), sid, sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.BedRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) ListBloodRequests(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	requests, err := h.resources.BloodRequests(r.Context(), sid, sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.BloodRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

type statusUpdateRequest struct {
	Status domain.RequestStatus `json:"status"`
}

func (h *RequestHandler) UpdateBedRequestStatus(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.resources.UpdateBedRequestStatus(r.Context(), sid, sess, r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) UpdateBloodRequestStatus(w http.ResponseWriter, r *http.Request) {
	sid, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.resources.UpdateBloodRequestStatus(r.Context(), sid, sess, r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) History(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	history, err := h.resources.History(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if history == nil {
		history = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, history)
}
