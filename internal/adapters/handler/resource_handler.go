package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Tarush5253/swasthya-setu/internal/adapters/middleware"
	"github.com/Tarush5253/swasthya-setu/internal/core/domain"
	"github.com/Tarush5253/swasthya-setu/internal/core/ports"
)

type ResourceHandler struct {
	resources ports.ResourceService
}

func NewResourceHandler(resources ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// ListHospitals replaces the cached list with a fresh upstream fetch and
// returns it. An empty upstream list is a valid, empty response.
func (h *ResourceHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.resources.Hospitals(r.Context(), true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if hospitals == nil {
		hospitals = []domain.Hospital{}
	}
	writeJSON(w, http.StatusOK, hospitals)
}

func (h *ResourceHandler) ListBloodBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.resources.BloodBanks(r.Context(), true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if banks == nil {
		banks = []domain.BloodBank{}
	}
	writeJSON(w, http.StatusOK, banks)
}

// Status reports the fetch state of the public collections so a client can
// tell an empty list apart from one that is still loading or failed to load.
func (h *ResourceHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]ports.CollectionStatus{
		"hospitals":  h.resources.HospitalsStatus(),
		"bloodBanks": h.resources.BloodBanksStatus(),
	})
}

type bedUpdateRequest struct {
	Beds domain.BedInventory `json:"beds"`
}

// UpdateBeds accepts the editable total/available pairs, reconciles the
// derived occupied counts, and pushes the result upstream. The response is
// the server's normalized hospital record.
func (h *ResourceHandler) UpdateBeds(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req bedUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hospital, err := h.resources.UpdateBeds(r.Context(), sess, r.PathValue("id"), req.Beds)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hospital)
}

type stockUpdateRequest struct {
	Stock domain.BloodStock `json:"stock"`
}

func (h *ResourceHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req stockUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bank, err := h.resources.UpdateStock(r.Context(), sess, r.PathValue("id"), req.Stock)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bank)
}
