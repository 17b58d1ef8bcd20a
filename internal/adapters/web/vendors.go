package web

import (
	"encoding/json"
	"net/http"

	"payables-tracker/internal/core"

	"github.com/go-chi/chi/v5"
)

// listVendors handles GET /api/vendors.
func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.ListVendors(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"vendors": vendors})
}

// createVendor handles POST /api/vendors.
func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var input core.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	v, err := h.svc.CreateVendor(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

// getVendor handles GET /api/vendors/{code}.
func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.GetVendor(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

// updateVendor handles PUT /api/vendors/{code}.
func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	var input core.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	v, err := h.svc.UpdateVendor(r.Context(), chi.URLParam(r, "code"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, v)
}

// deactivateVendor handles DELETE /api/vendors/{code}.
func (h *Handler) deactivateVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeactivateVendor(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deactivated"})
}
