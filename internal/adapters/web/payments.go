package web

import (
	"encoding/json"
	"net/http"

	"payables-tracker/internal/app"

	"github.com/go-chi/chi/v5"
)

// listPayments handles GET /api/payments.
func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListPayments(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"payments": payments})
}

// createPayment handles POST /api/payments.
func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req app.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.CreatePayment(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// updatePayment handles PUT /api/payments/{id}.
func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var req app.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.UpdatePayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// togglePayment handles POST /api/payments/{id}/toggle.
func (h *Handler) togglePayment(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.TogglePayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// deletePayment handles DELETE /api/payments/{id}.
func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}
