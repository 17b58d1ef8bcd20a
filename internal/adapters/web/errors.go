package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"payables-tracker/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service-layer errors to HTTP responses. Not-found
// sentinels become 404; everything else is a 400 — the service layer never
// raises internal errors for bad numeric input (it coerces), so remaining
// failures are caller mistakes or storage faults surfaced as-is.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrVendorNotFound):
		writeError(w, r, err.Error(), "VENDOR_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrEntryNotFound):
		writeError(w, r, err.Error(), "ENTRY_NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrPaymentNotFound):
		writeError(w, r, err.Error(), "PAYMENT_NOT_FOUND", http.StatusNotFound)
	default:
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	}
}
