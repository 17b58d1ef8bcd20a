package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"payables-tracker/internal/core"

	"github.com/go-chi/chi/v5"
)

// classParam maps the {class} URL segment to a vendor class.
func classParam(r *http.Request) (core.VendorClass, error) {
	switch strings.ToLower(chi.URLParam(r, "class")) {
	case "sc", "subcontractor":
		return core.ClassSubcontractor, nil
	case "hs", "hiring":
		return core.ClassHiringService, nil
	default:
		return "", fmt.Errorf("unknown vendor class %q", chi.URLParam(r, "class"))
	}
}

// periodParams reads ?year= and ?month= from the query string.
func periodParams(r *http.Request) (year, month int, err error) {
	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("year query parameter is required")
	}
	month, err = strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month query parameter must be 1-12")
	}
	return year, month, nil
}

// listEntries handles GET /api/entries/{class}?year=&month=. Loading a
// period replays its paid payments on first access.
func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	class, err := classParam(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	year, month, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	entries, err := h.svc.ListEntries(r.Context(), class, year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"entries": entries})
}

// createEntry handles POST /api/entries/{class}?year=&month=.
func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	class, err := classParam(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	year, month, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.CreateEntry(r.Context(), class, year, month, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, entry)
}

// updateEntry handles PUT /api/entries/{class}/{id}?year=&month=.
func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	class, err := classParam(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	year, month, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	entry, err := h.svc.UpdateEntry(r.Context(), class, year, month, chi.URLParam(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, entry)
}

// deleteEntry handles DELETE /api/entries/{class}/{id}?year=&month=.
func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	class, err := classParam(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	year, month, err := periodParams(r)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteEntry(r.Context(), class, year, month, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "deleted"})
}
