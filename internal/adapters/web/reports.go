package web

import (
	"net/http"
	"strconv"
)

// yearlyReport handles GET /api/reports/yearly?year=&vendor=.
func (h *Handler) yearlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, r, "year query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	report, err := h.svc.YearlyReport(r.Context(), r.URL.Query().Get("vendor"), year)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}
