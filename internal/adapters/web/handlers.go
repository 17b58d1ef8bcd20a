package web

import (
	"net/http"

	"payables-tracker/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
	log    zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, log zerolog.Logger) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20))

	r.Get("/api/health", h.health)

	// ── Vendor master ─────────────────────────────────────────────────────
	r.Route("/api/vendors", func(r chi.Router) {
		r.Get("/", h.listVendors)
		r.Post("/", h.createVendor)
		r.Get("/{code}", h.getVendor)
		r.Put("/{code}", h.updateVendor)
		r.Delete("/{code}", h.deactivateVendor)
	})

	// ── Billing entries, per vendor class and period ──────────────────────
	// {class} is "sc" or "hs"; the period comes from ?year=&month=.
	r.Route("/api/entries/{class}", func(r chi.Router) {
		r.Get("/", h.listEntries)
		r.Post("/", h.createEntry)
		r.Put("/{id}", h.updateEntry)
		r.Delete("/{id}", h.deleteEntry)
	})

	// ── Payment ledger ────────────────────────────────────────────────────
	r.Route("/api/payments", func(r chi.Router) {
		r.Get("/", h.listPayments)
		r.Post("/", h.createPayment)
		r.Put("/{id}", h.updatePayment)
		r.Post("/{id}/toggle", h.togglePayment)
		r.Delete("/{id}", h.deletePayment)
	})

	// ── Reports ───────────────────────────────────────────────────────────
	r.Get("/api/reports/yearly", h.yearlyReport)

	h.router = r
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
