package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidflow/fundflow-backend/internal/transport/middleware"
)

// Handlers groups every REST handler served by the router.
type Handlers struct {
	Health        *HealthHandler
	Organizations *OrganizationHandler
	Campaigns     *CampaignHandler
	Donations     *DonationHandler
	Disbursements *DisbursementHandler
	Audit         *AuditHandler
	Admin         *AdminHandler
}

// NewRouter builds the HTTP router. Middleware runs in the order given and
// nil entries are skipped.
// Every route is also served under /api for older clients.
func NewRouter(h Handlers, mws ...middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(mws...))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/", h.Health.Banner)
	mountRoutes(r, h)
	r.Route("/api", func(r chi.Router) {
		mountRoutes(r, h)
	})

	return r
}

func mountRoutes(r chi.Router, h Handlers) {
	r.Get("/health", h.Health.Health)
	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)

	r.Route("/organizations", func(r chi.Router) {
		r.Post("/", h.Organizations.Create)
		r.Get("/", h.Organizations.List)
		r.Get("/wallet/{addr}", h.Organizations.GetByWallet)
		r.Get("/{id}", h.Organizations.Get)
		r.Patch("/{id}", h.Organizations.Update)
	})

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", h.Campaigns.Create)
		r.Get("/", h.Campaigns.List)
		r.Get("/{id}", h.Campaigns.Get)
		r.Patch("/{id}", h.Campaigns.Update)
		r.Post("/{id}/close", h.Campaigns.Close)
		r.Get("/{id}/stats", h.Campaigns.Stats)
		r.Get("/{id}/onchain", h.Campaigns.OnChain)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Post("/", h.Donations.Donate)
		r.Get("/{campaign_id}", h.Donations.List)
	})

	r.Route("/disbursements", func(r chi.Router) {
		r.Post("/", h.Disbursements.Propose)
		r.Get("/campaign/{campaign_id}", h.Disbursements.ListByCampaign)
		r.Get("/{id}", h.Disbursements.Get)
		r.Post("/{id}/approve", h.Disbursements.Approve)
		r.Post("/{id}/execute", h.Disbursements.Execute)
		r.Post("/{id}/reject", h.Disbursements.Reject)
	})

	r.Route("/audit", func(r chi.Router) {
		r.Get("/verify", h.Audit.Verify)
		r.Get("/{campaign_id}", h.Audit.Campaign)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/quorum", h.Admin.Quorum)
		r.Put("/quorum", h.Admin.SetQuorum)
	})
}
