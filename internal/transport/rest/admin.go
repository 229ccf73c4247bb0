package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aidflow/fundflow-backend/internal/service/governance"
)

type governanceService interface {
	Settings(ctx context.Context) (governance.Settings, error)
	SetQuorum(ctx context.Context, input governance.SetQuorumInput) (governance.Settings, error)
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	governance governanceService
	log        *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(governance governanceService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		governance: governance,
		log:        logger.With("handler", "admin"),
	}
}

type setQuorumRequest struct {
	Quorum int    `json:"quorum"`
	Caller string `json:"caller"`
}

// Quorum returns the ledger admin and approval quorum.
// GET /admin/quorum
func (h *AdminHandler) Quorum(w http.ResponseWriter, r *http.Request) {
	settings, err := h.governance.Settings(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// SetQuorum changes the approval quorum on the ledger.
// PUT /admin/quorum {"quorum": 2}
func (h *AdminHandler) SetQuorum(w http.ResponseWriter, r *http.Request) {
	var req setQuorumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.governance.SetQuorum(r.Context(), governance.SetQuorumInput{
		Quorum: req.Quorum,
		Caller: req.Caller,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}
