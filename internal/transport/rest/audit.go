package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
)

type auditService interface {
	GetAudit(ctx context.Context, campaignID uuid.UUID) (*domain.CampaignAudit, error)
	Verify(ctx context.Context) (domain.ChainVerification, error)
}

// AuditHandler serves /audit.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

// Campaign handles GET /audit/{campaign_id}.
func (h *AuditHandler) Campaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathUUID(r, "campaign_id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	history, err := h.svc.GetAudit(r.Context(), campaignID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// Verify handles GET /audit/verify.
func (h *AuditHandler) Verify(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Verify(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
