package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/disbursement"
)

type disbursementService interface {
	Propose(ctx context.Context, input disbursement.ProposeInput) (*domain.Disbursement, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Disbursement, error)
	Approve(ctx context.Context, input disbursement.ApproveInput) (*domain.Disbursement, error)
	Execute(ctx context.Context, input disbursement.ExecuteInput) (*domain.Disbursement, error)
	Reject(ctx context.Context, input disbursement.RejectInput) (*domain.Disbursement, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Disbursement, error)
}

// DisbursementHandler serves /disbursements.
type DisbursementHandler struct {
	svc disbursementService
	log *slog.Logger
}

// NewDisbursementHandler creates a DisbursementHandler.
func NewDisbursementHandler(svc disbursementService, logger *slog.Logger) *DisbursementHandler {
	return &DisbursementHandler{svc: svc, log: logger.With("handler", "disbursement")}
}

type proposeRequest struct {
	CampaignID       uuid.UUID `json:"campaign_id"`
	Recipient        string    `json:"recipient"`
	RecipientAddress string    `json:"recipient_address"`
	Amount           int64     `json:"amount"`
	Proposer         string    `json:"proposer"`
	Nonce            string    `json:"nonce"`
}

type approveRequest struct {
	Approvers         []string `json:"approvers"`
	ApproverAddresses []string `json:"approver_addresses"`
}

type executeRequest struct {
	TxHash string `json:"tx_hash"`
	Actor  string `json:"actor"`
}

type rejectRequest struct {
	Actor string `json:"actor"`
}

// Propose handles POST /disbursements.
func (h *DisbursementHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req proposeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	recipient := req.Recipient
	if recipient == "" {
		recipient = req.RecipientAddress
	}

	d, err := h.svc.Propose(r.Context(), disbursement.ProposeInput{
		CampaignID: req.CampaignID,
		Recipient:  recipient,
		Amount:     req.Amount,
		Proposer:   req.Proposer,
		Nonce:      req.Nonce,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

// Get handles GET /disbursements/{id}.
func (h *DisbursementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Approve handles POST /disbursements/{id}/approve.
func (h *DisbursementHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req approveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	approvers := req.Approvers
	if len(approvers) == 0 {
		approvers = req.ApproverAddresses
	}

	d, err := h.svc.Approve(r.Context(), disbursement.ApproveInput{ID: id, Approvers: approvers})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Execute handles POST /disbursements/{id}/execute.
func (h *DisbursementHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req executeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Execute(r.Context(), disbursement.ExecuteInput{ID: id, TxHash: req.TxHash, Actor: req.Actor})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// Reject handles POST /disbursements/{id}/reject.
func (h *DisbursementHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Reject(r.Context(), disbursement.RejectInput{ID: id, Actor: req.Actor})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// ListByCampaign handles GET /disbursements/campaign/{campaign_id}.
func (h *DisbursementHandler) ListByCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathUUID(r, "campaign_id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	list, err := h.svc.ListByCampaign(r.Context(), campaignID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if list == nil {
		list = []domain.Disbursement{}
	}

	writeJSON(w, http.StatusOK, list)
}
