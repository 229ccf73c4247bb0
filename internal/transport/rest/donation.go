package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/donation"
)

type donationService interface {
	Donate(ctx context.Context, input donation.DonateInput) (*domain.Donation, error)
	List(ctx context.Context, input donation.ListInput) (*domain.DonationPage, error)
}

// DonationHandler serves /donations.
type DonationHandler struct {
	svc donationService
	log *slog.Logger
}

// NewDonationHandler creates a DonationHandler.
func NewDonationHandler(svc donationService, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{svc: svc, log: logger.With("handler", "donation")}
}

type donateRequest struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Donor      string    `json:"donor_address"`
	Amount     int64     `json:"amount"`
	TxHash     string    `json:"tx_hash"`
	Nonce      string    `json:"nonce"`
}

// Donate handles POST /donations.
func (h *DonationHandler) Donate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.svc.Donate(r.Context(), donation.DonateInput{
		CampaignID: req.CampaignID,
		Donor:      req.Donor,
		Amount:     req.Amount,
		TxHash:     req.TxHash,
		Nonce:      req.Nonce,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

// List handles GET /donations/{campaign_id}?donor_address=&limit=&offset=.
func (h *DonationHandler) List(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathUUID(r, "campaign_id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	limit, offset, err := pageParams(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.svc.List(r.Context(), donation.ListInput{
		CampaignID: campaignID,
		Donor:      r.URL.Query().Get("donor_address"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
