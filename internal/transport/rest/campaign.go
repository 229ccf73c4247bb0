package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/campaign"
)

type campaignService interface {
	Create(ctx context.Context, input campaign.CreateInput) (*domain.Campaign, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	List(ctx context.Context, input campaign.ListInput) (*campaign.CampaignPage, error)
	Update(ctx context.Context, input campaign.UpdateInput) (*domain.Campaign, error)
	Close(ctx context.Context, input campaign.CloseInput) (*domain.Campaign, error)
	Stats(ctx context.Context, id uuid.UUID) (*domain.CampaignStats, error)
	OnChain(ctx context.Context, id uuid.UUID) (*campaign.OnChainCampaign, error)
}

// CampaignHandler serves /campaigns.
type CampaignHandler struct {
	svc campaignService
	log *slog.Logger
}

// NewCampaignHandler creates a CampaignHandler.
func NewCampaignHandler(svc campaignService, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{svc: svc, log: logger.With("handler", "campaign")}
}

type createCampaignRequest struct {
	OrgID       uuid.UUID `json:"org_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Goal        int64     `json:"goal"`
	GoalAmount  int64     `json:"goal_amount"`
	Deadline    time.Time `json:"deadline"`
	Nonce       string    `json:"nonce"`
	Actor       string    `json:"actor"`
}

type updateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Actor       string  `json:"actor"`
}

type closeCampaignRequest struct {
	Actor string `json:"actor"`
}

// Create handles POST /campaigns. goal_amount is accepted for older clients.
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	goal := req.Goal
	if goal == 0 {
		goal = req.GoalAmount
	}

	c, err := h.svc.Create(r.Context(), campaign.CreateInput{
		OrgID:       req.OrgID,
		Name:        req.Name,
		Description: req.Description,
		Goal:        goal,
		Deadline:    req.Deadline,
		Nonce:       req.Nonce,
		Actor:       req.Actor,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// List handles GET /campaigns?org_id=&status=&limit=&offset=.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input := campaign.ListInput{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	}
	if v := r.URL.Query().Get("org_id"); v != "" {
		orgID, err := uuid.Parse(v)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("org_id", "must be a UUID"))
			return
		}
		input.OrgID = &orgID
	}

	page, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /campaigns/{id}.
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Update handles PATCH /campaigns/{id}.
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), campaign.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Actor:       req.Actor,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Close handles POST /campaigns/{id}/close.
func (h *CampaignHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req closeCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Close(r.Context(), campaign.CloseInput{ID: id, Actor: req.Actor})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Stats handles GET /campaigns/{id}/stats.
func (h *CampaignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	stats, err := h.svc.Stats(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// OnChain handles GET /campaigns/{id}/onchain.
func (h *CampaignHandler) OnChain(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	oc, err := h.svc.OnChain(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, oc)
}
