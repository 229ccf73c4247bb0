package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/internal/service/organization"
)

type organizationService interface {
	Create(ctx context.Context, input organization.CreateInput) (*domain.Organization, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetByWallet(ctx context.Context, wallet string) (*domain.Organization, error)
	List(ctx context.Context, limit, offset int) (*organization.OrganizationPage, error)
	Update(ctx context.Context, input organization.UpdateInput) (*domain.Organization, error)
}

// OrganizationHandler serves /organizations.
type OrganizationHandler struct {
	svc organizationService
	log *slog.Logger
}

// NewOrganizationHandler creates an OrganizationHandler.
func NewOrganizationHandler(svc organizationService, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, log: logger.With("handler", "organization")}
}

type createOrganizationRequest struct {
	Name        string  `json:"name"`
	Wallet      string  `json:"wallet_address"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
	Actor       string  `json:"actor"`
}

type updateOrganizationRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
	Verified    *bool   `json:"verified"`
	Actor       string  `json:"actor"`
}

// Create handles POST /organizations.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.svc.Create(r.Context(), organization.CreateInput{
		Wallet:      req.Wallet,
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Actor:       req.Actor,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// List handles GET /organizations.
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /organizations/{id}.
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	org, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// GetByWallet handles GET /organizations/wallet/{addr}.
func (h *OrganizationHandler) GetByWallet(w http.ResponseWriter, r *http.Request) {
	org, err := h.svc.GetByWallet(r.Context(), chi.URLParam(r, "addr"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}

// Update handles PATCH /organizations/{id}.
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	org, err := h.svc.Update(r.Context(), organization.UpdateInput{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Verified:    req.Verified,
		Actor:       req.Actor,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, org)
}
