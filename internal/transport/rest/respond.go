package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aidflow/fundflow-backend/internal/domain"
	"github.com/aidflow/fundflow-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error onto a status code. Internal errors are
// logged with the request id and the client only sees the correlation id.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve *domain.ValidationError
		re *domain.RuleError
		ce *domain.ChainError
	)
	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: ve.Error()}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &re):
		writeError(w, http.StatusBadRequest, re.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &ce) && errors.Is(ce.Kind, domain.ErrChainRejected):
		writeError(w, http.StatusBadRequest, ce.Error())
	case errors.Is(err, domain.ErrChainTransient):
		log.WarnContext(r.Context(), "ledger unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "ledger unavailable; retry with the same nonce")
	default:
		id := ctxutil.RequestIDFromCtx(r.Context())
		log.ErrorContext(r.Context(), "internal error",
			slog.String("request_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error; correlation id: "+id)
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("invalid request body: %w", err)
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// pageParams reads limit and offset. Defaults and caps are left to the
// services.
func pageParams(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
