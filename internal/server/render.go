package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"grantflow/pkg/cursor"
	"grantflow/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

type errorResponse struct {
	Error  string         `json:"error"`
	Detail map[string]any `json:"detail,omitempty"`
}

// respondError translates the error taxonomy into HTTP statuses: not-found
// → 404, malformed input and cursors → 400, lifecycle/precondition/balance
// violations → 422, constraint conflicts → 409.
func (s *Service) respondError(w http.ResponseWriter, err error) {

	var validationErr *types.ValidationError
	var transitionErr *types.InvalidTransitionError
	var balanceErr *types.InsufficientBalanceError

	switch {
	case errors.Is(err, types.ErrMinistryNotFound),
		errors.Is(err, types.ErrDonorNotFound),
		errors.Is(err, types.ErrFundNotFound),
		errors.Is(err, types.ErrGrantNotFound):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, cursor.ErrInvalidCursor),
		errors.Is(err, types.ErrInvalidAmount),
		errors.As(err, &validationErr):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.As(err, &transitionErr):
		s.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  transitionErr.Error(),
			Detail: map[string]any{"currentStatus": transitionErr.Current},
		})

	case errors.As(err, &balanceErr):
		s.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: balanceErr.Error(),
			Detail: map[string]any{
				"available": balanceErr.Available.String(),
				"required":  balanceErr.Required.String(),
			},
		})

	case errors.Is(err, types.ErrMinistryNotVerified),
		errors.Is(err, types.ErrMinistryInactive),
		errors.Is(err, types.ErrFundInactive),
		errors.Is(err, types.ErrGrantAlreadyFunded),
		errors.Is(err, types.ErrGrantAlreadyRejected):
		s.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})

	case errors.Is(err, types.ErrMinistryHasGrants),
		errors.Is(err, types.ErrDuplicateEmail):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})

	default:
		s.logger.WithError(err).Error("internal error")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Service) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

func idParam(r *http.Request) (int64, error) {
	raw := flow.Param(r.Context(), "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &types.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}
