package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"grantflow/pkg/types"
)

type createGrantRequest struct {
	Amount       string  `json:"amount"`
	Purpose      *string `json:"purpose"`
	GivingFundID int64   `json:"givingFundId"`
	MinistryID   int64   `json:"ministryId"`
}

func (s *Service) handleCreateGrant(w http.ResponseWriter, r *http.Request) {

	var req createGrantRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	amount, err := types.ParseMoney(req.Amount)
	if err != nil {
		s.respondError(w, &types.ValidationError{Field: "amount", Reason: "must be a decimal amount"})
		return
	}

	grant, err := s.grants.CreateGrant(r.Context(), &types.Grant{
		Amount:       amount,
		Purpose:      req.Purpose,
		GivingFundID: req.GivingFundID,
		MinistryID:   req.MinistryID,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, grant)
}

func (s *Service) handleGetGrant(w http.ResponseWriter, r *http.Request) {

	grantID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	grant, err := s.grants.Grant(r.Context(), grantID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grant)
}

func (s *Service) handleListGrants(w http.ResponseWriter, r *http.Request) {

	raw := r.URL.Query().Get("status")
	if raw == "" {
		s.respondError(w, &types.ValidationError{Field: "status", Reason: "query parameter is required"})
		return
	}

	status := types.GrantStatus(raw)
	switch status {
	case types.GrantStatusPending, types.GrantStatusApproved, types.GrantStatusFunded, types.GrantStatusRejected:
	default:
		s.respondError(w, &types.ValidationError{Field: "status", Reason: "unknown status " + strconv.Quote(raw)})
		return
	}

	grants, err := s.grants.GrantsByStatus(r.Context(), status)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grants)
}

func (s *Service) handleApproveGrant(w http.ResponseWriter, r *http.Request) {

	grantID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	grant, err := s.grants.ApproveGrant(r.Context(), grantID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grant)
}

type rejectGrantRequest struct {
	Reason *string `json:"reason"`
}

func (s *Service) handleRejectGrant(w http.ResponseWriter, r *http.Request) {

	grantID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	// The body is optional, and chunked requests report an unknown
	// ContentLength, so decode whatever arrives and treat an empty
	// body as "no reason given".
	var req rejectGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	grant, err := s.grants.RejectGrant(r.Context(), grantID, req.Reason)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grant)
}

func (s *Service) handleFundGrant(w http.ResponseWriter, r *http.Request) {

	grantID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	grant, err := s.grants.FundGrant(r.Context(), grantID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grant)
}
