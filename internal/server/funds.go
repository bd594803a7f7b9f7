package server

import (
	"net/http"

	"grantflow/pkg/types"
)

type createFundRequest struct {
	DonorID        int64   `json:"donorId"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	InitialBalance *string `json:"initialBalance"`
}

func (s *Service) handleCreateFund(w http.ResponseWriter, r *http.Request) {

	var req createFundRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	fund := &types.GivingFund{
		DonorID:     req.DonorID,
		Name:        req.Name,
		Description: req.Description,
	}

	if req.InitialBalance != nil {
		balance, err := types.ParseMoney(*req.InitialBalance)
		if err != nil {
			s.respondError(w, &types.ValidationError{Field: "initialBalance", Reason: "must be a decimal amount"})
			return
		}
		fund.Balance = balance
	}

	if err := s.funds.CreateFund(r.Context(), fund); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, fund)
}

func (s *Service) handleGetFund(w http.ResponseWriter, r *http.Request) {

	fundID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	fund, err := s.funds.Fund(r.Context(), fundID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, fund)
}

type addFundsRequest struct {
	Amount string `json:"amount"`
}

// handleAddFunds is the contribution operation: the only public path that
// increases a fund balance.
func (s *Service) handleAddFunds(w http.ResponseWriter, r *http.Request) {

	fundID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req addFundsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	amount, err := types.ParseMoney(req.Amount)
	if err != nil {
		s.respondError(w, &types.ValidationError{Field: "amount", Reason: "must be a decimal amount"})
		return
	}

	fund, err := s.funds.Contribute(r.Context(), fundID, amount)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, fund)
}
