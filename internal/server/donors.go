package server

import (
	"net/http"

	"grantflow/pkg/types"
)

type createDonorRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

func (s *Service) handleCreateDonor(w http.ResponseWriter, r *http.Request) {

	var req createDonorRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	donor := &types.Donor{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.donors.CreateDonor(r.Context(), donor); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, donor)
}

func (s *Service) handleGetDonor(w http.ResponseWriter, r *http.Request) {

	donorID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	donor, err := s.donors.Donor(r.Context(), donorID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, donor)
}

func (s *Service) handleListDonors(w http.ResponseWriter, r *http.Request) {

	donors, err := s.donors.Donors(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, donors)
}

func (s *Service) handleFundsByDonor(w http.ResponseWriter, r *http.Request) {

	donorID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if _, err := s.donors.Donor(r.Context(), donorID); err != nil {
		s.respondError(w, err)
		return
	}

	funds, err := s.funds.FundsByDonor(r.Context(), donorID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, funds)
}
