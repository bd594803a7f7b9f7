package server

import (
	"net/http"
	"strconv"

	"grantflow/pkg/types"
)

const defaultPageSize = 20

// listMinistriesParams carries the query-string shape of the listing
// operation. The filter fields are optional and conjunctive.
type listMinistriesParams struct {
	types.MinistryFilter
	Limit *int    `form:"limit"`
	After *string `form:"after"`
}

func (s *Service) handleListMinistries(w http.ResponseWriter, r *http.Request) {

	var params listMinistriesParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		s.respondError(w, &types.ValidationError{Field: "query", Reason: "malformed query parameters"})
		return
	}

	if params.Category != nil && !params.Category.Valid() {
		s.respondError(w, &types.ValidationError{Field: "category", Reason: "unknown category " + strconv.Quote(string(*params.Category))})
		return
	}

	limit := defaultPageSize
	if params.Limit != nil {
		limit = *params.Limit
	}

	connection, err := s.ministries.ListMinistries(r.Context(), params.MinistryFilter, limit, params.After)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, connection)
}

type createMinistryRequest struct {
	Name        string  `json:"name"`
	EIN         *string `json:"ein"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Mission     *string `json:"mission"`
	Website     *string `json:"website"`
	City        *string `json:"city"`
	State       *string `json:"state"`
}

func (s *Service) handleCreateMinistry(w http.ResponseWriter, r *http.Request) {

	var req createMinistryRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	ministry := &types.Ministry{
		Name:        req.Name,
		EIN:         req.EIN,
		Category:    types.MinistryCategory(req.Category),
		Description: req.Description,
		Mission:     req.Mission,
		Website:     req.Website,
		City:        req.City,
		State:       req.State,
	}

	if err := s.ministries.CreateMinistry(r.Context(), ministry); err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, ministry)
}

func (s *Service) handleGetMinistry(w http.ResponseWriter, r *http.Request) {

	ministryID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ministry, err := s.ministries.Ministry(r.Context(), ministryID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, ministry)
}

func (s *Service) handleVerifyMinistry(w http.ResponseWriter, r *http.Request) {

	ministryID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ministry, err := s.ministries.VerifyMinistry(r.Context(), ministryID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, ministry)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (s *Service) handleSetMinistryActive(w http.ResponseWriter, r *http.Request) {

	ministryID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req setActiveRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	ministry, err := s.ministries.SetMinistryActive(r.Context(), ministryID, req.Active)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, ministry)
}

func (s *Service) handleDeleteMinistry(w http.ResponseWriter, r *http.Request) {

	ministryID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if err := s.ministries.DeleteMinistry(r.Context(), ministryID); err != nil {
		s.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGrantsByMinistry(w http.ResponseWriter, r *http.Request) {

	ministryID, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if _, err := s.ministries.Ministry(r.Context(), ministryID); err != nil {
		s.respondError(w, err)
		return
	}

	grants, err := s.grants.GrantsByMinistry(r.Context(), ministryID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grants)
}
