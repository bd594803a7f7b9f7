package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"grantflow/pkg/cursor"
	"grantflow/pkg/types"
)

func TestListMinistries(t *testing.T) {
	t.Run("decodes filter and pagination params", func(t *testing.T) {
		var gotFilter types.MinistryFilter
		var gotLimit int
		var gotAfter *string

		ministries := &fakeMinistries{
			listFn: func(_ context.Context, filter types.MinistryFilter, limit int, after *string) (*types.MinistryConnection, error) {
				gotFilter = filter
				gotLimit = limit
				gotAfter = after
				return &types.MinistryConnection{Edges: []types.MinistryEdge{}}, nil
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		after := cursor.Encode(cursor.EntityMinistry, 5)
		rec := doRequest(t, handler, http.MethodGet,
			"/api/ministries?category=MISSIONS&verified=true&search=hope&limit=5&after="+after, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}

		if gotFilter.Category == nil || *gotFilter.Category != types.MinistryCategoryMissions {
			t.Errorf("category filter = %v", gotFilter.Category)
		}
		if gotFilter.Verified == nil || !*gotFilter.Verified {
			t.Errorf("verified filter = %v", gotFilter.Verified)
		}
		if gotFilter.Search == nil || *gotFilter.Search != "hope" {
			t.Errorf("search filter = %v", gotFilter.Search)
		}
		if gotFilter.Active != nil || gotFilter.State != nil {
			t.Errorf("absent filters should stay nil: %+v", gotFilter)
		}
		if gotLimit != 5 {
			t.Errorf("limit = %d, want 5", gotLimit)
		}
		if gotAfter == nil || *gotAfter != after {
			t.Errorf("after = %v, want %s", gotAfter, after)
		}
	})

	t.Run("defaults limit when absent", func(t *testing.T) {
		ministries := &fakeMinistries{
			listFn: func(_ context.Context, _ types.MinistryFilter, limit int, _ *string) (*types.MinistryConnection, error) {
				if limit != 20 {
					t.Errorf("limit = %d, want default 20", limit)
				}
				return &types.MinistryConnection{Edges: []types.MinistryEdge{}}, nil
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		rec := doRequest(t, handler, http.MethodGet, "/api/ministries", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		handler := newTestHandler(t, testStores{})

		rec := doRequest(t, handler, http.MethodGet, "/api/ministries?category=BAKERY", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid cursor maps to 400", func(t *testing.T) {
		ministries := &fakeMinistries{
			listFn: func(context.Context, types.MinistryFilter, int, *string) (*types.MinistryConnection, error) {
				return nil, cursor.ErrInvalidCursor
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		rec := doRequest(t, handler, http.MethodGet, "/api/ministries?after=garbage", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("renders connection shape", func(t *testing.T) {
		end := cursor.Encode(cursor.EntityMinistry, 2)
		start := cursor.Encode(cursor.EntityMinistry, 1)
		ministries := &fakeMinistries{
			listFn: func(context.Context, types.MinistryFilter, int, *string) (*types.MinistryConnection, error) {
				return &types.MinistryConnection{
					Edges: []types.MinistryEdge{
						{Node: &types.Ministry{ID: 1, Name: "Grace Community Church"}, Cursor: start},
						{Node: &types.Ministry{ID: 2, Name: "Hope Missions"}, Cursor: end},
					},
					PageInfo: types.PageInfo{
						HasNextPage: true,
						StartCursor: &start,
						EndCursor:   &end,
						TotalCount:  12,
					},
				}, nil
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		rec := doRequest(t, handler, http.MethodGet, "/api/ministries?limit=2", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got types.MinistryConnection
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(got.Edges) != 2 {
			t.Fatalf("edges = %d, want 2", len(got.Edges))
		}
		if !got.PageInfo.HasNextPage || got.PageInfo.TotalCount != 12 {
			t.Errorf("pageInfo = %+v", got.PageInfo)
		}
		if got.Edges[1].Cursor != end {
			t.Errorf("edge cursor = %q, want %q", got.Edges[1].Cursor, end)
		}
	})
}

func TestCreateMinistry(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ministries := &fakeMinistries{
			createFn: func(_ context.Context, m *types.Ministry) error {
				m.ID = 9
				m.Active = true
				return nil
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		body := `{"name": "Grace Community Church", "category": "CHURCH", "ein": "12-3456789"}`
		rec := doRequest(t, handler, http.MethodPost, "/api/ministries", strings.NewReader(body))
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
		}
	})

	t.Run("bad EIN", func(t *testing.T) {
		ministries := &fakeMinistries{
			createFn: func(_ context.Context, m *types.Ministry) error {
				return &types.ValidationError{Field: "ein", Reason: "must match NN-NNNNNNN"}
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		body := `{"name": "Grace", "category": "CHURCH", "ein": "123"}`
		rec := doRequest(t, handler, http.MethodPost, "/api/ministries", strings.NewReader(body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDeleteMinistry(t *testing.T) {
	t.Run("referential integrity maps to 409", func(t *testing.T) {
		ministries := &fakeMinistries{
			deleteFn: func(context.Context, int64) error {
				return types.ErrMinistryHasGrants
			},
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		rec := doRequest(t, handler, http.MethodDelete, "/api/ministries/3", nil)
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ministries := &fakeMinistries{
			deleteFn: func(context.Context, int64) error { return nil },
		}
		handler := newTestHandler(t, testStores{ministries: ministries})

		rec := doRequest(t, handler, http.MethodDelete, "/api/ministries/3", nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}
