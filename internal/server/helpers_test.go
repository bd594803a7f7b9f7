package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"grantflow/internal/server"
	"grantflow/pkg/types"

	"github.com/sirupsen/logrus"
)

var errUnexpectedCall = errors.New("unexpected store call")

type fakeMinistries struct {
	createFn    func(ctx context.Context, m *types.Ministry) error
	getFn       func(ctx context.Context, id int64) (*types.Ministry, error)
	verifyFn    func(ctx context.Context, id int64) (*types.Ministry, error)
	setActiveFn func(ctx context.Context, id int64, active bool) (*types.Ministry, error)
	deleteFn    func(ctx context.Context, id int64) error
	listFn      func(ctx context.Context, filter types.MinistryFilter, limit int, after *string) (*types.MinistryConnection, error)
}

func (f *fakeMinistries) CreateMinistry(ctx context.Context, m *types.Ministry) error {
	if f.createFn == nil {
		return errUnexpectedCall
	}
	return f.createFn(ctx, m)
}

func (f *fakeMinistries) Ministry(ctx context.Context, id int64) (*types.Ministry, error) {
	if f.getFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getFn(ctx, id)
}

func (f *fakeMinistries) VerifyMinistry(ctx context.Context, id int64) (*types.Ministry, error) {
	if f.verifyFn == nil {
		return nil, errUnexpectedCall
	}
	return f.verifyFn(ctx, id)
}

func (f *fakeMinistries) SetMinistryActive(ctx context.Context, id int64, active bool) (*types.Ministry, error) {
	if f.setActiveFn == nil {
		return nil, errUnexpectedCall
	}
	return f.setActiveFn(ctx, id, active)
}

func (f *fakeMinistries) DeleteMinistry(ctx context.Context, id int64) error {
	if f.deleteFn == nil {
		return errUnexpectedCall
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeMinistries) ListMinistries(ctx context.Context, filter types.MinistryFilter, limit int, after *string) (*types.MinistryConnection, error) {
	if f.listFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listFn(ctx, filter, limit, after)
}

type fakeDonors struct {
	createFn func(ctx context.Context, d *types.Donor) error
	getFn    func(ctx context.Context, id int64) (*types.Donor, error)
	listFn   func(ctx context.Context) ([]*types.Donor, error)
}

func (f *fakeDonors) CreateDonor(ctx context.Context, d *types.Donor) error {
	if f.createFn == nil {
		return errUnexpectedCall
	}
	return f.createFn(ctx, d)
}

func (f *fakeDonors) Donor(ctx context.Context, id int64) (*types.Donor, error) {
	if f.getFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getFn(ctx, id)
}

func (f *fakeDonors) Donors(ctx context.Context) ([]*types.Donor, error) {
	if f.listFn == nil {
		return nil, errUnexpectedCall
	}
	return f.listFn(ctx)
}

type fakeFunds struct {
	createFn     func(ctx context.Context, fund *types.GivingFund) error
	getFn        func(ctx context.Context, id int64) (*types.GivingFund, error)
	byDonorFn    func(ctx context.Context, donorID int64) ([]*types.GivingFund, error)
	contributeFn func(ctx context.Context, id int64, amount types.Money) (*types.GivingFund, error)
}

func (f *fakeFunds) CreateFund(ctx context.Context, fund *types.GivingFund) error {
	if f.createFn == nil {
		return errUnexpectedCall
	}
	return f.createFn(ctx, fund)
}

func (f *fakeFunds) Fund(ctx context.Context, id int64) (*types.GivingFund, error) {
	if f.getFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getFn(ctx, id)
}

func (f *fakeFunds) FundsByDonor(ctx context.Context, donorID int64) ([]*types.GivingFund, error) {
	if f.byDonorFn == nil {
		return nil, errUnexpectedCall
	}
	return f.byDonorFn(ctx, donorID)
}

func (f *fakeFunds) Contribute(ctx context.Context, id int64, amount types.Money) (*types.GivingFund, error) {
	if f.contributeFn == nil {
		return nil, errUnexpectedCall
	}
	return f.contributeFn(ctx, id, amount)
}

type fakeGrants struct {
	createFn     func(ctx context.Context, g *types.Grant) (*types.Grant, error)
	getFn        func(ctx context.Context, id int64) (*types.Grant, error)
	byStatusFn   func(ctx context.Context, status types.GrantStatus) ([]*types.Grant, error)
	byMinistryFn func(ctx context.Context, ministryID int64) ([]*types.Grant, error)
	approveFn    func(ctx context.Context, id int64) (*types.Grant, error)
	rejectFn     func(ctx context.Context, id int64, reason *string) (*types.Grant, error)
	fundFn       func(ctx context.Context, id int64) (*types.Grant, error)
}

func (f *fakeGrants) CreateGrant(ctx context.Context, g *types.Grant) (*types.Grant, error) {
	if f.createFn == nil {
		return nil, errUnexpectedCall
	}
	return f.createFn(ctx, g)
}

func (f *fakeGrants) Grant(ctx context.Context, id int64) (*types.Grant, error) {
	if f.getFn == nil {
		return nil, errUnexpectedCall
	}
	return f.getFn(ctx, id)
}

func (f *fakeGrants) GrantsByStatus(ctx context.Context, status types.GrantStatus) ([]*types.Grant, error) {
	if f.byStatusFn == nil {
		return nil, errUnexpectedCall
	}
	return f.byStatusFn(ctx, status)
}

func (f *fakeGrants) GrantsByMinistry(ctx context.Context, ministryID int64) ([]*types.Grant, error) {
	if f.byMinistryFn == nil {
		return nil, errUnexpectedCall
	}
	return f.byMinistryFn(ctx, ministryID)
}

func (f *fakeGrants) ApproveGrant(ctx context.Context, id int64) (*types.Grant, error) {
	if f.approveFn == nil {
		return nil, errUnexpectedCall
	}
	return f.approveFn(ctx, id)
}

func (f *fakeGrants) RejectGrant(ctx context.Context, id int64, reason *string) (*types.Grant, error) {
	if f.rejectFn == nil {
		return nil, errUnexpectedCall
	}
	return f.rejectFn(ctx, id, reason)
}

func (f *fakeGrants) FundGrant(ctx context.Context, id int64) (*types.Grant, error) {
	if f.fundFn == nil {
		return nil, errUnexpectedCall
	}
	return f.fundFn(ctx, id)
}

type fakeDashboard struct {
	statsFn func(ctx context.Context) (*types.DashboardStats, error)
}

func (f *fakeDashboard) Stats(ctx context.Context) (*types.DashboardStats, error) {
	if f.statsFn == nil {
		return nil, errUnexpectedCall
	}
	return f.statsFn(ctx)
}

type testStores struct {
	ministries *fakeMinistries
	donors     *fakeDonors
	funds      *fakeFunds
	grants     *fakeGrants
	dashboard  *fakeDashboard
}

func newTestHandler(t *testing.T, stores testStores) http.Handler {
	t.Helper()

	if stores.ministries == nil {
		stores.ministries = &fakeMinistries{}
	}
	if stores.donors == nil {
		stores.donors = &fakeDonors{}
	}
	if stores.funds == nil {
		stores.funds = &fakeFunds{}
	}
	if stores.grants == nil {
		stores.grants = &fakeGrants{}
	}
	if stores.dashboard == nil {
		stores.dashboard = &fakeDashboard{}
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc, err := server.New(
		&types.Config{ServerPort: 0},
		logger,
		stores.ministries,
		stores.donors,
		stores.funds,
		stores.grants,
		stores.dashboard,
	)
	if err != nil {
		t.Fatalf("server.New returned error: %v", err)
	}

	return svc.Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
