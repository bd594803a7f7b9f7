package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"grantflow/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// MinistryDirectory is the read/write store of ministry records.
type MinistryDirectory interface {
	CreateMinistry(ctx context.Context, ministry *types.Ministry) error
	Ministry(ctx context.Context, ministryID int64) (*types.Ministry, error)
	VerifyMinistry(ctx context.Context, ministryID int64) (*types.Ministry, error)
	SetMinistryActive(ctx context.Context, ministryID int64, active bool) (*types.Ministry, error)
	DeleteMinistry(ctx context.Context, ministryID int64) error
	ListMinistries(ctx context.Context, filter types.MinistryFilter, limit int, after *string) (*types.MinistryConnection, error)
}

type DonorDirectory interface {
	CreateDonor(ctx context.Context, donor *types.Donor) error
	Donor(ctx context.Context, donorID int64) (*types.Donor, error)
	Donors(ctx context.Context) ([]*types.Donor, error)
}

// FundLedger exposes fund reads and the contribution increment.
// Disbursement is deliberately absent: balances only decrease inside the
// grant funding transaction.
type FundLedger interface {
	CreateFund(ctx context.Context, fund *types.GivingFund) error
	Fund(ctx context.Context, fundID int64) (*types.GivingFund, error)
	FundsByDonor(ctx context.Context, donorID int64) ([]*types.GivingFund, error)
	Contribute(ctx context.Context, fundID int64, amount types.Money) (*types.GivingFund, error)
}

type GrantLifecycle interface {
	CreateGrant(ctx context.Context, grant *types.Grant) (*types.Grant, error)
	Grant(ctx context.Context, grantID int64) (*types.Grant, error)
	GrantsByStatus(ctx context.Context, status types.GrantStatus) ([]*types.Grant, error)
	GrantsByMinistry(ctx context.Context, ministryID int64) ([]*types.Grant, error)
	ApproveGrant(ctx context.Context, grantID int64) (*types.Grant, error)
	RejectGrant(ctx context.Context, grantID int64, reason *string) (*types.Grant, error)
	FundGrant(ctx context.Context, grantID int64) (*types.Grant, error)
}

type DashboardSource interface {
	Stats(ctx context.Context) (*types.DashboardStats, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	ministries MinistryDirectory
	donors     DonorDirectory
	funds      FundLedger
	grants     GrantLifecycle
	dashboard  DashboardSource

	mux    *flow.Mux
	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	ministries MinistryDirectory,
	donors DonorDirectory,
	funds FundLedger,
	grants GrantLifecycle,
	dashboard DashboardSource,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		ministries: ministries,
		donors:     donors,
		funds:      funds,
		grants:     grants,
		dashboard:  dashboard,

		mux: mux,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed mux; tests drive it with httptest.
func (s *Service) Handler() http.Handler {
	return s.mux
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/api/ministries", s.handleListMinistries, http.MethodGet)
	r.HandleFunc("/api/ministries", s.handleCreateMinistry, http.MethodPost)
	r.HandleFunc("/api/ministries/:id", s.handleGetMinistry, http.MethodGet)
	r.HandleFunc("/api/ministries/:id", s.handleDeleteMinistry, http.MethodDelete)
	r.HandleFunc("/api/ministries/:id/verify", s.handleVerifyMinistry, http.MethodPost)
	r.HandleFunc("/api/ministries/:id/active", s.handleSetMinistryActive, http.MethodPost)
	r.HandleFunc("/api/ministries/:id/grants", s.handleGrantsByMinistry, http.MethodGet)

	r.HandleFunc("/api/donors", s.handleListDonors, http.MethodGet)
	r.HandleFunc("/api/donors", s.handleCreateDonor, http.MethodPost)
	r.HandleFunc("/api/donors/:id", s.handleGetDonor, http.MethodGet)
	r.HandleFunc("/api/donors/:id/funds", s.handleFundsByDonor, http.MethodGet)

	r.HandleFunc("/api/funds", s.handleCreateFund, http.MethodPost)
	r.HandleFunc("/api/funds/:id", s.handleGetFund, http.MethodGet)
	r.HandleFunc("/api/funds/:id/contributions", s.handleAddFunds, http.MethodPost)

	r.HandleFunc("/api/grants", s.handleCreateGrant, http.MethodPost)
	r.HandleFunc("/api/grants", s.handleListGrants, http.MethodGet)
	r.HandleFunc("/api/grants/:id", s.handleGetGrant, http.MethodGet)
	r.HandleFunc("/api/grants/:id/approve", s.handleApproveGrant, http.MethodPost)
	r.HandleFunc("/api/grants/:id/reject", s.handleRejectGrant, http.MethodPost)
	r.HandleFunc("/api/grants/:id/fund", s.handleFundGrant, http.MethodPost)

	r.HandleFunc("/api/dashboard", s.handleDashboard, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
