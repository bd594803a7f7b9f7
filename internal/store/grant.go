package store

import (
	"context"
	"fmt"
	"time"

	"grantflow/internal/utils"
	"grantflow/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const grantTableName = "grantflow.grants"

var grantColumns = utils.StructTagValues(types.Grant{})

// GrantRepository owns the grant lifecycle. Every status transition happens
// inside a transaction that re-reads the row under lock, so a stale caller
// can never move a grant along an edge the state machine does not permit.
type GrantRepository struct {
	pool *pgxpool.Pool
}

func NewGrantRepository(pool *pgxpool.Pool) *GrantRepository {
	return &GrantRepository{pool: pool}
}

// CreateGrant validates the request and persists a PENDING grant. The
// eligibility preconditions are checked in a fixed order, each with its own
// error: amount, ministry existence, verified, active, fund existence,
// fund active. The fund balance is not touched and nothing is reserved.
func (r *GrantRepository) CreateGrant(ctx context.Context, grant *types.Grant) (*types.Grant, error) {

	if !grant.Amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ministry, err := ministryForUpdate(ctx, tx, grant.MinistryID)
	if err != nil {
		return nil, err
	}

	if !ministry.Verified {
		return nil, types.ErrMinistryNotVerified
	}

	if !ministry.Active {
		return nil, types.ErrMinistryInactive
	}

	fund, err := fundForUpdate(ctx, tx, grant.GivingFundID)
	if err != nil {
		return nil, err
	}

	if !fund.Active {
		return nil, types.ErrFundInactive
	}

	grant.Status = types.GrantStatusPending
	grant.RequestedAt = time.Now()
	grant.ApprovedAt = nil
	grant.FundedAt = nil
	grant.RejectedAt = nil

	query, args, err := psql().
		Insert(grantTableName).
		SetMap(utils.StructToMap(grant, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert grant query: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&grant.ID); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return grant, nil
}

func (r *GrantRepository) Grant(ctx context.Context, grantID int64) (*types.Grant, error) {

	query, args, err := psql().Select(grantColumns...).From(grantTableName).
		Where(sq.Eq{"id": grantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant query: %w", err)
	}

	var grant = new(types.Grant)
	err = pgxscan.Get(ctx, r.pool, grant, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrGrantNotFound
	}

	return grant, nil
}

func (r *GrantRepository) GrantsByStatus(ctx context.Context, status types.GrantStatus) ([]*types.Grant, error) {

	query, args, err := psql().Select(grantColumns...).From(grantTableName).
		Where(sq.Eq{"status": status}).
		OrderBy("requested_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grants query: %w", err)
	}

	var grants = make([]*types.Grant, 0)
	if err := pgxscan.Select(ctx, r.pool, &grants, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return grants, nil
}

func (r *GrantRepository) GrantsByMinistry(ctx context.Context, ministryID int64) ([]*types.Grant, error) {

	query, args, err := psql().Select(grantColumns...).From(grantTableName).
		Where(sq.Eq{"ministry_id": ministryID}).
		OrderBy("requested_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grants query: %w", err)
	}

	var grants = make([]*types.Grant, 0)
	if err := pgxscan.Select(ctx, r.pool, &grants, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return grants, nil
}

// ApproveGrant moves PENDING → APPROVED. Approving an already-approved
// grant fails; the transition is deliberately not idempotent.
func (r *GrantRepository) ApproveGrant(ctx context.Context, grantID int64) (*types.Grant, error) {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	grant, err := grantForUpdate(ctx, tx, grantID)
	if err != nil {
		return nil, err
	}

	if !grant.Status.CanTransitionTo(types.GrantStatusApproved) {
		return nil, &types.InvalidTransitionError{Action: "approve", Current: grant.Status}
	}

	now := time.Now()
	updated, err := updateGrant(ctx, tx, grantID, map[string]any{
		"status":      types.GrantStatusApproved,
		"approved_at": now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// RejectGrant moves PENDING or APPROVED → REJECTED. A reason, when given,
// is appended to the grant's notes rather than replacing them.
func (r *GrantRepository) RejectGrant(ctx context.Context, grantID int64, reason *string) (*types.Grant, error) {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	grant, err := grantForUpdate(ctx, tx, grantID)
	if err != nil {
		return nil, err
	}

	// Rejection is legal from any non-terminal status; terminal grants get
	// the specific error for their state.
	if grant.Status.Terminal() {
		if grant.Status == types.GrantStatusFunded {
			return nil, types.ErrGrantAlreadyFunded
		}
		return nil, types.ErrGrantAlreadyRejected
	}

	changes := map[string]any{
		"status":      types.GrantStatusRejected,
		"rejected_at": time.Now(),
	}

	if reason != nil && *reason != "" {
		changes["notes"] = types.AppendRejectionReason(grant.Notes, *reason)
	}

	updated, err := updateGrant(ctx, tx, grantID, changes)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// FundGrant executes the terminal APPROVED → FUNDED transition and the
// balance decrement as one atomic unit. Both rows are re-read under row
// locks inside the transaction; a concurrent funder that already committed
// leaves the second transaction observing FUNDED, so it fails the status
// check before touching the balance. Either both writes commit or neither
// does.
func (r *GrantRepository) FundGrant(ctx context.Context, grantID int64) (*types.Grant, error) {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	grant, err := grantForUpdate(ctx, tx, grantID)
	if err != nil {
		return nil, err
	}

	if !grant.Status.CanTransitionTo(types.GrantStatusFunded) {
		return nil, &types.InvalidTransitionError{Action: "fund", Current: grant.Status}
	}

	fund, err := fundForUpdate(ctx, tx, grant.GivingFundID)
	if err != nil {
		return nil, err
	}

	if fund.Balance.LessThan(grant.Amount) {
		return nil, &types.InsufficientBalanceError{
			Available: fund.Balance,
			Required:  grant.Amount,
		}
	}

	now := time.Now()

	query, args, err := psql().Update(fundTableName).
		Set("balance", sq.Expr("balance - ?", grant.Amount)).
		Set("updated_at", now).
		Where(sq.Eq{"id": fund.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate disburse query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to disburse from fund %d: %w", fund.ID, err)
	}

	updated, err := updateGrant(ctx, tx, grantID, map[string]any{
		"status":    types.GrantStatusFunded,
		"funded_at": now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

func grantForUpdate(ctx context.Context, tx pgx.Tx, grantID int64) (*types.Grant, error) {

	query, args, err := psql().Select(grantColumns...).From(grantTableName).
		Where(sq.Eq{"id": grantID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant lock query: %w", err)
	}

	var grant = new(types.Grant)
	err = pgxscan.Get(ctx, tx, grant, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrGrantNotFound
	}

	return grant, nil
}

func fundForUpdate(ctx context.Context, tx pgx.Tx, fundID int64) (*types.GivingFund, error) {

	query, args, err := psql().Select(fundColumns...).From(fundTableName).
		Where(sq.Eq{"id": fundID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate fund lock query: %w", err)
	}

	var fund = new(types.GivingFund)
	err = pgxscan.Get(ctx, tx, fund, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrFundNotFound
	}

	return fund, nil
}

func ministryForUpdate(ctx context.Context, tx pgx.Tx, ministryID int64) (*types.Ministry, error) {

	query, args, err := psql().Select(ministryColumns...).From(ministryTableName).
		Where(sq.Eq{"id": ministryID}).
		Suffix("FOR SHARE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ministry lock query: %w", err)
	}

	var ministry = new(types.Ministry)
	err = pgxscan.Get(ctx, tx, ministry, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMinistryNotFound
	}

	return ministry, nil
}

func updateGrant(ctx context.Context, tx pgx.Tx, grantID int64, changes map[string]any) (*types.Grant, error) {

	query, args, err := psql().Update(grantTableName).
		SetMap(changes).
		Where(sq.Eq{"id": grantID}).
		Suffix("RETURNING " + joinColumns(grantColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update grant query for grant %d: %w", grantID, err)
	}

	var grant = new(types.Grant)
	if err := pgxscan.Get(ctx, tx, grant, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update grant %d: %w", grantID, err)
	}

	return grant, nil
}
