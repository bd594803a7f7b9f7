package store

import (
	"context"
	"fmt"
	"time"

	"grantflow/internal/utils"
	"grantflow/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fundTableName = "grantflow.giving_funds"

var fundColumns = utils.StructTagValues(types.GivingFund{})

type FundRepository struct {
	pool *pgxpool.Pool
}

func NewFundRepository(pool *pgxpool.Pool) *FundRepository {
	return &FundRepository{pool: pool}
}

func (r *FundRepository) CreateFund(ctx context.Context, fund *types.GivingFund) error {

	if fund.Name == "" {
		return &types.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if fund.Balance.IsNegative() {
		return types.ErrInvalidAmount
	}

	now := time.Now()
	fund.Active = true
	fund.CreatedAt = now
	fund.UpdatedAt = now

	query, args, err := psql().
		Insert(fundTableName).
		SetMap(utils.StructToMap(fund, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert fund query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&fund.ID); err != nil {
		if isForeignKeyViolation(err) {
			return types.ErrDonorNotFound
		}
		return fmt.Errorf("failed to create fund: %w", err)
	}

	return nil
}

func (r *FundRepository) Fund(ctx context.Context, fundID int64) (*types.GivingFund, error) {

	query, args, err := psql().Select(fundColumns...).From(fundTableName).
		Where(sq.Eq{"id": fundID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate fund query: %w", err)
	}

	var fund = new(types.GivingFund)
	err = pgxscan.Get(ctx, r.pool, fund, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrFundNotFound
	}

	return fund, nil
}

func (r *FundRepository) FundsByDonor(ctx context.Context, donorID int64) ([]*types.GivingFund, error) {

	query, args, err := psql().Select(fundColumns...).From(fundTableName).
		Where(sq.Eq{"donor_id": donorID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate funds query: %w", err)
	}

	var funds = make([]*types.GivingFund, 0)
	if err := pgxscan.Select(ctx, r.pool, &funds, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}

	return funds, nil
}

// Contribute increments a fund's balance by amount in a single statement.
// The active check sits in the same statement's WHERE; a miss is diagnosed
// afterwards so the caller gets the precise error.
func (r *FundRepository) Contribute(ctx context.Context, fundID int64, amount types.Money) (*types.GivingFund, error) {

	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	query, args, err := psql().Update(fundTableName).
		Set("balance", sq.Expr("balance + ?", amount)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": fundID, "active": true}).
		Suffix("RETURNING " + joinColumns(fundColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contribute query: %w", err)
	}

	var fund = new(types.GivingFund)
	err = pgxscan.Get(ctx, r.pool, fund, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to contribute to fund %d: %w", fundID, err)
	}

	if err != nil {
		if _, fetchErr := r.Fund(ctx, fundID); fetchErr != nil {
			return nil, fetchErr
		}
		return nil, types.ErrFundInactive
	}

	return fund, nil
}
