package store

import (
	"context"
	"fmt"

	"grantflow/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository computes read-only rollups across the three stores.
// It mutates nothing.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

type grantStatusRow struct {
	Status types.GrantStatus `db:"status"`
	Count  int64             `db:"count"`
	Total  types.Money       `db:"total"`
}

func (r *DashboardRepository) Stats(ctx context.Context) (*types.DashboardStats, error) {

	stats := new(types.DashboardStats)

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE verified) FROM grantflow.ministries`,
	).Scan(&stats.MinistryCount, &stats.VerifiedMinistryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count ministries: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM grantflow.donors`,
	).Scan(&stats.DonorCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count donors: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(balance), 0) FROM grantflow.giving_funds`,
	).Scan(&stats.FundCount, &stats.TotalFundBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate funds: %w", err)
	}

	var rows []grantStatusRow
	err = pgxscan.Select(ctx, r.pool, &rows,
		`SELECT status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		 FROM grantflow.grants GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate grants: %w", err)
	}

	stats.GrantCounts = fillGrantCounts(rows)

	for _, row := range rows {
		switch row.Status {
		case types.GrantStatusFunded:
			stats.TotalFunded = row.Total
		case types.GrantStatusPending:
			stats.TotalPending = row.Total
		}
	}

	return stats, nil
}

// fillGrantCounts zero-fills every status bucket so the response shape is
// stable even when a bucket is empty.
func fillGrantCounts(rows []grantStatusRow) types.GrantStatusCounts {

	byStatus := make(map[types.GrantStatus]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}

	var counts types.GrantStatusCounts
	for _, status := range types.GrantStatuses {
		n := byStatus[status]
		switch status {
		case types.GrantStatusPending:
			counts.Pending = n
		case types.GrantStatusApproved:
			counts.Approved = n
		case types.GrantStatusFunded:
			counts.Funded = n
		case types.GrantStatusRejected:
			counts.Rejected = n
		}
		counts.Total += n
	}

	return counts
}
