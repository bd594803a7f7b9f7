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

const donorTableName = "grantflow.donors"

var donorColumns = utils.StructTagValues(types.Donor{})

type DonorRepository struct {
	pool *pgxpool.Pool
}

func NewDonorRepository(pool *pgxpool.Pool) *DonorRepository {
	return &DonorRepository{pool: pool}
}

// CreateDonor persists a new donor. Donors are immutable afterwards; there
// is no update path.
func (r *DonorRepository) CreateDonor(ctx context.Context, donor *types.Donor) error {

	if donor.Name == "" {
		return &types.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if !types.ValidEmail(donor.Email) {
		return &types.ValidationError{Field: "email", Reason: "must be a valid email address"}
	}

	now := time.Now()
	donor.CreatedAt = now
	donor.UpdatedAt = now

	query, args, err := psql().
		Insert(donorTableName).
		SetMap(utils.StructToMap(donor, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&donor.ID); err != nil {
		if isUniqueViolation(err) {
			return types.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create donor: %w", err)
	}

	return nil
}

func (r *DonorRepository) Donor(ctx context.Context, donorID int64) (*types.Donor, error) {

	query, args, err := psql().Select(donorColumns...).From(donorTableName).
		Where(sq.Eq{"id": donorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor query: %w", err)
	}

	var donor = new(types.Donor)
	err = pgxscan.Get(ctx, r.pool, donor, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrDonorNotFound
	}

	return donor, nil
}

func (r *DonorRepository) Donors(ctx context.Context) ([]*types.Donor, error) {

	query, args, err := psql().Select(donorColumns...).From(donorTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donors query: %w", err)
	}

	var donors = make([]*types.Donor, 0)
	if err := pgxscan.Select(ctx, r.pool, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}

	return donors, nil
}
