package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grantflow/internal/utils"
	"grantflow/pkg/cursor"
	"grantflow/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ministryTableName = "grantflow.ministries"

var ministryColumns = utils.StructTagValues(types.Ministry{})

const (
	minPageSize = 1
	maxPageSize = 100
)

type MinistryRepository struct {
	pool *pgxpool.Pool
}

func NewMinistryRepository(pool *pgxpool.Pool) *MinistryRepository {
	return &MinistryRepository{pool: pool}
}

// CreateMinistry persists a new ministry. New ministries start unverified
// and active regardless of what the caller set.
func (r *MinistryRepository) CreateMinistry(ctx context.Context, ministry *types.Ministry) error {

	if ministry.Name == "" {
		return &types.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if !ministry.Category.Valid() {
		return &types.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", ministry.Category)}
	}

	if ministry.EIN != nil && !types.ValidEIN(*ministry.EIN) {
		return &types.ValidationError{Field: "ein", Reason: "must match NN-NNNNNNN"}
	}

	now := time.Now()
	ministry.Verified = false
	ministry.Active = true
	ministry.CreatedAt = now
	ministry.UpdatedAt = now

	query, args, err := psql().
		Insert(ministryTableName).
		SetMap(utils.StructToMap(ministry, "id")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert ministry query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&ministry.ID); err != nil {
		return fmt.Errorf("failed to create ministry: %w", err)
	}

	return nil
}

func (r *MinistryRepository) Ministry(ctx context.Context, ministryID int64) (*types.Ministry, error) {

	query, args, err := psql().Select(ministryColumns...).From(ministryTableName).
		Where(sq.Eq{"id": ministryID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ministry query: %w", err)
	}

	var ministry = new(types.Ministry)
	err = pgxscan.Get(ctx, r.pool, ministry, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMinistryNotFound
	}

	return ministry, nil
}

// VerifyMinistry flips verified to true. Verification is the only way a
// ministry becomes eligible for grants.
func (r *MinistryRepository) VerifyMinistry(ctx context.Context, ministryID int64) (*types.Ministry, error) {

	query, args, err := psql().Update(ministryTableName).
		Set("verified", true).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ministryID}).
		Suffix("RETURNING " + joinColumns(ministryColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verify ministry query: %w", err)
	}

	var ministry = new(types.Ministry)
	err = pgxscan.Get(ctx, r.pool, ministry, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMinistryNotFound
	}

	return ministry, nil
}

func (r *MinistryRepository) SetMinistryActive(ctx context.Context, ministryID int64, active bool) (*types.Ministry, error) {

	query, args, err := psql().Update(ministryTableName).
		Set("active", active).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": ministryID}).
		Suffix("RETURNING " + joinColumns(ministryColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update ministry query: %w", err)
	}

	var ministry = new(types.Ministry)
	err = pgxscan.Get(ctx, r.pool, ministry, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrMinistryNotFound
	}

	return ministry, nil
}

// DeleteMinistry removes a ministry that owns no grants. The underlying
// foreign-key violation is translated to ErrMinistryHasGrants.
func (r *MinistryRepository) DeleteMinistry(ctx context.Context, ministryID int64) error {

	query, args, err := psql().Delete(ministryTableName).
		Where(sq.Eq{"id": ministryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete ministry query for ministry %d: %w", ministryID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return types.ErrMinistryHasGrants
		}
		return fmt.Errorf("failed to delete ministry: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrMinistryNotFound
	}

	return nil
}

func (r *MinistryRepository) CountMinistries(ctx context.Context, filter types.MinistryFilter) (int64, error) {

	builder := psql().Select("COUNT(*)").From(ministryTableName)
	for _, cond := range ministryFilterConditions(filter) {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count ministries query: %w", err)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ministries: %w", err)
	}

	return count, nil
}

// ListMinistries returns one cursor page of ministries matching filter,
// ordered by ascending id. The requested limit is clamped to [1, 100]. It
// fetches limit+1 rows starting strictly after the cursor id; the extra row
// only signals that a next page exists.
func (r *MinistryRepository) ListMinistries(ctx context.Context, filter types.MinistryFilter, limit int, after *string) (*types.MinistryConnection, error) {

	pageSize := clampLimit(limit)

	var afterID int64
	if after != nil {
		id, err := cursor.Decode(cursor.EntityMinistry, *after)
		if err != nil {
			return nil, err
		}
		afterID = id
	}

	builder := psql().Select(ministryColumns...).From(ministryTableName)
	for _, cond := range ministryFilterConditions(filter) {
		builder = builder.Where(cond)
	}

	if after != nil {
		builder = builder.Where(sq.Gt{"id": afterID})
	}

	query, args, err := builder.
		OrderBy("id ASC").
		Limit(uint64(pageSize + 1)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list ministries query: %w", err)
	}

	var ministries = make([]*types.Ministry, 0, pageSize+1)
	if err := pgxscan.Select(ctx, r.pool, &ministries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list ministries: %w", err)
	}

	total, err := r.CountMinistries(ctx, filter)
	if err != nil {
		return nil, err
	}

	return buildMinistryConnection(ministries, pageSize, after != nil, total), nil
}

// ministryFilterConditions maps only the present filter fields into
// predicates; the caller ANDs them together.
func ministryFilterConditions(filter types.MinistryFilter) []sq.Sqlizer {
	conditions := make([]sq.Sqlizer, 0, 5)

	if filter.Category != nil {
		conditions = append(conditions, sq.Eq{"category": *filter.Category})
	}

	if filter.Verified != nil {
		conditions = append(conditions, sq.Eq{"verified": *filter.Verified})
	}

	if filter.Active != nil {
		conditions = append(conditions, sq.Eq{"active": *filter.Active})
	}

	if filter.State != nil {
		conditions = append(conditions, sq.Eq{"state": *filter.State})
	}

	if filter.Search != nil {
		conditions = append(conditions, sq.ILike{"name": "%" + escapeLikeTerm(*filter.Search) + "%"})
	}

	return conditions
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikeTerm neutralizes LIKE metacharacters so a search for "100%"
// matches the literal text instead of acting as a wildcard.
func escapeLikeTerm(term string) string {
	return likeEscaper.Replace(term)
}

func clampLimit(limit int) int {
	if limit < minPageSize {
		return minPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func buildMinistryConnection(rows []*types.Ministry, pageSize int, hasPrevious bool, total int64) *types.MinistryConnection {

	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}

	edges := make([]types.MinistryEdge, 0, len(rows))
	for _, ministry := range rows {
		edges = append(edges, types.MinistryEdge{
			Node:   ministry,
			Cursor: cursor.Encode(cursor.EntityMinistry, ministry.ID),
		})
	}

	pageInfo := types.PageInfo{
		HasNextPage:     hasNext,
		HasPreviousPage: hasPrevious,
		TotalCount:      total,
	}

	if len(edges) > 0 {
		pageInfo.StartCursor = &edges[0].Cursor
		pageInfo.EndCursor = &edges[len(edges)-1].Cursor
	}

	return &types.MinistryConnection{Edges: edges, PageInfo: pageInfo}
}
