// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contribution

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tamgioi/internal/platform/database/schema"
	"github.com/taibuivan/tamgioi/internal/platform/dberr"
)

// # PostgreSQL Repository

// contributionRepository implements the [Repository] interface using pgx.
type contributionRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed contribution store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &contributionRepository{pool: pool}
}

func (repository *contributionRepository) selectClause() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.ContribContribution.ID, schema.ContribContribution.UserID,
		schema.ContribContribution.Username, schema.ContribContribution.Kind,
		schema.ContribContribution.Payload, schema.ContribContribution.Status,
		schema.ContribContribution.Note, schema.ContribContribution.SubmittedAt,
		schema.ContribContribution.ReviewedAt, schema.ContribContribution.ReviewedBy,
		schema.ContribContribution.Table,
	)
}

/*
Insert persists a new pending contribution.
*/
func (repository *contributionRepository) Insert(context context.Context, contribution *Contribution) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`,
		schema.ContribContribution.Table,
		schema.ContribContribution.ID, schema.ContribContribution.UserID,
		schema.ContribContribution.Username, schema.ContribContribution.Kind,
		schema.ContribContribution.Payload, schema.ContribContribution.Status,
		schema.ContribContribution.SubmittedAt,
	)

	if _, err := repository.pool.Exec(context, query,
		contribution.ID, contribution.UserID, contribution.Username,
		string(contribution.Kind), []byte(contribution.Payload), string(contribution.Status)); err != nil {
		return dberr.Wrap(err, "contribution_insert")
	}

	return nil
}

/*
FindByID returns the contribution with the given identifier, or nil when
absent.
*/
func (repository *contributionRepository) FindByID(context context.Context, id string) (*Contribution, error) {

	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectClause(), schema.ContribContribution.ID)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "contribution_find")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	contribution, err := scanContribution(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan contribution: %w", err)
	}

	return contribution, nil
}

/*
MarkReviewed flips a pending contribution to its final status.

Description: The WHERE clause includes the pending guard, so the flip and
the "is it still pending?" check are one atomic statement. RowsAffected
0 means another reviewer got there first.
*/
func (repository *contributionRepository) MarkReviewed(context context.Context, id string, status Status, reviewerID int64, note string) (bool, error) {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW(), %s = $4
		WHERE %s = $1 AND %s = $5
	`,
		schema.ContribContribution.Table,
		schema.ContribContribution.Status, schema.ContribContribution.Note,
		schema.ContribContribution.ReviewedAt, schema.ContribContribution.ReviewedBy,
		schema.ContribContribution.ID, schema.ContribContribution.Status,
	)

	result, err := repository.pool.Exec(context, query,
		id, string(status), note, reviewerID, string(StatusPending))
	if err != nil {
		return false, dberr.Wrap(err, "contribution_mark_reviewed")
	}

	return result.RowsAffected() > 0, nil
}

/*
ListByStatus returns a page of contributions in one status, newest first.
*/
func (repository *contributionRepository) ListByStatus(context context.Context, status Status, limit, offset int) ([]*Contribution, int, error) {

	query := fmt.Sprintf(`%s WHERE %s = $1 ORDER BY %s DESC LIMIT $2 OFFSET $3`,
		repository.selectClause(), schema.ContribContribution.Status, schema.ContribContribution.SubmittedAt)

	contributions, err := repository.queryMany(context, query, "contribution_list_by_status",
		string(status), limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := repository.CountByStatus(context, status)
	if err != nil {
		return nil, 0, err
	}

	return contributions, int(total), nil
}

/*
ListByUser returns a page of one user's contributions, newest first.
*/
func (repository *contributionRepository) ListByUser(context context.Context, userID int64, limit, offset int) ([]*Contribution, int, error) {

	query := fmt.Sprintf(`%s WHERE %s = $1 ORDER BY %s DESC LIMIT $2 OFFSET $3`,
		repository.selectClause(), schema.ContribContribution.UserID, schema.ContribContribution.SubmittedAt)

	contributions, err := repository.queryMany(context, query, "contribution_list_by_user",
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContribContribution.Table, schema.ContribContribution.UserID)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "contribution_count_by_user")
	}

	return contributions, total, nil
}

/*
TopContributors aggregates approved counts per user, descending.

Description: The username shown is the one recorded on the user's most
recent approved submission, so renames eventually propagate.
*/
func (repository *contributionRepository) TopContributors(context context.Context, limit int) ([]ContributorRank, error) {

	query := fmt.Sprintf(`
		SELECT %s,
		       (ARRAY_AGG(%s ORDER BY %s DESC))[1] AS username,
		       COUNT(*) AS approved
		FROM %s
		WHERE %s = $1
		GROUP BY %s
		ORDER BY approved DESC, %s ASC
		LIMIT $2
	`,
		schema.ContribContribution.UserID,
		schema.ContribContribution.Username, schema.ContribContribution.SubmittedAt,
		schema.ContribContribution.Table,
		schema.ContribContribution.Status,
		schema.ContribContribution.UserID,
		schema.ContribContribution.UserID,
	)

	rows, err := repository.pool.Query(context, query, string(StatusApproved), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "contribution_top_contributors")
	}
	defer rows.Close()

	var ranks []ContributorRank
	for rows.Next() {
		var rank ContributorRank
		if err := rows.Scan(&rank.UserID, &rank.Username, &rank.Approved); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan contributor rank: %w", err)
		}
		ranks = append(ranks, rank)
	}

	return ranks, rows.Err()
}

/*
CountByStatus returns the number of contributions in one status.
*/
func (repository *contributionRepository) CountByStatus(context context.Context, status Status) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContribContribution.Table, schema.ContribContribution.Status)

	var total int64
	if err := repository.pool.QueryRow(context, query, string(status)).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "contribution_count_by_status")
	}

	return total, nil
}

// # Row Mapping

func (repository *contributionRepository) queryMany(context context.Context, query, action string, args ...any) ([]*Contribution, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var contributions []*Contribution
	for rows.Next() {
		contribution, err := scanContribution(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan contribution: %w", err)
		}
		contributions = append(contributions, contribution)
	}

	return contributions, rows.Err()
}

func scanContribution(scan func(dest ...any) error) (*Contribution, error) {
	var contribution Contribution
	var kind, status string
	var payload []byte

	if err := scan(&contribution.ID, &contribution.UserID, &contribution.Username,
		&kind, &payload, &status, &contribution.Note,
		&contribution.SubmittedAt, &contribution.ReviewedAt, &contribution.ReviewedBy); err != nil {
		return nil, err
	}

	contribution.Kind = Kind(kind)
	contribution.Status = Status(status)
	contribution.Payload = payload

	return &contribution, nil
}
