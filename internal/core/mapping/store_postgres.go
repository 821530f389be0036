// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mapping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tamgioi/internal/core/episode"
	"github.com/taibuivan/tamgioi/internal/platform/database/schema"
	"github.com/taibuivan/tamgioi/internal/platform/dberr"
)

// # PostgreSQL Repository

// mappingRepository implements the [Repository] interface using pgx.
//
// Chapter sets are stored as an integer array; the GIN index on that
// column serves the containment lookups FindByChapter performs.
type mappingRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed mapping store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &mappingRepository{pool: pool}
}

func (repository *mappingRepository) selectClause() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
		schema.CatalogMapping.ID, schema.CatalogMapping.Chapters,
		schema.CatalogMapping.Episode3D, schema.CatalogMapping.Episode2D,
		schema.CatalogMapping.CreatedAt, schema.CatalogMapping.UpdatedAt,
		schema.CatalogMapping.Table,
	)
}

/*
FindByID returns the mapping with the given identifier, or nil when absent.
*/
func (repository *mappingRepository) FindByID(context context.Context, id string) (*Mapping, error) {

	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectClause(), schema.CatalogMapping.ID)

	return repository.queryOne(context, query, "mapping_find_by_id", id)
}

/*
FindByEpisode returns the mapping referencing the episode, or nil when the
episode is unmapped.
*/
func (repository *mappingRepository) FindByEpisode(context context.Context, axis episode.Axis, number int) (*Mapping, error) {

	column := schema.CatalogMapping.Episode3D
	if axis == episode.Axis2D {
		column = schema.CatalogMapping.Episode2D
	}

	query := fmt.Sprintf(`%s WHERE %s = $1`, repository.selectClause(), column)

	return repository.queryOne(context, query, "mapping_find_by_episode", number)
}

/*
FindByChapter returns all mappings whose chapter set contains the number.
*/
func (repository *mappingRepository) FindByChapter(context context.Context, chapterNumber int) ([]*Mapping, error) {

	query := fmt.Sprintf(`%s WHERE %s @> ARRAY[$1::int] ORDER BY %s ASC`,
		repository.selectClause(), schema.CatalogMapping.Chapters, schema.CatalogMapping.CreatedAt)

	rows, err := repository.pool.Query(context, query, chapterNumber)
	if err != nil {
		return nil, dberr.Wrap(err, "mapping_find_by_chapter")
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		mapping, err := scanMapping(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}

	return mappings, rows.Err()
}

/*
List returns a page of mappings, newest episodes first.

Description: Ordered by 3D episode descending, then 2D episode descending,
so the browse surfaces the most recent cross-references on page one.
Mappings without a given axis sort after those that have it.
*/
func (repository *mappingRepository) List(context context.Context, limit, offset int) ([]*Mapping, int, error) {

	query := fmt.Sprintf(`%s ORDER BY %s DESC NULLS LAST, %s DESC NULLS LAST LIMIT $1 OFFSET $2`,
		repository.selectClause(), schema.CatalogMapping.Episode3D, schema.CatalogMapping.Episode2D)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "mapping_list")
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		mapping, err := scanMapping(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan mapping: %w", err)
		}
		mappings = append(mappings, mapping)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "mapping_list")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogMapping.Table)

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "mapping_list_count")
	}

	return mappings, total, nil
}

/*
Insert persists a new mapping.
*/
func (repository *mappingRepository) Insert(context context.Context, mapping *Mapping) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`,
		schema.CatalogMapping.Table,
		schema.CatalogMapping.ID, schema.CatalogMapping.Chapters,
		schema.CatalogMapping.Episode3D, schema.CatalogMapping.Episode2D,
		schema.CatalogMapping.CreatedAt, schema.CatalogMapping.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query,
		mapping.ID, mapping.Chapters, mapping.Episode3D, mapping.Episode2D); err != nil {
		return dberr.Wrap(err, "mapping_insert")
	}

	return nil
}

/*
Update rewrites the chapters and episode references of an existing mapping.
*/
func (repository *mappingRepository) Update(context context.Context, mapping *Mapping) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
	`,
		schema.CatalogMapping.Table,
		schema.CatalogMapping.Chapters,
		schema.CatalogMapping.Episode3D, schema.CatalogMapping.Episode2D,
		schema.CatalogMapping.UpdatedAt,
		schema.CatalogMapping.ID,
	)

	result, err := repository.pool.Exec(context, query,
		mapping.ID, mapping.Chapters, mapping.Episode3D, mapping.Episode2D)
	if err != nil {
		return dberr.Wrap(err, "mapping_update")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Delete removes a mapping record.
*/
func (repository *mappingRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogMapping.Table, schema.CatalogMapping.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "mapping_delete")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Count returns the total number of mapping records.
*/
func (repository *mappingRepository) Count(context context.Context) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogMapping.Table)

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "mapping_count")
	}

	return total, nil
}

// # Row Mapping

func (repository *mappingRepository) queryOne(context context.Context, query, action string, args ...any) (*Mapping, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	mapping, err := scanMapping(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan mapping: %w", err)
	}

	return mapping, nil
}

func scanMapping(scan func(dest ...any) error) (*Mapping, error) {
	var mapping Mapping

	if err := scan(&mapping.ID, &mapping.Chapters,
		&mapping.Episode3D, &mapping.Episode2D,
		&mapping.CreatedAt, &mapping.UpdatedAt); err != nil {
		return nil, err
	}

	return &mapping, nil
}
