// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package episode

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tamgioi/internal/core/link"
	"github.com/taibuivan/tamgioi/internal/platform/database/schema"
	"github.com/taibuivan/tamgioi/internal/platform/dberr"
)

// # PostgreSQL Repository

// episodeRepository implements the [Repository] interface using pgx.
type episodeRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed episode store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &episodeRepository{pool: pool}
}

/*
Find returns the episode with the given axis and number, or nil when absent.
*/
func (repository *episodeRepository) Find(context context.Context, axis Axis, number int) (*Episode, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number, schema.CatalogEpisode.Title,
		schema.CatalogEpisode.Links, schema.CatalogEpisode.CreatedAt, schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number,
	)

	rows, err := repository.pool.Query(context, query, string(axis), number)
	if err != nil {
		return nil, dberr.Wrap(err, "episode_find")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	episode, err := scanEpisode(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan episode: %w", err)
	}

	return episode, nil
}

/*
Upsert inserts the episode, or refreshes the title of an existing record.
*/
func (repository *episodeRepository) Upsert(context context.Context, episode *Episode) error {

	linksJSON, err := marshalLinks(episode.Links)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number, schema.CatalogEpisode.Title,
		schema.CatalogEpisode.Links, schema.CatalogEpisode.CreatedAt, schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number,
		schema.CatalogEpisode.Title, schema.CatalogEpisode.Title,
		schema.CatalogEpisode.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query,
		string(episode.Axis), episode.Number, episode.Title, linksJSON); err != nil {
		return dberr.Wrap(err, "episode_upsert")
	}

	return nil
}

/*
AppendLink appends a link in a single atomic statement.

Description: Same JSONB containment guard as the chapter store; the
duplicate check and the append are one round-trip. RowsAffected = 0
means "duplicate URL".
*/
func (repository *episodeRepository) AppendLink(context context.Context, axis Axis, number int, l link.Link) (bool, error) {

	linksJSON, err := marshalLinks([]link.Link{l})
	if err != nil {
		return false, err
	}

	urlProbe, err := json.Marshal([]map[string]string{{"url": l.URL}})
	if err != nil {
		return false, fmt.Errorf("postgres: failed to marshal url probe: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, '', $3, NOW(), NOW())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = %s.%s || EXCLUDED.%s, %s = NOW()
		WHERE NOT %s.%s @> $4
	`,
		schema.CatalogEpisode.Table,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number, schema.CatalogEpisode.Title,
		schema.CatalogEpisode.Links, schema.CatalogEpisode.CreatedAt, schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number,
		schema.CatalogEpisode.Links, schema.CatalogEpisode.Table, schema.CatalogEpisode.Links, schema.CatalogEpisode.Links,
		schema.CatalogEpisode.UpdatedAt,
		schema.CatalogEpisode.Table, schema.CatalogEpisode.Links,
	)

	result, err := repository.pool.Exec(context, query, string(axis), number, linksJSON, urlProbe)
	if err != nil {
		return false, dberr.Wrap(err, "episode_append_link")
	}

	return result.RowsAffected() > 0, nil
}

/*
Delete removes an episode record.
*/
func (repository *episodeRepository) Delete(context context.Context, axis Axis, number int) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CatalogEpisode.Table, schema.CatalogEpisode.Axis, schema.CatalogEpisode.Number)

	result, err := repository.pool.Exec(context, query, string(axis), number)
	if err != nil {
		return dberr.Wrap(err, "episode_delete")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Count returns the number of episode records on one axis.
*/
func (repository *episodeRepository) Count(context context.Context, axis Axis) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.CatalogEpisode.Table, schema.CatalogEpisode.Axis)

	var total int64
	if err := repository.pool.QueryRow(context, query, string(axis)).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "episode_count")
	}

	return total, nil
}

// # Row Mapping

func scanEpisode(scan func(dest ...any) error) (*Episode, error) {
	var episode Episode
	var axis string
	var linksJSON []byte

	if err := scan(&axis, &episode.Number, &episode.Title, &linksJSON, &episode.CreatedAt, &episode.UpdatedAt); err != nil {
		return nil, err
	}

	episode.Axis = Axis(axis)

	if err := json.Unmarshal(linksJSON, &episode.Links); err != nil {
		return nil, err
	}

	if episode.Links == nil {
		episode.Links = []link.Link{}
	}

	return &episode, nil
}

func marshalLinks(links []link.Link) ([]byte, error) {
	if links == nil {
		links = []link.Link{}
	}

	encoded, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to marshal links: %w", err)
	}

	return encoded, nil
}
