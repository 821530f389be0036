// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides the PostgreSQL implementation for the chapter catalog.

It leans on Postgres JSONB semantics to keep link lists consistent under
concurrent reviewers:

  - JSONB containment (@>) performs the duplicate-URL check inside the same
    statement that appends, eliminating read-modify-write races.
  - 'INSERT ... ON CONFLICT' provides the create-on-first-reference
    behavior the contribution pipeline relies on.
*/
package chapter

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

// chapterRepository implements the [Repository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &chapterRepository{pool: pool}
}

/*
Find returns the chapter with the given number, or nil when absent.
*/
func (repository *chapterRepository) Find(context context.Context, number int) (*Chapter, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogChapter.Number, schema.CatalogChapter.Title, schema.CatalogChapter.Links,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Number,
	)

	rows, err := repository.pool.Query(context, query, number)
	if err != nil {
		return nil, dberr.Wrap(err, "chapter_find")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	chapter, err := scanChapter(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
	}

	return chapter, nil
}

/*
FindMany returns the existing chapters among the given numbers, ascending.
*/
func (repository *chapterRepository) FindMany(context context.Context, numbers []int) ([]*Chapter, error) {

	if len(numbers) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC
	`,
		schema.CatalogChapter.Number, schema.CatalogChapter.Title, schema.CatalogChapter.Links,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Number,
		schema.CatalogChapter.Number,
	)

	rows, err := repository.pool.Query(context, query, numbers)
	if err != nil {
		return nil, dberr.Wrap(err, "chapter_find_many")
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

/*
Upsert inserts the chapter, or refreshes the title of an existing record.
*/
func (repository *chapterRepository) Upsert(context context.Context, chapter *Chapter) error {

	linksJSON, err := marshalLinks(chapter.Links)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Number, schema.CatalogChapter.Title, schema.CatalogChapter.Links,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.Number,
		schema.CatalogChapter.Title, schema.CatalogChapter.Title,
		schema.CatalogChapter.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, chapter.Number, chapter.Title, linksJSON); err != nil {
		return dberr.Wrap(err, "chapter_upsert")
	}

	return nil
}

/*
AppendLink appends a link in a single atomic statement.

Description: The ON CONFLICT branch carries a WHERE guard that rejects the
update when the link list already contains the URL, so "checked and
appended" is one database round-trip. RowsAffected = 0 therefore means
"duplicate URL".
*/
func (repository *chapterRepository) AppendLink(context context.Context, number int, l link.Link) (bool, error) {

	linksJSON, err := marshalLinks([]link.Link{l})
	if err != nil {
		return false, err
	}

	// Containment probe matches any element holding this exact URL.
	urlProbe, err := json.Marshal([]map[string]string{{"url": l.URL}})
	if err != nil {
		return false, fmt.Errorf("postgres: failed to marshal url probe: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, '', $2, NOW(), NOW())
		ON CONFLICT (%s) DO UPDATE
		SET %s = %s.%s || EXCLUDED.%s, %s = NOW()
		WHERE NOT %s.%s @> $3
	`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Number, schema.CatalogChapter.Title, schema.CatalogChapter.Links,
		schema.CatalogChapter.CreatedAt, schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.Number,
		schema.CatalogChapter.Links, schema.CatalogChapter.Table, schema.CatalogChapter.Links, schema.CatalogChapter.Links,
		schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.Table, schema.CatalogChapter.Links,
	)

	result, err := repository.pool.Exec(context, query, number, linksJSON, urlProbe)
	if err != nil {
		return false, dberr.Wrap(err, "chapter_append_link")
	}

	return result.RowsAffected() > 0, nil
}

/*
Delete removes a chapter record.
*/
func (repository *chapterRepository) Delete(context context.Context, number int) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogChapter.Table, schema.CatalogChapter.Number)

	result, err := repository.pool.Exec(context, query, number)
	if err != nil {
		return dberr.Wrap(err, "chapter_delete")
	}

	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Count returns the total number of chapter records.
*/
func (repository *chapterRepository) Count(context context.Context) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogChapter.Table)

	var total int64
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "chapter_count")
	}

	return total, nil
}

// # Row Mapping

// scanChapter hydrates one chapter row, decoding the JSONB link list.
func scanChapter(scan func(dest ...any) error) (*Chapter, error) {
	var chapter Chapter
	var linksJSON []byte

	if err := scan(&chapter.Number, &chapter.Title, &linksJSON, &chapter.CreatedAt, &chapter.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(linksJSON, &chapter.Links); err != nil {
		return nil, err
	}

	if chapter.Links == nil {
		chapter.Links = []link.Link{}
	}

	return &chapter, nil
}

// marshalLinks encodes a link list for JSONB storage.
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
