// Package schema centralizes table and column identifiers so repositories
// never embed raw string literals in their SQL.
package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table     string
	Number    string
	Title     string
	Links     string
	CreatedAt string
	UpdatedAt string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:     "catalog.chapter",
	Number:    "number",
	Title:     "title",
	Links:     "links",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.Number, t.Title, t.Links, t.CreatedAt, t.UpdatedAt}
}
