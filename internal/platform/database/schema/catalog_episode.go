package schema

// CatalogEpisodeTable represents the 'catalog.episode' table.
//
// Both adaptation axes live in one table; the Axis column keeps their
// identity spaces disjoint via the composite primary key (axis, number).
type CatalogEpisodeTable struct {
	Table     string
	Axis      string
	Number    string
	Title     string
	Links     string
	CreatedAt string
	UpdatedAt string
}

// CatalogEpisode is the schema definition for catalog.episode
var CatalogEpisode = CatalogEpisodeTable{
	Table:     "catalog.episode",
	Axis:      "axis",
	Number:    "number",
	Title:     "title",
	Links:     "links",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogEpisodeTable) Columns() []string {
	return []string{t.Axis, t.Number, t.Title, t.Links, t.CreatedAt, t.UpdatedAt}
}
