package schema

// CatalogMappingTable represents the 'catalog.mapping' table
type CatalogMappingTable struct {
	Table     string
	ID        string
	Chapters  string
	Episode3D string
	Episode2D string
	CreatedAt string
	UpdatedAt string
}

// CatalogMapping is the schema definition for catalog.mapping
var CatalogMapping = CatalogMappingTable{
	Table:     "catalog.mapping",
	ID:        "id",
	Chapters:  "chapters",
	Episode3D: "episode3d",
	Episode2D: "episode2d",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CatalogMappingTable) Columns() []string {
	return []string{t.ID, t.Chapters, t.Episode3D, t.Episode2D, t.CreatedAt, t.UpdatedAt}
}
