package model

// CatalogExport is the full-catalog dump returned by GET /export.
type CatalogExport struct {
	GeneratedAt   string        `json:"generatedAt"`
	Categories    []Category    `json:"categories"`
	Subcategories []Subcategory `json:"subcategories"`
	Tags          []Tag         `json:"tags"`
	Videos        []Video       `json:"videos"`
}
