package categories

// Categorie represents a product category within a brand.
type Categorie struct {
	ID       int64  `json:"id"`
	Name     string `json:"name" validate:"required"`
	MarqueID int64  `json:"marque_id" validate:"required,gt=0"`
	// MarqueName is eager-loaded for display.
	MarqueName string `json:"marque_name,omitempty"`
}
