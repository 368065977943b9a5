package marques

// Marque represents a product brand.
type Marque struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}
