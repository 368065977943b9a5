package villes

// Ville represents a city served by the distributor.
type Ville struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}
