package secteurs

// Secteur represents a delivery sector within a city.
type Secteur struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required"`
	VilleID int64  `json:"ville_id" validate:"required,gt=0"`
	// VilleName is eager-loaded for display.
	VilleName string `json:"ville_name,omitempty"`
}
