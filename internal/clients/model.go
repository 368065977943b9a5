package clients

// Client is a customer account. The commercial assignment is optional; a nil
// CommercialID means the client is not followed by a sales representative.
// Remise and RemiseSpeciale are independent percentages: the standing
// discount applied to every order and a negotiated special rate.
type Client struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code" validate:"required"`
	FullName       string  `json:"full_name" validate:"required"`
	Phone          string  `json:"phone" validate:"required,min=10,max=20"`
	VilleID        int64   `json:"ville_id" validate:"required,gt=0"`
	VilleName      string  `json:"ville_name"`
	SecteurID      int64   `json:"secteur_id" validate:"required,gt=0"`
	SecteurName    string  `json:"secteur_name"`
	CommercialID   *int64  `json:"commercial_id"`
	CommercialName string  `json:"commercial_name"`
	Remise         float64 `json:"remise" validate:"gte=0,lte=100"`
	RemiseSpeciale float64 `json:"remise_speciale" validate:"gte=0,lte=100"`
	IsActive       bool    `json:"is_active"`
	Address        string  `json:"address"`
}
