package livreurs

// Livreur is a delivery person attached to outbound operations.
type Livreur struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}
