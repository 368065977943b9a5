package commerciaux

// Commercial is a sales representative identified by a unique internal code.
type Commercial struct {
	ID       int64  `json:"id"`
	Code     string `json:"code" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	IsActive bool   `json:"is_active"`
}
