package transporteurs

// Transporteur represents a carrier: a driver and the vehicle they operate.
type Transporteur struct {
	ID               int64  `json:"id"`
	DriverName       string `json:"driver_name" validate:"required"`
	VehiclePlate     string `json:"vehicle_plate" validate:"required"`
	DriverNationalID string `json:"driver_national_id" validate:"required"`
	DriverPhone      string `json:"driver_phone"`
	VehicleType      string `json:"vehicle_type"`
}
