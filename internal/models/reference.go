package models

// Driver is one entry of the drivers-present-today reference list.
type Driver struct {
	Did           string `json:"did"`
	DriverName    string `json:"driver_name"    validate:"required"`
	DriverId      string `json:"driver_id"      validate:"required"`
	VehicleNumber string `json:"vehicle_number"`
	PhoneNumber   string `json:"phone_number"`
	Capacity      string `json:"capacity"`
}

// Airport is one entry of the destination airport reference list.
type Airport struct {
	Aid  string `json:"aid"`
	Name string `json:"name" validate:"required"`
	City string `json:"city"`
}
