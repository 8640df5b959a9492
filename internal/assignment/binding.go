package assignment

import "opsdash/internal/models"

// DriverInfo is the denormalized display data copied onto a row when a
// driver is selected.
type DriverInfo struct {
	DriverName    string
	VehicleNumber string
	PhoneNumber   string
	Capacity      string
}

// Resolver answers driver/airport lookups against the reference lists
// loaded for the session (drivers present today, full airport list).
// Read-only; unknown ids resolve to zero values.
type Resolver struct {
	drivers  []models.Driver
	airports []models.Airport
}

func NewResolver(drivers []models.Driver, airports []models.Airport) *Resolver {
	return &Resolver{drivers: drivers, airports: airports}
}

// Driver matches on either the record id or the business driver id.
func (r *Resolver) Driver(id string) (DriverInfo, bool) {
	if id == "" {
		return DriverInfo{}, false
	}
	for _, d := range r.drivers {
		if d.Did == id || d.DriverId == id {
			return DriverInfo{
				DriverName:    d.DriverName,
				VehicleNumber: d.VehicleNumber,
				PhoneNumber:   d.PhoneNumber,
				Capacity:      d.Capacity,
			}, true
		}
	}
	return DriverInfo{}, false
}

// AirportCity returns the registered city for an airport name.
func (r *Resolver) AirportCity(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, a := range r.airports {
		if a.Name == name {
			return a.City, true
		}
	}
	return "", false
}
