package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// RowStatus is the delivery progress of a single assignment row.
type RowStatus string

const (
	StatusPending   RowStatus = "pending"
	StatusOnTrip    RowStatus = "on_trip"
	StatusCompleted RowStatus = "completed"
)

func (s RowStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOnTrip, StatusCompleted:
		return true
	}
	return false
}

// AssignmentRow binds one CT sub-range of a product to a driver and a
// destination airport. A product (oiid) may own several rows; the shared
// product fields are identical across them.
type AssignmentRow struct {
	Id              string `json:"id"              validate:"required"`
	Oiid            string `json:"oiid"            validate:"required"`
	AssignmentIndex int    `json:"assignmentIndex" validate:"gte=0"`

	Product     string `json:"product"`
	GrossWeight string `json:"grossWeight"`
	TotalBoxes  int    `json:"totalBoxes"`
	Labour      string `json:"labour"`

	CtRange      string `json:"ctRange"`
	PackageCount int    `json:"packageCount"`

	DriverId      string `json:"driverId"`
	DriverName    string `json:"driverName"`
	VehicleNumber string `json:"vehicleNumber"`
	PhoneNumber   string `json:"phoneNumber"`
	Capacity      string `json:"capacity"`

	AirportName string `json:"airportName"`
	AirportCity string `json:"airportCity"`

	Status RowStatus `json:"status" validate:"omitempty,oneof=pending on_trip completed"`
}

// RowId builds the composite row identifier from the owning item and the
// per-product assignment index.
func RowId(oiid string, assignmentIndex int) string {
	return fmt.Sprintf("%s#%d", oiid, assignmentIndex)
}

// DriverGroup aggregates the rows assigned to one driver. Ephemeral,
// recomputed on every aggregation.
type DriverGroup struct {
	DriverId      string             `json:"driverId"`
	DriverName    string             `json:"driverName"`
	VehicleNumber string             `json:"vehicleNumber"`
	TotalPackages int                `json:"totalPackages"`
	TotalWeight   float64            `json:"totalWeight"`
	Assignments   []DriverAssignment `json:"assignments"`
}

// DriverAssignment is the simplified per-row record kept inside a
// driver group.
type DriverAssignment struct {
	Product      string `json:"product"`
	CtRange      string `json:"ctRange"`
	PackageCount int    `json:"packageCount"`
	AirportName  string `json:"airportName"`
}

// AirportGroup aggregates the rows destined for one airport under a
// sequential customer-prefixed code.
type AirportGroup struct {
	Code          string           `json:"code"`
	AirportName   string           `json:"airportName"`
	City          string           `json:"city"`
	TotalPackages int              `json:"totalPackages"`
	TotalWeight   float64          `json:"totalWeight"`
	Products      []AirportProduct `json:"products"`
}

type AirportProduct struct {
	Product      string `json:"product"`
	CtRange      string `json:"ctRange"`
	PackageCount int    `json:"packageCount"`
	DriverName   string `json:"driverName"`
}

// Summary is the grouped view persisted alongside the rows.
type Summary struct {
	DriverAssignments []DriverGroup  `json:"driverAssignments"`
	AirportGroups     []AirportGroup `json:"airportGroups"`
	TotalPackages     int            `json:"totalPackages"`
	TotalWeight       float64        `json:"totalWeight"`
}

// Stage3Payload is the full delivery-assignment payload written back to
// storage on submit; it completely replaces any prior stage-3 payload
// for the order.
type Stage3Payload struct {
	Products    []AssignmentRow `json:"products"`
	SummaryData Summary         `json:"summaryData"`
}

// AssignmentBlob carries the per-stage payloads persisted for one order.
// Each field may arrive either as a JSON object or as a JSON-encoded
// string; historical records used several names for the stage-2 slot.
type AssignmentBlob struct {
	Stage1SummaryData json.RawMessage `json:"stage1_summary_data,omitempty"`
	Stage2Data        json.RawMessage `json:"stage2_data,omitempty"`
	Stage2SummaryData json.RawMessage `json:"stage2_summary_data,omitempty"`
	SummaryData       json.RawMessage `json:"summary_data,omitempty"`
	Stage3Data        json.RawMessage `json:"stage3_data,omitempty"`
}

// Stage2Blob returns the first populated stage-2 slot.
func (b AssignmentBlob) Stage2Blob() json.RawMessage {
	if len(b.Stage2Data) > 0 {
		return b.Stage2Data
	}
	if len(b.Stage2SummaryData) > 0 {
		return b.Stage2SummaryData
	}
	return b.SummaryData
}

// StageEvent is published on the workflow topic whenever a stage
// completes for an order.
type StageEvent struct {
	Oid           string    `json:"oid"            validate:"required"`
	Stage         string    `json:"stage"          validate:"required"`
	TotalPackages int       `json:"total_packages"`
	TotalWeight   float64   `json:"total_weight"`
	At            time.Time `json:"at"`
}

// OrderAssignment is the stored per-order workflow record: one row per
// order, stage payloads kept as JSON text columns.
type OrderAssignment struct {
	Oid               string    `json:"oid" gorm:"primary_key;unique"`
	CurrentStage      string    `json:"current_stage"`
	Stage1SummaryData string    `json:"stage1_summary_data" gorm:"type:text"`
	Stage2SummaryData string    `json:"stage2_summary_data" gorm:"type:text"`
	Stage3Data        string    `json:"stage3_data"         gorm:"type:text"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Blob converts the stored record into the raw blob consumed by the
// reconciler.
func (a OrderAssignment) Blob() AssignmentBlob {
	b := AssignmentBlob{}
	if a.Stage1SummaryData != "" {
		b.Stage1SummaryData = json.RawMessage(a.Stage1SummaryData)
	}
	if a.Stage2SummaryData != "" {
		b.Stage2SummaryData = json.RawMessage(a.Stage2SummaryData)
	}
	if a.Stage3Data != "" {
		b.Stage3Data = json.RawMessage(a.Stage3Data)
	}
	return b
}
