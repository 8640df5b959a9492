package assignment

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"opsdash/internal/models"
)

// BuildSummary groups the rows by driver and by destination airport.
//
// Airport codes are an explicit contract: distinct airport names are
// collected in first-occurrence order over the full row slice and coded
// "<customerPrefix><NNN>" starting at 001, where the prefix is the
// customer name with any trailing digit run stripped. Recomputing over
// an unchanged row order always yields the same codes.
func BuildSummary(customerName string, rows []models.AssignmentRow) models.Summary {
	sum := models.Summary{
		DriverAssignments: buildDriverGroups(rows),
		AirportGroups:     buildAirportGroups(customerName, rows),
	}
	for _, r := range rows {
		sum.TotalPackages += r.PackageCount
		sum.TotalWeight += numericWeight(r.GrossWeight)
	}
	return sum
}

// BuildSubmission assembles the payload persisted on submit: the full
// row array plus the grouped summary.
func BuildSubmission(customerName string, rows []models.AssignmentRow) models.Stage3Payload {
	return models.Stage3Payload{
		Products:    rows,
		SummaryData: BuildSummary(customerName, rows),
	}
}

func buildDriverGroups(rows []models.AssignmentRow) []models.DriverGroup {
	var groups []models.DriverGroup
	byDriver := make(map[string]int)
	for _, r := range rows {
		if r.DriverId == "" {
			continue
		}
		i, ok := byDriver[r.DriverId]
		if !ok {
			i = len(groups)
			byDriver[r.DriverId] = i
			groups = append(groups, models.DriverGroup{
				DriverId:      r.DriverId,
				DriverName:    r.DriverName,
				VehicleNumber: r.VehicleNumber,
			})
		}
		groups[i].TotalPackages += r.PackageCount
		groups[i].TotalWeight += numericWeight(r.GrossWeight)
		groups[i].Assignments = append(groups[i].Assignments, models.DriverAssignment{
			Product:      r.Product,
			CtRange:      r.CtRange,
			PackageCount: r.PackageCount,
			AirportName:  r.AirportName,
		})
	}
	return groups
}

func buildAirportGroups(customerName string, rows []models.AssignmentRow) []models.AirportGroup {
	prefix := customerPrefix(customerName)

	var groups []models.AirportGroup
	byAirport := make(map[string]int)
	for _, r := range rows {
		if r.AirportName == "" {
			continue
		}
		i, ok := byAirport[r.AirportName]
		if !ok {
			i = len(groups)
			byAirport[r.AirportName] = i
			groups = append(groups, models.AirportGroup{
				Code:        fmt.Sprintf("%s%03d", prefix, i+1),
				AirportName: r.AirportName,
				City:        r.AirportCity,
			})
		}
		groups[i].TotalPackages += r.PackageCount
		groups[i].TotalWeight += numericWeight(r.GrossWeight)
		groups[i].Products = append(groups[i].Products, models.AirportProduct{
			Product:      r.Product,
			CtRange:      r.CtRange,
			PackageCount: r.PackageCount,
			DriverName:   r.DriverName,
		})
	}
	return groups
}

// customerPrefix strips a trailing digit run from the customer name, so
// "Acme99" codes as "Acme001", "Acme002", ...
func customerPrefix(name string) string {
	s := strings.TrimSpace(name)
	end := len(s)
	for end > 0 && unicode.IsDigit(rune(s[end-1])) {
		end--
	}
	return s[:end]
}

// numericWeight extracts the leading numeric portion of a denormalized
// weight string such as "18.5 kg".
func numericWeight(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	w, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return w
}
