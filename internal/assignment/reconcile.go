package assignment

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"opsdash/internal/models"
)

// Reconciler rebuilds the initial row set for an order from whatever
// prior-stage data survived. Every decode attempt is best-effort:
// malformed or missing payloads fall through to the next layer and the
// reconciler always produces a row set.
type Reconciler struct {
	// PackagingWeightPerBox is the assumed packaging weight added per
	// box when synthesizing gross weight for fresh rows.
	PackagingWeightPerBox float64
}

// Rows applies the layered fallback:
//  1. a persisted stage-3 payload is reloaded verbatim;
//  2. otherwise one row per order item, labour derived from the stage-1
//     summary;
//  3. otherwise labour from the legacy stage-2 productAssignments shape;
//  4. otherwise labour is "-".
func (rc Reconciler) Rows(order models.Order, blob models.AssignmentBlob) []models.AssignmentRow {
	if rows, ok := decodeStage3(blob.Stage3Data); ok {
		return rows
	}

	labour, ok := decodeStage1(blob.Stage1SummaryData)
	if !ok {
		labour, _ = decodeStage2(blob.Stage2Blob())
	}

	rows := make([]models.AssignmentRow, 0, len(order.Items))
	for _, item := range order.Items {
		boxes := item.TotalBoxes()
		gross := item.NetWeight + float64(boxes)*rc.PackagingWeightPerBox
		rows = append(rows, models.AssignmentRow{
			Id:              models.RowId(item.Oiid, 0),
			Oiid:            item.Oiid,
			AssignmentIndex: 0,
			Product:         item.Name(),
			GrossWeight:     fmt.Sprintf("%g kg", gross),
			TotalBoxes:      boxes,
			Labour:          joinLabour(labour[item.Oiid]),
			Status:          models.StatusPending,
		})
	}
	return rows
}

// unwrap tolerates payloads stored either as JSON objects or as
// JSON-encoded strings.
func unwrap(raw json.RawMessage) []byte {
	b := []byte(strings.TrimSpace(string(raw)))
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		return []byte(s)
	}
	return b
}

// decodeStage3 reloads a previously submitted payload. Prior validation
// is trusted; the only requirement is a non-empty product list.
func decodeStage3(raw json.RawMessage) ([]models.AssignmentRow, bool) {
	b := unwrap(raw)
	if b == nil {
		return nil, false
	}
	var p models.Stage3Payload
	if err := json.Unmarshal(b, &p); err != nil || len(p.Products) == 0 {
		return nil, false
	}
	return p.Products, true
}

// Stage-1 collection summary: driver groups, each holding a map of
// item id -> labour names. Historical records keyed some entries as
// "<oiid>-remaining"; the suffix is stripped before grouping.
type stage1Summary struct {
	DriverGroups []stage1Group `json:"driver_groups"`
}

type stage1Group struct {
	DriverName  string              `json:"driver_name"`
	Assignments map[string][]string `json:"assignments"`
}

// legacy camelCase spelling of the same structure
type stage1SummaryLegacy struct {
	DriverGroups []stage1Group `json:"driverGroups"`
}

func decodeStage1(raw json.RawMessage) (map[string][]string, bool) {
	b := unwrap(raw)
	if b == nil {
		return nil, false
	}

	var groups []stage1Group
	var cur stage1Summary
	if err := json.Unmarshal(b, &cur); err == nil && len(cur.DriverGroups) > 0 {
		groups = cur.DriverGroups
	} else {
		var leg stage1SummaryLegacy
		if err := json.Unmarshal(b, &leg); err != nil || len(leg.DriverGroups) == 0 {
			return nil, false
		}
		groups = leg.DriverGroups
	}

	out := make(map[string][]string)
	for _, g := range groups {
		// map iteration order is random; sort keys so the joined
		// labour string is stable across loads
		keys := make([]string, 0, len(g.Assignments))
		for k := range g.Assignments {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			oiid := strings.TrimSuffix(k, "-remaining")
			out[oiid] = append(out[oiid], g.Assignments[k]...)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// Legacy stage-2 shape: a flat productAssignments list with one labour
// name per entry, under several historical field spellings.
type stage2Legacy struct {
	ProductAssignments []stage2Entry `json:"productAssignments"`
}

type stage2Entry struct {
	ItemId     string `json:"item_id"`
	ItemIdAlt  string `json:"itemId"`
	Oiid       string `json:"oiid"`
	LabourName string `json:"labour_name"`
	LabourAlt  string `json:"labourName"`
}

func (e stage2Entry) itemId() string {
	for _, v := range []string{e.ItemId, e.ItemIdAlt, e.Oiid} {
		if v != "" {
			return v
		}
	}
	return ""
}

func (e stage2Entry) labour() string {
	if e.LabourName != "" {
		return e.LabourName
	}
	return e.LabourAlt
}

func decodeStage2(raw json.RawMessage) (map[string][]string, bool) {
	b := unwrap(raw)
	if b == nil {
		return nil, false
	}
	var leg stage2Legacy
	if err := json.Unmarshal(b, &leg); err != nil || len(leg.ProductAssignments) == 0 {
		return nil, false
	}
	out := make(map[string][]string)
	for _, e := range leg.ProductAssignments {
		id := strings.TrimSuffix(e.itemId(), "-remaining")
		if id == "" || e.labour() == "" {
			continue
		}
		out[id] = append(out[id], e.labour())
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// joinLabour deduplicates in first-occurrence order and joins with
// ", "; empty input collapses to the "-" placeholder.
func joinLabour(names []string) string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}
