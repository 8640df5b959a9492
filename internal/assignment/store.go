package assignment

import (
	"sync"

	"opsdash/internal/interval"
	"opsdash/internal/models"
)

// Store is the ordered, in-memory collection of assignment rows for one
// order's delivery-assignment session. Rows are addressed by id; product
// grouping is computed from the oiid on read, never from slice
// adjacency. Every mutation goes through the store so the per-product
// invariants (>=1 row, unique assignment index, non-overlapping ranges)
// hold at all times. The store is safe for concurrent use: sessions are
// shared between HTTP handlers and the stage-event consumer.
type Store struct {
	mu       sync.RWMutex
	rows     []models.AssignmentRow
	resolver *Resolver
}

func NewStore(rows []models.AssignmentRow, resolver *Resolver) *Store {
	cp := make([]models.AssignmentRow, len(rows))
	copy(cp, rows)
	return &Store{rows: cp, resolver: resolver}
}

// Rows returns a copy of the collection in its current order.
func (s *Store) Rows() []models.AssignmentRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AssignmentRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Row returns the row with the given id.
func (s *Store) Row(rowId string) (models.AssignmentRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(rowId)
	if i < 0 {
		return models.AssignmentRow{}, false
	}
	return s.rows[i], true
}

// index assumes the caller holds the lock.
func (s *Store) index(rowId string) int {
	for i := range s.rows {
		if s.rows[i].Id == rowId {
			return i
		}
	}
	return -1
}

// AddSubRange appends a fresh row for the product: shared fields cloned
// from an existing sibling, empty interval, next assignment index,
// inserted right after the product's last row so rendering stays
// grouped.
func (s *Store) AddSubRange(oiid string) (models.AssignmentRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := -1
	maxIdx := -1
	for i := range s.rows {
		if s.rows[i].Oiid != oiid {
			continue
		}
		last = i
		if s.rows[i].AssignmentIndex > maxIdx {
			maxIdx = s.rows[i].AssignmentIndex
		}
	}
	if last < 0 {
		return models.AssignmentRow{}, ErrUnknownItem
	}

	src := s.rows[last]
	row := models.AssignmentRow{
		Id:              models.RowId(oiid, maxIdx+1),
		Oiid:            oiid,
		AssignmentIndex: maxIdx + 1,
		Product:         src.Product,
		GrossWeight:     src.GrossWeight,
		TotalBoxes:      src.TotalBoxes,
		Labour:          src.Labour,
		Status:          models.StatusPending,
	}

	s.rows = append(s.rows, models.AssignmentRow{})
	copy(s.rows[last+2:], s.rows[last+1:])
	s.rows[last+1] = row
	return row, nil
}

// RemoveSubRange deletes a row unless it is the only one left for its
// product.
func (s *Store) RemoveSubRange(rowId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(rowId)
	if i < 0 {
		return ErrUnknownRow
	}
	count := 0
	for j := range s.rows {
		if s.rows[j].Oiid == s.rows[i].Oiid {
			count++
		}
	}
	if count <= 1 {
		return ErrLastRow
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// Siblings collects the committed ranges of the product's other rows.
func (s *Store) Siblings(rowId string) []interval.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siblings(rowId)
}

// siblings assumes the caller holds the lock.
func (s *Store) siblings(rowId string) []interval.Range {
	i := s.index(rowId)
	if i < 0 {
		return nil
	}
	var out []interval.Range
	for j := range s.rows {
		if j == i || s.rows[j].Oiid != s.rows[i].Oiid || s.rows[j].CtRange == "" {
			continue
		}
		r, err := interval.Parse(s.rows[j].CtRange)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SetCTRange commits a CT range edit. An empty value clears the range;
// anything else must parse and validate against the product's unit
// count and sibling ranges. On rejection the stored row is untouched.
func (s *Store) SetCTRange(rowId, ct string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(rowId)
	if i < 0 {
		return ErrUnknownRow
	}
	if ct == "" {
		s.rows[i].CtRange = ""
		s.rows[i].PackageCount = 0
		return nil
	}
	r, err := interval.ParseAndValidate(ct, s.rows[i].TotalBoxes, s.siblings(rowId))
	if err != nil {
		return err
	}
	s.rows[i].CtRange = r.String()
	s.rows[i].PackageCount = r.PackageCount()
	return nil
}

// SetDriver re-derives the denormalized driver fields from the roster;
// an empty id clears them.
func (s *Store) SetDriver(rowId, driverId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(rowId)
	if i < 0 {
		return ErrUnknownRow
	}
	info, _ := s.resolver.Driver(driverId)
	if driverId == "" {
		info = DriverInfo{}
	}
	s.rows[i].DriverId = driverId
	s.rows[i].DriverName = info.DriverName
	s.rows[i].VehicleNumber = info.VehicleNumber
	s.rows[i].PhoneNumber = info.PhoneNumber
	s.rows[i].Capacity = info.Capacity
	return nil
}

// SetAirport resolves the destination city; an empty name clears it.
func (s *Store) SetAirport(rowId, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(rowId)
	if i < 0 {
		return ErrUnknownRow
	}
	city, _ := s.resolver.AirportCity(name)
	if name == "" {
		city = ""
	}
	s.rows[i].AirportName = name
	s.rows[i].AirportCity = city
	return nil
}

func (s *Store) SetStatus(rowId string, status models.RowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(rowId)
	if i < 0 {
		return ErrUnknownRow
	}
	if !status.Valid() {
		return ErrBadStatus
	}
	s.rows[i].Status = status
	return nil
}
