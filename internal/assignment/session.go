package assignment

import (
	"sync"

	"opsdash/internal/models"
	"opsdash/internal/workflow"
)

// Session is one order's live delivery-assignment state: the reconciled
// row set plus the reference data it was resolved against. Nothing here
// is persisted; abandoning the session discards every unsaved mutation.
// Sessions are shared between concurrent handlers and the stage-event
// consumer; the row set is guarded by the Store and the workflow stage
// by the Stage/SetStage accessors. The reference fields are written
// once at construction and read-only afterwards.
type Session struct {
	Order    models.Order
	Drivers  []models.Driver
	Airports []models.Airport
	Store    *Store

	mu    sync.RWMutex
	stage workflow.Stage
}

func NewSession(order models.Order, drivers []models.Driver, airports []models.Airport,
	stage workflow.Stage, store *Store) *Session {
	return &Session{
		Order:    order,
		Drivers:  drivers,
		Airports: airports,
		stage:    stage,
		Store:    store,
	}
}

func (s *Session) Stage() workflow.Stage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stage
}

func (s *Session) SetStage(st workflow.Stage) {
	s.mu.Lock()
	s.stage = st
	s.mu.Unlock()
}

// Summary recomputes the grouped view from the current rows.
func (s *Session) Summary() models.Summary {
	return BuildSummary(s.Order.CustomerName, s.Store.Rows())
}

// Submission builds the stage-3 payload for persistence.
func (s *Session) Submission() models.Stage3Payload {
	return BuildSubmission(s.Order.CustomerName, s.Store.Rows())
}
