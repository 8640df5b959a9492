package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"opsdash/internal/assignment"
	"opsdash/internal/models"
	"opsdash/internal/repository"
)

// Upstream reads the dashboard backend's reference endpoints.
type Upstream interface {
	OrderDetail(ctx context.Context, oid string) (models.Order, error)
	PresentDrivers(ctx context.Context) ([]models.Driver, error)
	Airports(ctx context.Context) ([]models.Airport, error)
}

// StagePublisher notifies downstream consumers (the pricing stage) that
// an order advanced.
type StagePublisher interface {
	PublishStageAdvanced(ctx context.Context, event models.StageEvent) error
}

// Assignment is the delivery-assignment stage surface used by the HTTP
// layer.
type Assignment interface {
	LoadSession(ctx context.Context, oid string) (*assignment.Session, error)
	AddSubRange(oid, oiid string) (models.AssignmentRow, error)
	RemoveSubRange(oid, rowId string) error
	SetCTRange(oid, rowId, ct string) (models.AssignmentRow, error)
	SetDriver(oid, rowId, driverId string) (models.AssignmentRow, error)
	SetAirport(oid, rowId, name string) (models.AssignmentRow, error)
	SetStatus(oid, rowId string, status models.RowStatus) (models.AssignmentRow, error)
	Summary(oid string) (models.Summary, error)
	Submit(ctx context.Context, oid string) (models.Stage3Payload, error)
	InvalidateSession(oid string)

	HandleStageEvent(ctx context.Context, payload []byte) error
}

type Service struct {
	repository.AssignmentStore
	repository.SessionCache

	upstream  Upstream
	publisher StagePublisher

	// loadMu serializes session builds so two concurrent first loads
	// cannot each reconcile and overwrite the other's session.
	loadMu sync.Mutex

	weightPerBox float64
	v            *validator.Validate
}

func NewService(repo *repository.Repository, up Upstream, pub StagePublisher, weightPerBox float64) *Service {
	return &Service{
		AssignmentStore: repo.AssignmentStore,
		SessionCache:    repo.SessionCache,
		upstream:        up,
		publisher:       pub,
		weightPerBox:    weightPerBox,
		v:               validator.New(),
	}
}
