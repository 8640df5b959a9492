package repository

import (
	"time"

	"github.com/jinzhu/gorm"

	"opsdash/internal/assignment"
	"opsdash/internal/models"
	"opsdash/internal/repository/cache"
	"opsdash/internal/repository/postgres"
)

// AssignmentStore persists the per-order workflow record: one blob row
// per order carrying the stage payloads and the current stage.
type AssignmentStore interface {
	Get(oid string) (models.OrderAssignment, error)
	SaveStage3(oid, data, stage string) error
}

// SessionCache holds live editing sessions keyed by order id. Eviction
// (TTL or explicit invalidation) discards unsaved mutations.
type SessionCache interface {
	PutSession(oid string, s *assignment.Session)
	GetSession(oid string) (*assignment.Session, error)
	DeleteSession(oid string)
}

type Repository struct {
	AssignmentStore
	SessionCache
}

// NewRepository wires the postgres blob store and the session cache.
// With shards > 1 the sessions go into the sharded cache.
func NewRepository(db *gorm.DB, sessionTTL time.Duration, shards int) *Repository {
	var kv cache.KV
	if shards > 1 {
		kv = cache.NewShardedCache(cache.WithShards(shards), cache.WithShardTTL(sessionTTL))
	} else {
		kv = cache.NewCache(cache.WithTTL(sessionTTL))
	}
	return &Repository{
		AssignmentStore: postgres.NewAssignmentPostgres(db),
		SessionCache:    cache.NewSessionCache(kv),
	}
}
