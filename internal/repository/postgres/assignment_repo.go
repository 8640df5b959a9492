package postgres

import (
	"time"

	"github.com/jinzhu/gorm"

	"opsdash/internal/models"
)

type AssignmentPostgresRepo struct {
	db *gorm.DB
}

func NewAssignmentPostgres(db *gorm.DB) *AssignmentPostgresRepo {
	return &AssignmentPostgresRepo{db: db}
}

// Get loads the workflow record for an order. Callers treat a
// not-found error as "no prior data".
func (r *AssignmentPostgresRepo) Get(oid string) (models.OrderAssignment, error) {
	var a models.OrderAssignment
	q := r.db.Where("oid = ?", oid).First(&a)
	return a, q.Error
}

// SaveStage3 writes the delivery-assignment payload and the advanced
// stage in one transaction. The write fully replaces any earlier
// stage-3 payload for the order; there is no merging and no optimistic
// locking, a later submit wins.
func (r *AssignmentPostgresRepo) SaveStage3(oid, data, stage string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&models.OrderAssignment{}).
			Where("oid = ?", oid).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			rec := models.OrderAssignment{
				Oid:          oid,
				CurrentStage: stage,
				Stage3Data:   data,
				UpdatedAt:    time.Now().UTC(),
			}
			return tx.Create(&rec).Error
		}

		return tx.Model(&models.OrderAssignment{}).
			Where("oid = ?", oid).
			Updates(map[string]interface{}{
				"stage3_data":   data,
				"current_stage": stage,
				"updated_at":    time.Now().UTC(),
			}).Error
	})
}
