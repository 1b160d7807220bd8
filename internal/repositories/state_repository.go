package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"macontroller/internal/models"
)

// StateRepository reads and writes one serialized state document, keyed by a
// fixed namespace.
type StateRepository interface {
	Namespace() string
	// Load returns nil, nil when nothing has been stored under the namespace.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
}

type stateRepository struct {
	db        *gorm.DB
	namespace string
}

func NewStateRepository(db *gorm.DB, namespace string) StateRepository {
	return &stateRepository{db: db, namespace: namespace}
}

func (r *stateRepository) Namespace() string {
	return r.namespace
}

func (r *stateRepository) Load(ctx context.Context) ([]byte, error) {
	var record models.StateRecord
	err := r.db.WithContext(ctx).Where("namespace = ?", r.namespace).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading state %q: %w", r.namespace, err)
	}
	return []byte(record.Payload), nil
}

func (r *stateRepository) Save(ctx context.Context, payload []byte) error {
	record := models.StateRecord{
		Namespace: r.namespace,
		Payload:   string(payload),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("saving state %q: %w", r.namespace, err)
	}
	return nil
}

func (r *stateRepository) Delete(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("namespace = ?", r.namespace).Delete(&models.StateRecord{}).Error; err != nil {
		return fmt.Errorf("deleting state %q: %w", r.namespace, err)
	}
	return nil
}
