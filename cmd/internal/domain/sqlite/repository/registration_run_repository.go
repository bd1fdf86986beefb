package repository

import (
	"errors"
	"gorm.io/gorm"
	"rentalcontracts/cmd/internal/domain/entity"
)

type DefaultRunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *DefaultRunRepository {
	return &DefaultRunRepository{db: db}
}

// FindByID returns the run with its steps in execution order, only if it
// belongs to the given user.
func (r *DefaultRunRepository) FindByID(id int64, sub string) (*entity.RegistrationRun, error) {
	var run entity.RegistrationRun
	err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_index ASC")
		}).
		Where("id = ? AND user_sub = ?", id, sub).
		First(&run).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *DefaultRunRepository) Create(run *entity.RegistrationRun) error {
	return r.db.Omit("Steps").Create(run).Error
}

func (r *DefaultRunRepository) Save(run *entity.RegistrationRun) error {
	return r.db.Omit("Steps").Save(run).Error
}

func (r *DefaultRunRepository) SaveStep(step *entity.RunStep) error {
	return r.db.Create(step).Error
}

// DeleteSucceededBefore sweeps old successful runs. Failed runs are kept: they
// are the only record of what was left behind in the remote store.
func (r *DefaultRunRepository) DeleteSucceededBefore(before int64) (int64, error) {
	return r.deleteWhere("status = ? AND updated_at < ?", entity.RunStatusSucceeded, before)
}

func (r *DefaultRunRepository) deleteWhere(query string, args ...any) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&entity.RegistrationRun{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("run_id IN ?", ids).Delete(&entity.RunStep{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&entity.RegistrationRun{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
