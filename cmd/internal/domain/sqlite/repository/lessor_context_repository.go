package repository

import (
	"errors"
	"gorm.io/gorm"
	"rentalcontracts/cmd/internal/domain/entity"
)

type DefaultLessorContextRepository struct {
	db *gorm.DB
}

func NewLessorContextRepository(db *gorm.DB) *DefaultLessorContextRepository {
	return &DefaultLessorContextRepository{db: db}
}

func (r *DefaultLessorContextRepository) FindBySub(sub string) (*entity.LessorContext, error) {
	var lessor entity.LessorContext
	err := r.db.
		Where("user_sub = ?", sub).
		First(&lessor).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &lessor, nil
}

func (r *DefaultLessorContextRepository) Save(lessor *entity.LessorContext) error {
	return r.db.Save(lessor).Error
}

func (r *DefaultLessorContextRepository) DeleteBySub(sub string) error {
	return r.db.
		Where("user_sub = ?", sub).
		Delete(&entity.LessorContext{}).Error
}

func (r *DefaultLessorContextRepository) DeleteExpired(before int64) error {
	return r.db.
		Where("cached_at < ?", before).
		Delete(&entity.LessorContext{}).Error
}
