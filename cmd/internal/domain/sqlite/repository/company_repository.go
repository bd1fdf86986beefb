package repository

import (
	"errors"
	"gorm.io/gorm"
	"rentalcontracts/cmd/internal/domain/entity"
)

type DefaultRegistryCompanyRepository struct {
	db *gorm.DB
}

func NewRegistryCompanyRepository(db *gorm.DB) *DefaultRegistryCompanyRepository {
	return &DefaultRegistryCompanyRepository{db: db}
}

func (r *DefaultRegistryCompanyRepository) FindByTaxID(taxID string) (*entity.RegistryCompany, error) {
	var company entity.RegistryCompany
	err := r.db.
		Where("tax_id = ?", taxID).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultRegistryCompanyRepository) Save(company *entity.RegistryCompany) error {
	return r.db.Save(company).Error
}

func (r *DefaultRegistryCompanyRepository) DeleteExpired(before int64) error {
	return r.db.
		Where("cached_at < ?", before).
		Delete(&entity.RegistryCompany{}).Error
}
