package repository

import (
	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(company *model.Company) error
	FindByID(id uuid.UUID) (*model.Company, error)
	FindByIDs(ids []uuid.UUID) ([]model.Company, error)
	FindNamesByExact(name string) ([]model.CompanyName, error)
	FindNamesBySubstring(fragment string) ([]model.CompanyName, error)
	FindNameByNameAndLanguage(name, language string) (*model.CompanyName, error)
	FindCompanyIDsByTagIDs(tagIDs []uuid.UUID) ([]uuid.UUID, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(company *model.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		logger.Error("Failed to create company in database", err, map[string]interface{}{
			"name_count": len(company.Names),
		})
		return err
	}

	logger.Debug("Company created in database", map[string]interface{}{
		"company_id": company.ID,
		"name_count": len(company.Names),
	})
	return nil
}

func (r *companyRepository) FindByID(id uuid.UUID) (*model.Company, error) {
	var company model.Company
	err := r.db.
		Preload("Names").
		Preload("Tags").
		Preload("Tags.Tag.Localizations").
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByIDs(ids []uuid.UUID) ([]model.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var companies []model.Company
	err := r.db.
		Preload("Names").
		Preload("Tags").
		Preload("Tags.Tag.Localizations").
		Where("id IN ?", ids).
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

// FindNamesByExact is case-sensitive; the same display string may be used by
// several companies, so every matching row is returned.
func (r *companyRepository) FindNamesByExact(name string) ([]model.CompanyName, error) {
	var names []model.CompanyName
	if err := r.db.Where("name = ?", name).Find(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// FindNamesBySubstring is a case-insensitive contains-match over every
// localized name.
func (r *companyRepository) FindNamesBySubstring(fragment string) ([]model.CompanyName, error) {
	var names []model.CompanyName
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+fragment+"%").
		Find(&names).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Searched company names by substring", map[string]interface{}{
		"fragment": fragment,
		"records":  len(names),
	})
	return names, nil
}

func (r *companyRepository) FindNameByNameAndLanguage(name, language string) (*model.CompanyName, error) {
	var companyName model.CompanyName
	err := r.db.
		Where("name = ? AND language = ?", name, language).
		First(&companyName).Error
	if err != nil {
		return nil, err
	}
	return &companyName, nil
}

func (r *companyRepository) FindCompanyIDsByTagIDs(tagIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	var companyIDs []uuid.UUID
	err := r.db.
		Model(&model.CompanyTag{}).
		Where("tag_id IN ?", tagIDs).
		Pluck("company_id", &companyIDs).Error
	if err != nil {
		return nil, err
	}
	return companyIDs, nil
}
