package repository

import (
	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(id uuid.UUID) (*model.Tag, error)
	FindLocalizationsByName(name string) ([]model.TagLocalization, error)
	FindLocalizationByNameAndLanguage(name, language string) (*model.TagLocalization, error)
	CreateAssociation(companyID, tagID uuid.UUID) error
	DeleteAssociation(companyID, tagID uuid.UUID) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		logger.Error("Failed to create tag in database", err, map[string]interface{}{
			"localization_count": len(tag.Localizations),
		})
		return err
	}

	logger.Debug("Tag created in database", map[string]interface{}{
		"tag_id":             tag.ID,
		"localization_count": len(tag.Localizations),
	})
	return nil
}

func (r *tagRepository) FindByID(id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.
		Preload("Localizations").
		First(&tag, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindLocalizationsByName matches the display string in any language, so
// distinct tags sharing the same text across languages all come back.
func (r *tagRepository) FindLocalizationsByName(name string) ([]model.TagLocalization, error) {
	var localizations []model.TagLocalization
	if err := r.db.Where("name = ?", name).Find(&localizations).Error; err != nil {
		return nil, err
	}
	return localizations, nil
}

func (r *tagRepository) FindLocalizationByNameAndLanguage(name, language string) (*model.TagLocalization, error) {
	var localization model.TagLocalization
	err := r.db.
		Where("name = ? AND language = ?", name, language).
		First(&localization).Error
	if err != nil {
		return nil, err
	}
	return &localization, nil
}

func (r *tagRepository) CreateAssociation(companyID, tagID uuid.UUID) error {
	association := model.CompanyTag{
		CompanyID: companyID,
		TagID:     tagID,
	}

	if err := r.db.Create(&association).Error; err != nil {
		logger.Debug("Failed to create company tag association", map[string]interface{}{
			"company_id": companyID,
			"tag_id":     tagID,
			"error":      err.Error(),
		})
		return err
	}

	logger.Debug("Company tag association created", map[string]interface{}{
		"company_id": companyID,
		"tag_id":     tagID,
	})
	return nil
}

func (r *tagRepository) DeleteAssociation(companyID, tagID uuid.UUID) (int64, error) {
	result := r.db.
		Where("company_id = ? AND tag_id = ?", companyID, tagID).
		Delete(&model.CompanyTag{})
	if result.Error != nil {
		logger.Error("Failed to delete company tag association", result.Error, map[string]interface{}{
			"company_id": companyID,
			"tag_id":     tagID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
