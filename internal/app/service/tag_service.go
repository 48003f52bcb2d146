package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/internal/app/repository"
	"github.com/jmpark/company-catalog-backend/pkg/langcode"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound          = errors.New("tag not found")
	ErrAmbiguousTag         = errors.New("multiple tags match the given name")
	ErrAmbiguousCompany     = errors.New("multiple companies match the given name")
	ErrTagAlreadyAttached   = errors.New("tag already attached to company")
	ErrTagNotAttached       = errors.New("tag not attached to company")
	ErrNoValidLocalizations = errors.New("no valid localizations provided")
	ErrEmptyLocalization    = errors.New("localization text must not be empty")
)

type TagService interface {
	CreateTag(localizations map[string]string) (*TagOutput, error)
	ResolveTagIDsByName(name, language string) ([]uuid.UUID, error)
	AttachTagByName(companyName, tagName, language string) error
	DetachTagByName(companyName, tagName, language string) error
	AttachTagByID(companyID, tagID uuid.UUID) error
	DetachTagByID(companyID, tagID uuid.UUID) error
}

type tagService struct {
	tagRepo     repository.TagRepository
	companyRepo repository.CompanyRepository
}

func NewTagService(
	tagRepo repository.TagRepository,
	companyRepo repository.CompanyRepository,
) TagService {
	return &tagService{
		tagRepo:     tagRepo,
		companyRepo: companyRepo,
	}
}

// CreateTag creates one tag with a localization per recognized ISO 639-1
// key. Unrecognized keys are dropped rather than rejected; a tag must end up
// with at least one localization.
func (s *tagService) CreateTag(localizations map[string]string) (*TagOutput, error) {
	tag := model.Tag{}
	dropped := make([]string, 0)
	for language, text := range localizations {
		if !langcode.IsValid(language) {
			dropped = append(dropped, language)
			continue
		}
		if text == "" {
			return nil, ErrEmptyLocalization
		}
		tag.Localizations = append(tag.Localizations, model.TagLocalization{
			Language: language,
			Name:     text,
		})
	}

	if len(dropped) > 0 {
		logger.Warn("Dropping unrecognized language keys from tag creation", map[string]interface{}{
			"dropped": dropped,
		})
	}

	if len(tag.Localizations) == 0 {
		return nil, ErrNoValidLocalizations
	}

	if err := s.tagRepo.Create(&tag); err != nil {
		logger.Error("Failed to create tag", err, map[string]interface{}{
			"localization_count": len(tag.Localizations),
		})
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{
		"tag_id":             tag.ID,
		"localization_count": len(tag.Localizations),
	})

	output := newTagOutput(&tag)
	return &output, nil
}

// ResolveTagIDsByName returns the distinct tag ids whose display string
// equals name. With a language the match is exact on (name, language) and
// yields zero or one id; without one, tags that happen to share the same
// text in different languages all come back and the caller must decide how
// to disambiguate.
func (s *tagService) ResolveTagIDsByName(name, language string) ([]uuid.UUID, error) {
	if language != "" {
		localization, err := s.tagRepo.FindLocalizationByNameAndLanguage(name, language)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []uuid.UUID{localization.TagID}, nil
	}

	localizations, err := s.tagRepo.FindLocalizationsByName(name)
	if err != nil {
		return nil, err
	}

	tagIDs := make([]uuid.UUID, 0, len(localizations))
	for _, localization := range localizations {
		tagIDs = append(tagIDs, localization.TagID)
	}
	return dedupeUUIDs(tagIDs), nil
}

// resolveOne resolves a (tag name, company name) pair to exactly one tag id
// and one company id, failing on absence or ambiguity.
func (s *tagService) resolveOne(companyName, tagName, language string) (companyID, tagID uuid.UUID, err error) {
	tagIDs, err := s.ResolveTagIDsByName(tagName, language)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if len(tagIDs) == 0 {
		return uuid.Nil, uuid.Nil, ErrTagNotFound
	}
	if len(tagIDs) > 1 {
		logger.Debug("Tag name is ambiguous", map[string]interface{}{
			"tag":     tagName,
			"matches": len(tagIDs),
		})
		return uuid.Nil, uuid.Nil, ErrAmbiguousTag
	}

	names, err := s.companyRepo.FindNamesByExact(companyName)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	companyIDs := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		companyIDs = append(companyIDs, name.CompanyID)
	}
	companyIDs = dedupeUUIDs(companyIDs)
	if len(companyIDs) == 0 {
		return uuid.Nil, uuid.Nil, ErrCompanyNotFound
	}
	if len(companyIDs) > 1 {
		logger.Debug("Company name is ambiguous", map[string]interface{}{
			"company": companyName,
			"matches": len(companyIDs),
		})
		return uuid.Nil, uuid.Nil, ErrAmbiguousCompany
	}

	return companyIDs[0], tagIDs[0], nil
}

// AttachTagByName links an existing tag to an existing company, both
// resolved by display name. The composite key on the association makes a
// concurrent duplicate attach lose with a conflict instead of corrupting
// the link table.
func (s *tagService) AttachTagByName(companyName, tagName, language string) error {
	companyID, tagID, err := s.resolveOne(companyName, tagName, language)
	if err != nil {
		return err
	}

	if err := s.tagRepo.CreateAssociation(companyID, tagID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Tag already attached to company", map[string]interface{}{
				"company_id": companyID,
				"tag_id":     tagID,
			})
			return ErrTagAlreadyAttached
		}
		return err
	}

	logger.Info("Tag attached to company", map[string]interface{}{
		"company": companyName,
		"tag":     tagName,
	})
	return nil
}

// DetachTagByName removes the association between a company and a tag, both
// resolved by display name. Detaching a pair that was never attached is an
// explicit not-found, not a silent no-op.
func (s *tagService) DetachTagByName(companyName, tagName, language string) error {
	companyID, tagID, err := s.resolveOne(companyName, tagName, language)
	if err != nil {
		return err
	}

	deleted, err := s.tagRepo.DeleteAssociation(companyID, tagID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTagNotAttached
	}

	logger.Info("Tag detached from company", map[string]interface{}{
		"company": companyName,
		"tag":     tagName,
	})
	return nil
}

// AttachTagByID bypasses name resolution entirely; ids are never ambiguous.
func (s *tagService) AttachTagByID(companyID, tagID uuid.UUID) error {
	if _, err := s.companyRepo.FindByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if _, err := s.tagRepo.FindByID(tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := s.tagRepo.CreateAssociation(companyID, tagID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrTagAlreadyAttached
		}
		return err
	}

	logger.Info("Tag attached to company by ID", map[string]interface{}{
		"company_id": companyID,
		"tag_id":     tagID,
	})
	return nil
}

// DetachTagByID removes an association by ids; a pair that does not exist is
// a not-found.
func (s *tagService) DetachTagByID(companyID, tagID uuid.UUID) error {
	deleted, err := s.tagRepo.DeleteAssociation(companyID, tagID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTagNotAttached
	}

	logger.Info("Tag detached from company by ID", map[string]interface{}{
		"company_id": companyID,
		"tag_id":     tagID,
	})
	return nil
}
