package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/repository"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
)

type CompanyService interface {
	GetCompanyByID(id uuid.UUID) (*CompanyOutput, error)
	GetCompaniesByExactName(name string) ([]CompanyOutput, error)
	GetCompaniesByNameMatch(fragment string) ([]CompanyOutput, error)
	GetCompaniesByTag(tagName string) ([]CompanyOutput, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
	tagRepo     repository.TagRepository
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	tagRepo repository.TagRepository,
) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		tagRepo:     tagRepo,
	}
}

func (s *companyService) GetCompanyByID(id uuid.UUID) (*CompanyOutput, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Company not found", map[string]interface{}{
				"company_id": id,
			})
			return nil, ErrCompanyNotFound
		}
		logger.Error("Failed to fetch company by ID", err, map[string]interface{}{
			"company_id": id,
		})
		return nil, err
	}

	output := newCompanyOutput(company)
	return &output, nil
}

// GetCompaniesByExactName matches the stored display strings exactly, in any
// language. The same name can legitimately be used by different companies,
// so the result is a list.
func (s *companyService) GetCompaniesByExactName(name string) ([]CompanyOutput, error) {
	names, err := s.companyRepo.FindNamesByExact(name)
	if err != nil {
		logger.Error("Failed to search companies by exact name", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	companyIDs := make([]uuid.UUID, 0, len(names))
	for _, companyName := range names {
		companyIDs = append(companyIDs, companyName.CompanyID)
	}
	return s.loadCompanies(companyIDs)
}

// GetCompaniesByNameMatch searches with a case-insensitive substring across
// every localized name. A company whose names match in several languages
// still appears once.
func (s *companyService) GetCompaniesByNameMatch(fragment string) ([]CompanyOutput, error) {
	names, err := s.companyRepo.FindNamesBySubstring(fragment)
	if err != nil {
		logger.Error("Failed to search companies by name fragment", err, map[string]interface{}{
			"fragment": fragment,
		})
		return nil, err
	}

	logger.Debug("Company name search completed", map[string]interface{}{
		"fragment": fragment,
		"records":  len(names),
	})

	companyIDs := make([]uuid.UUID, 0, len(names))
	for _, companyName := range names {
		companyIDs = append(companyIDs, companyName.CompanyID)
	}
	return s.loadCompanies(companyIDs)
}

// GetCompaniesByTag resolves the tag name in every language and returns the
// companies linked to any matching tag. Cross-language ambiguity is
// intentional here: a query is a broad lookup, unlike attach/detach which
// must resolve to exactly one tag.
func (s *companyService) GetCompaniesByTag(tagName string) ([]CompanyOutput, error) {
	localizations, err := s.tagRepo.FindLocalizationsByName(tagName)
	if err != nil {
		logger.Error("Failed to resolve tag name", err, map[string]interface{}{
			"tag": tagName,
		})
		return nil, err
	}

	tagIDs := make([]uuid.UUID, 0, len(localizations))
	for _, localization := range localizations {
		tagIDs = append(tagIDs, localization.TagID)
	}
	tagIDs = dedupeUUIDs(tagIDs)

	companyIDs, err := s.companyRepo.FindCompanyIDsByTagIDs(tagIDs)
	if err != nil {
		logger.Error("Failed to fetch companies by tag IDs", err, map[string]interface{}{
			"tag":       tagName,
			"tag_count": len(tagIDs),
		})
		return nil, err
	}
	return s.loadCompanies(companyIDs)
}

// loadCompanies resolves ids (possibly with duplicates) into output records,
// keeping first-encounter order and listing each company once.
func (s *companyService) loadCompanies(companyIDs []uuid.UUID) ([]CompanyOutput, error) {
	companyIDs = dedupeUUIDs(companyIDs)

	companies, err := s.companyRepo.FindByIDs(companyIDs)
	if err != nil {
		logger.Error("Failed to load companies", err, map[string]interface{}{
			"company_count": len(companyIDs),
		})
		return nil, err
	}

	byID := make(map[uuid.UUID]*CompanyOutput, len(companies))
	for i := range companies {
		output := newCompanyOutput(&companies[i])
		byID[companies[i].ID] = &output
	}

	outputs := make([]CompanyOutput, 0, len(companyIDs))
	for _, id := range companyIDs {
		if output, ok := byID[id]; ok {
			outputs = append(outputs, *output)
		}
	}
	return outputs, nil
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	deduped := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}
