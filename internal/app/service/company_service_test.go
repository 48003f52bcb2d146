package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/internal/app/repository"
	"github.com/jmpark/company-catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCompanyServiceTest(t *testing.T) (CompanyService, TagService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	companyService := NewCompanyService(companyRepo, tagRepo)
	tagService := NewTagService(tagRepo, companyRepo)

	return companyService, tagService, testDB
}

func createCompany(t *testing.T, testDB *gorm.DB, names map[string]string) *model.Company {
	company := &model.Company{}
	for language, name := range names {
		company.Names = append(company.Names, model.CompanyName{
			Language: language,
			Name:     name,
		})
	}
	require.NoError(t, testDB.Create(company).Error)
	return company
}

func createTag(t *testing.T, testDB *gorm.DB, localizations map[string]string) *model.Tag {
	tag := &model.Tag{}
	for language, name := range localizations {
		tag.Localizations = append(tag.Localizations, model.TagLocalization{
			Language: language,
			Name:     name,
		})
	}
	require.NoError(t, testDB.Create(tag).Error)
	return tag
}

func TestCompanyService_GetCompanyByID(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	company := createCompany(t, testDB, map[string]string{
		"ko": "삼성",
		"en": "Samsung",
	})

	output, err := companyService.GetCompanyByID(company.ID)
	require.NoError(t, err)
	assert.Equal(t, company.ID.String(), output.ID)
	assert.Equal(t, "삼성", output.Names["ko"])
	assert.Equal(t, "Samsung", output.Names["en"])
	assert.Empty(t, output.Tags)
}

func TestCompanyService_GetCompanyByID_NotFound(t *testing.T) {
	companyService, _, _ := setupCompanyServiceTest(t)

	_, err := companyService.GetCompanyByID(uuid.New())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCompanyService_GetCompaniesByExactName(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	first := createCompany(t, testDB, map[string]string{"en": "Acme", "ko": "아크메"})
	second := createCompany(t, testDB, map[string]string{"en": "Acme"})
	createCompany(t, testDB, map[string]string{"en": "Other"})

	matches, err := companyService.GetCompaniesByExactName("Acme")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	ids := []string{matches[0].ID, matches[1].ID}
	assert.Contains(t, ids, first.ID.String())
	assert.Contains(t, ids, second.ID.String())
}

func TestCompanyService_GetCompaniesByExactName_CaseSensitive(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Acme"})

	matches, err := companyService.GetCompaniesByExactName("acme")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCompanyService_GetCompaniesByExactName_SharedTextAcrossLanguages(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	// Same display string stored under two languages of one company: the
	// company must still appear exactly once.
	company := createCompany(t, testDB, map[string]string{
		"en": "Kakao",
		"de": "Kakao",
	})

	matches, err := companyService.GetCompaniesByExactName("Kakao")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, company.ID.String(), matches[0].ID)
}

func TestCompanyService_GetCompaniesByNameMatch(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	company := createCompany(t, testDB, map[string]string{
		"ko": "삼성",
		"en": "Samsung",
		"ja": "サムスン",
	})
	createCompany(t, testDB, map[string]string{"en": "Acme"})

	matches, err := companyService.GetCompaniesByNameMatch("sam")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, company.ID.String(), matches[0].ID)

	// Empty result is a successful search
	matches, err = companyService.GetCompaniesByNameMatch("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCompanyService_GetCompaniesByNameMatch_DeduplicatesAcrossLanguages(t *testing.T) {
	companyService, _, testDB := setupCompanyServiceTest(t)

	// Both the en and fr names contain the fragment; one company expected.
	company := createCompany(t, testDB, map[string]string{
		"en": "Samsung Electronics",
		"fr": "Samsung Électronique",
	})

	matches, err := companyService.GetCompaniesByNameMatch("SAMSUNG")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, company.ID.String(), matches[0].ID)
}

func TestCompanyService_GetCompaniesByTag(t *testing.T) {
	companyService, tagService, testDB := setupCompanyServiceTest(t)

	company := createCompany(t, testDB, map[string]string{"en": "Samsung"})
	tag := createTag(t, testDB, map[string]string{"ko": "전자", "en": "electronics"})
	require.NoError(t, tagService.AttachTagByID(company.ID, tag.ID))

	companies, err := companyService.GetCompaniesByTag("electronics")
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, company.ID.String(), companies[0].ID)
	require.Len(t, companies[0].Tags, 1)
	assert.Equal(t, tag.ID.String(), companies[0].Tags[0].ID)
	assert.Equal(t, "전자", companies[0].Tags[0].Localizations["ko"])
}

func TestCompanyService_GetCompaniesByTag_CrossLanguageMatches(t *testing.T) {
	companyService, tagService, testDB := setupCompanyServiceTest(t)

	// Two distinct tags share the display string "Finance" in different
	// languages; a tag query deliberately matches both.
	first := createCompany(t, testDB, map[string]string{"en": "Alpha"})
	second := createCompany(t, testDB, map[string]string{"en": "Beta"})
	tagEn := createTag(t, testDB, map[string]string{"en": "Finance"})
	tagDe := createTag(t, testDB, map[string]string{"de": "Finance"})
	require.NoError(t, tagService.AttachTagByID(first.ID, tagEn.ID))
	require.NoError(t, tagService.AttachTagByID(second.ID, tagDe.ID))

	companies, err := companyService.GetCompaniesByTag("Finance")
	require.NoError(t, err)
	assert.Len(t, companies, 2)
}

func TestCompanyService_OutputShape(t *testing.T) {
	companyService, tagService, testDB := setupCompanyServiceTest(t)

	company := createCompany(t, testDB, map[string]string{"en": "Samsung"})
	tag := createTag(t, testDB, map[string]string{"ko": "전자", "en": "electronics", "ja": "電子"})
	require.NoError(t, tagService.AttachTagByID(company.ID, tag.ID))

	output, err := companyService.GetCompanyByID(company.ID)
	require.NoError(t, err)

	assert.NotNil(t, output.Names)
	assert.NotNil(t, output.Tags)
	require.Len(t, output.Tags, 1)
	assert.Len(t, output.Tags[0].Localizations, 3)
}
