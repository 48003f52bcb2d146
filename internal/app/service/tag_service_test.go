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

func setupTagServiceTest(t *testing.T) (TagService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	companyRepo := repository.NewCompanyRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	return NewTagService(tagRepo, companyRepo), testDB
}

func countAssociations(t *testing.T, testDB *gorm.DB) int64 {
	var count int64
	require.NoError(t, testDB.Model(&model.CompanyTag{}).Count(&count).Error)
	return count
}

func TestTagService_CreateTag(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	tag, err := tagService.CreateTag(map[string]string{
		"ko": "금융",
		"en": "Finance",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tag.ID)
	assert.Equal(t, map[string]string{"ko": "금융", "en": "Finance"}, tag.Localizations)

	var count int64
	require.NoError(t, testDB.Model(&model.TagLocalization{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestTagService_CreateTag_DropsUnrecognizedLanguages(t *testing.T) {
	tagService, _ := setupTagServiceTest(t)

	tag, err := tagService.CreateTag(map[string]string{
		"en": "Finance",
		"xx": "Invalid",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"en": "Finance"}, tag.Localizations)
}

func TestTagService_CreateTag_NoValidLocalizations(t *testing.T) {
	tagService, _ := setupTagServiceTest(t)

	_, err := tagService.CreateTag(map[string]string{
		"xx":  "Invalid",
		"zzz": "Invalid",
	})
	assert.ErrorIs(t, err, ErrNoValidLocalizations)
}

func TestTagService_CreateTag_EmptyText(t *testing.T) {
	tagService, _ := setupTagServiceTest(t)

	_, err := tagService.CreateTag(map[string]string{
		"en": "",
	})
	assert.ErrorIs(t, err, ErrEmptyLocalization)
}

func TestTagService_ResolveTagIDsByName(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	tag := createTag(t, testDB, map[string]string{"ko": "전자", "en": "electronics"})

	// Exact (name, language) resolution returns exactly the creating tag
	for _, lookup := range []struct{ name, language string }{
		{"전자", "ko"},
		{"electronics", "en"},
	} {
		ids, err := tagService.ResolveTagIDsByName(lookup.name, lookup.language)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{tag.ID}, ids)
	}

	// Wrong language yields nothing
	ids, err := tagService.ResolveTagIDsByName("전자", "en")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTagService_ResolveTagIDsByName_AllLanguages(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	first := createTag(t, testDB, map[string]string{"en": "Gold"})
	second := createTag(t, testDB, map[string]string{"de": "Gold"})

	ids, err := tagService.ResolveTagIDsByName("Gold", "")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestTagService_ResolveTagIDsByName_SharedTextWithinOneTag(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	// One tag using the same display string in two languages resolves to a
	// single id, not a spurious ambiguity.
	tag := createTag(t, testDB, map[string]string{"en": "Kimchi", "de": "Kimchi"})

	ids, err := tagService.ResolveTagIDsByName("Kimchi", "")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{tag.ID}, ids)
}

func TestTagService_AttachTagByName(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "electronics"})

	err := tagService.AttachTagByName("Samsung", "electronics", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), countAssociations(t, testDB))
}

func TestTagService_AttachTagByName_DuplicateConflicts(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "electronics"})

	require.NoError(t, tagService.AttachTagByName("Samsung", "electronics", ""))

	err := tagService.AttachTagByName("Samsung", "electronics", "")
	assert.ErrorIs(t, err, ErrTagAlreadyAttached)
	assert.Equal(t, int64(1), countAssociations(t, testDB))
}

func TestTagService_AttachTagByName_AmbiguousTag(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "Gold"})
	createTag(t, testDB, map[string]string{"de": "Gold"})

	// Without a language the name matches two distinct tags
	err := tagService.AttachTagByName("Samsung", "Gold", "")
	assert.ErrorIs(t, err, ErrAmbiguousTag)
	assert.Equal(t, int64(0), countAssociations(t, testDB))

	// Supplying the language disambiguates
	require.NoError(t, tagService.AttachTagByName("Samsung", "Gold", "de"))
	assert.Equal(t, int64(1), countAssociations(t, testDB))
}

func TestTagService_AttachTagByName_NotFound(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "electronics"})

	err := tagService.AttachTagByName("Samsung", "no-such-tag", "")
	assert.ErrorIs(t, err, ErrTagNotFound)

	err = tagService.AttachTagByName("no-such-company", "electronics", "")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestTagService_AttachTagByName_AmbiguousCompany(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Acme"})
	createCompany(t, testDB, map[string]string{"en": "Acme"})
	createTag(t, testDB, map[string]string{"en": "electronics"})

	err := tagService.AttachTagByName("Acme", "electronics", "")
	assert.ErrorIs(t, err, ErrAmbiguousCompany)
}

func TestTagService_DetachTagByName(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "electronics"})
	require.NoError(t, tagService.AttachTagByName("Samsung", "electronics", ""))

	require.NoError(t, tagService.DetachTagByName("Samsung", "electronics", ""))
	assert.Equal(t, int64(0), countAssociations(t, testDB))
}

func TestTagService_DetachTagByName_NeverAttached(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	createCompany(t, testDB, map[string]string{"en": "Samsung"})
	createTag(t, testDB, map[string]string{"en": "electronics"})

	// Detaching a pair that was never attached is an explicit not-found
	err := tagService.DetachTagByName("Samsung", "electronics", "")
	assert.ErrorIs(t, err, ErrTagNotAttached)
}

func TestTagService_AttachTagByID(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	company := createCompany(t, testDB, map[string]string{"en": "Samsung"})
	tag := createTag(t, testDB, map[string]string{"en": "electronics"})

	require.NoError(t, tagService.AttachTagByID(company.ID, tag.ID))
	assert.Equal(t, int64(1), countAssociations(t, testDB))

	// Duplicate attach by id conflicts the same way
	err := tagService.AttachTagByID(company.ID, tag.ID)
	assert.ErrorIs(t, err, ErrTagAlreadyAttached)
}

func TestTagService_AttachTagByID_NotFound(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	company := createCompany(t, testDB, map[string]string{"en": "Samsung"})
	tag := createTag(t, testDB, map[string]string{"en": "electronics"})

	err := tagService.AttachTagByID(uuid.New(), tag.ID)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	err = tagService.AttachTagByID(company.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestTagService_DetachTagByID(t *testing.T) {
	tagService, testDB := setupTagServiceTest(t)

	company := createCompany(t, testDB, map[string]string{"en": "Samsung"})
	tag := createTag(t, testDB, map[string]string{"en": "electronics"})
	require.NoError(t, tagService.AttachTagByID(company.ID, tag.ID))

	require.NoError(t, tagService.DetachTagByID(company.ID, tag.ID))
	assert.Equal(t, int64(0), countAssociations(t, testDB))

	err := tagService.DetachTagByID(company.ID, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotAttached)
}
