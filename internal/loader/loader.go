// Package loader reconciles a trilingual CSV snapshot of companies and tags
// against the catalog. It is the single bulk-ingestion path, used both by
// the server bootstrap and the seed command.
package loader

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"

	"github.com/jmpark/company-catalog-backend/internal/app/model"
	"github.com/jmpark/company-catalog-backend/internal/app/repository"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// Snapshot column order: name_ko, name_en, name_ja, tags_ko, tags_en,
// tags_ja. Tag lists are pipe-delimited, Korean is the canonical tag lookup
// key.
const (
	colNameKo = iota
	colNameEn
	colNameJa
	colTagsKo
	colTagsEn
	colTagsJa
	columnCount
)

var (
	ErrMalformedRow     = errors.New("row has fewer columns than expected")
	ErrTagCountMismatch = errors.New("tag counts differ between languages")
)

// Result reports what a bulk run did.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

type Loader struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// LoadCSV ingests the snapshot at path. The header row is skipped.
func (l *Loader) LoadCSV(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		records = records[1:]
	}

	logger.Info("Running population script", map[string]interface{}{
		"file":    path,
		"records": len(records),
	})

	result, err := l.LoadRows(records)
	if err != nil {
		return result, err
	}

	logger.Info("Data sync successful", map[string]interface{}{
		"created": result.Created,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	})
	return result, nil
}

// LoadRows ingests rows one at a time, each in its own transaction. Rows
// that fail validation or hit a uniqueness conflict are logged and skipped;
// a storage failure aborts the run.
func (l *Loader) LoadRows(rows [][]string) (*Result, error) {
	result := &Result{}

	for i, row := range rows {
		created, err := l.insertRow(row)
		if err != nil {
			if errors.Is(err, ErrMalformedRow) ||
				errors.Is(err, ErrTagCountMismatch) ||
				errors.Is(err, gorm.ErrDuplicatedKey) {
				logger.Warn("Skipping invalid row", map[string]interface{}{
					"row":   i + 1,
					"error": err.Error(),
				})
				result.Failed++
				continue
			}
			logger.Error("Aborting bulk load on storage failure", err, map[string]interface{}{
				"row": i + 1,
			})
			return result, err
		}

		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// insertRow applies the full-row dedupe policy: if any of the row's names
// already exists for its language, the whole row is considered ingested and
// nothing is merged, even when the other languages would be new.
func (l *Loader) insertRow(row []string) (bool, error) {
	if len(row) < columnCount {
		return false, ErrMalformedRow
	}

	nameKo := strings.TrimSpace(row[colNameKo])
	nameEn := strings.TrimSpace(row[colNameEn])
	nameJa := strings.TrimSpace(row[colNameJa])

	companyRepo := repository.NewCompanyRepository(l.db)

	var names []model.CompanyName
	for _, candidate := range []struct {
		language string
		name     string
	}{
		{"ko", nameKo},
		{"en", nameEn},
		{"ja", nameJa},
	} {
		if candidate.name == "" {
			continue
		}
		_, err := companyRepo.FindNameByNameAndLanguage(candidate.name, candidate.language)
		if err == nil {
			logger.Debug("Company already present, skipping row", map[string]interface{}{
				"name":     candidate.name,
				"language": candidate.language,
			})
			return false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		names = append(names, model.CompanyName{
			Language: candidate.language,
			Name:     candidate.name,
		})
	}

	if len(names) == 0 {
		return false, ErrMalformedRow
	}

	tagsKo := splitTags(row[colTagsKo])
	tagsEn := splitTags(row[colTagsEn])
	tagsJa := splitTags(row[colTagsJa])

	if len(tagsKo) != len(tagsEn) || len(tagsKo) != len(tagsJa) {
		logger.Warn("Tag numbers not equivalent between languages", map[string]interface{}{
			"name_ko": nameKo,
			"ko":      len(tagsKo),
			"en":      len(tagsEn),
			"ja":      len(tagsJa),
		})
		return false, ErrTagCountMismatch
	}

	logger.Debug("Adding company", map[string]interface{}{
		"name_ko": nameKo,
		"name_en": nameEn,
		"name_ja": nameJa,
		"tags":    len(tagsKo),
	})

	err := l.db.Transaction(func(tx *gorm.DB) error {
		txCompanyRepo := repository.NewCompanyRepository(tx)
		txTagRepo := repository.NewTagRepository(tx)

		company := model.Company{Names: names}
		if err := txCompanyRepo.Create(&company); err != nil {
			return err
		}

		for x := range tagsKo {
			if tagsKo[x] == "" {
				continue
			}

			// Korean is the canonical key; a matching en/ja text under a
			// different tag id is not reconciled.
			existing, err := txTagRepo.FindLocalizationByNameAndLanguage(tagsKo[x], "ko")
			if err == nil {
				if err := txTagRepo.CreateAssociation(company.ID, existing.TagID); err != nil {
					return err
				}
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			tag := model.Tag{}
			for _, localization := range []struct {
				language string
				name     string
			}{
				{"ko", tagsKo[x]},
				{"en", tagsEn[x]},
				{"ja", tagsJa[x]},
			} {
				if localization.name == "" {
					continue
				}
				tag.Localizations = append(tag.Localizations, model.TagLocalization{
					Language: localization.language,
					Name:     localization.name,
				})
			}

			if err := txTagRepo.Create(&tag); err != nil {
				return err
			}
			if err := txTagRepo.CreateAssociation(company.ID, tag.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func splitTags(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
