package service

import (
	"github.com/jmpark/company-catalog-backend/internal/app/model"
)

// CompanyOutput is the stable external shape of a company. Names and
// localizations are keyed by language code; map iteration order is not part
// of the contract.
type CompanyOutput struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
	Tags  []TagOutput       `json:"tags"`
}

// TagOutput is the stable external shape of a tag.
type TagOutput struct {
	ID            string            `json:"id"`
	Localizations map[string]string `json:"localizations"`
}

func newTagOutput(tag *model.Tag) TagOutput {
	output := TagOutput{
		ID:            tag.ID.String(),
		Localizations: map[string]string{},
	}
	for _, localization := range tag.Localizations {
		output.Localizations[localization.Language] = localization.Name
	}
	return output
}

func newCompanyOutput(company *model.Company) CompanyOutput {
	output := CompanyOutput{
		ID:    company.ID.String(),
		Names: map[string]string{},
		Tags:  []TagOutput{},
	}
	for _, name := range company.Names {
		output.Names[name.Language] = name.Name
	}
	for _, companyTag := range company.Tags {
		output.Tags = append(output.Tags, newTagOutput(&companyTag.Tag))
	}
	return output
}
