package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is identified by a UUID only; every display name lives in a
// CompanyName row, one per language.
type Company struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Names     []CompanyName `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"names,omitempty"`
	Tags      []CompanyTag  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tags,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CompanyName is a localized display name. The composite primary key
// guarantees at most one name per (company, language).
type CompanyName struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"company_id"`
	Language  string    `gorm:"type:varchar(16);primaryKey" json:"language"` // ISO 639-1
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
}

func (CompanyName) TableName() string {
	return "company_names"
}
