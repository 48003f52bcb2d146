package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag represents one shared meaning; its display strings live in
// TagLocalization rows so a new language is just a new row, not a schema
// change, and display text never has to be parsed to switch locales.
type Tag struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Localizations []TagLocalization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"localizations,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TagLocalization is the per-language display string of a tag. At most one
// localization per (tag, language).
type TagLocalization struct {
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
	Language string    `gorm:"type:varchar(16);primaryKey" json:"language"` // ISO 639-1
	Name     string    `gorm:"type:varchar(64);not null;index" json:"name"`
}

func (TagLocalization) TableName() string {
	return "tag_localizations"
}

// CompanyTag represents the many-to-many relationship between companies and
// tags. The composite primary key makes a duplicate attach a uniqueness
// violation rather than a second row; deleting either parent cascades here.
type CompanyTag struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"company_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tag_id"`
	Company   Company   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CompanyTag) TableName() string {
	return "company_tags"
}
