package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductionEntry is one logged piece of published work. Journalist name and
// username are denormalized onto the row, matching how the log is rendered
// and searched.
type ProductionEntry struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AgencyID           int64     `gorm:"not null;index;column:agency_id" json:"agency_id"`
	JournalistID       uuid.UUID `gorm:"type:uuid;not null;index;column:journalist_id" json:"journalist_id"`
	JournalistName     string    `gorm:"not null;column:journalist_name" json:"journalist_name"`
	JournalistUsername string    `gorm:"not null;column:journalist_username" json:"journalist_username"`
	Headline           string    `gorm:"not null;column:headline" json:"headline"`
	Section            string    `gorm:"not null;column:section" json:"section"`
	Platform           string    `gorm:"not null;column:platform" json:"platform"`
	Status             string    `gorm:"not null;column:status" json:"status"`
	URL                string    `gorm:"column:url" json:"url"`
	DateString         string    `gorm:"not null;index;column:date_string" json:"date_string"`
	Timestamp          time.Time `gorm:"not null;index;column:timestamp" json:"timestamp"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProductionEntry) TableName() string { return "production_entry" }
