package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DayLog aggregates one user's presence sessions for one calendar day.
// Sessions is the JSON-encoded ordered list of {start, end} ISO-8601 pairs;
// rows are created lazily on first heartbeat of the day and never deleted
// by the presence layer.
type DayLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_day_log_user_date;column:user_id" json:"user_id"`
	DateString string         `gorm:"not null;uniqueIndex:idx_day_log_user_date;column:date_string" json:"date_string"`
	Sessions   datatypes.JSON `gorm:"column:sessions" json:"sessions"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (DayLog) TableName() string { return "presence_day_log" }
