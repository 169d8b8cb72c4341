package domain

import (
	"time"
)

// Agency is one newsroom tenant. The primary key doubles as the 6-digit
// invite code members use to join.
type Agency struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Agency) TableName() string { return "agency" }

// AgencySettings holds per-tenant knobs, including the presence thresholds
// (zero means "use the built-in default").
type AgencySettings struct {
	AgencyID            int64     `gorm:"primaryKey;autoIncrement:false;column:agency_id" json:"agency_id"`
	HeartbeatIntervalMS int       `gorm:"not null;default:0;column:heartbeat_interval_ms" json:"heartbeat_interval_ms"`
	OnlineGapSeconds    int       `gorm:"not null;default:0;column:online_gap_seconds" json:"online_gap_seconds"`
	IdleThresholdMS     int       `gorm:"not null;default:0;column:idle_threshold_ms" json:"idle_threshold_ms"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (AgencySettings) TableName() string { return "agency_settings" }
