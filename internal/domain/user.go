package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleJournalist = "journalist"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	Role     string    `gorm:"not null;column:role" json:"role"`
	AgencyID int64     `gorm:"not null;index;column:agency_id" json:"agency_id"`
	Approved bool      `gorm:"not null;default:false;column:approved" json:"approved"`

	// LastActiveAt is the durable copy of the presence heartbeat; the roster
	// fast path lives in Redis.
	LastActiveAt *time.Time `gorm:"column:last_active_at;index" json:"last_active_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
