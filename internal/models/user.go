package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a service member with an account. UnitID is the
// denormalized primary-unit pointer kept for backward compatibility; the
// authoritative membership lives in unit_assignments.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // Hashed password, empty for LDAP users
	Email     string         `gorm:"size:255" json:"email"`
	Name      string         `gorm:"size:200" json:"name"`
	Rank      string         `gorm:"size:50" json:"rank"` // e.g. SSG, 1LT, CPT
	Role      string         `gorm:"size:50;default:soldier" json:"role"`
	UnitID    *uint          `gorm:"index" json:"unit_id"`
	Bio       string         `gorm:"type:text" json:"bio"`
	AuthType  string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
