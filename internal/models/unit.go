package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit is a node in the organizational tree. ParentID is nil for root units;
// soft-deleted units are tombstoned and never re-enter traversal.
type Unit struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:200;not null" json:"name"`
	UnitLevel    string         `gorm:"size:50;not null" json:"unit_level"` // team, squad, section, platoon, company, battalion, brigade, division
	ParentID     *uint          `gorm:"index" json:"parent_id"`
	ReferralCode string         `gorm:"uniqueIndex;size:36" json:"referral_code"` // opaque join token
	CreatedBy    uint           `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Unit) TableName() string { return "units" }
