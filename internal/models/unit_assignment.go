package models

import (
	"time"
)

// UnitAssignment is a user's affiliation to a unit. Assignments are never
// physically deleted; ending one sets EndDate, preserving history. Exactly
// one active assignment per user carries the primary type; the mutation
// guard enforces it on every change.
type UnitAssignment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	UnitID         uint       `gorm:"index;not null" json:"unit_id"`
	Unit           *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	AssignmentType string     `gorm:"size:20;not null;default:attached" json:"assignment_type"` // primary, attached, temporary, dual_hatted
	LeadershipRole string     `gorm:"size:50" json:"leadership_role"`                           // empty when none; constrained to the unit level's vocabulary
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `gorm:"index" json:"end_date"` // nil = currently active
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (UnitAssignment) TableName() string { return "unit_assignments" }

// Active reports whether the assignment is currently in effect.
func (a *UnitAssignment) Active() bool {
	return a.EndDate == nil
}
