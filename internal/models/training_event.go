package models

import (
	"time"

	"gorm.io/gorm"
)

// TrainingStepNames are the labels of the 8-step Army training model. The
// step is carried as a record attribute only; progression rules live outside
// this system.
var TrainingStepNames = [8]string{
	"Plan the Training",
	"Train and Certify Leaders",
	"Recon the Site",
	"Issue the Order",
	"Rehearse",
	"Execute",
	"Conduct AAR",
	"Retrain",
}

// TrainingStepName returns the label for a 1-based training step, or empty
// for an out-of-range step.
func TrainingStepName(step int) string {
	if step < 1 || step > len(TrainingStepNames) {
		return ""
	}
	return TrainingStepNames[step-1]
}

// TrainingEvent is a scheduled training activity owned by a unit. Listing is
// always filtered through the acting user's accessible-unit set.
type TrainingEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UnitID      uint           `gorm:"index;not null" json:"unit_id"`
	Unit        *Unit          `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:200" json:"location"`
	Step        int            `gorm:"default:1" json:"step"` // 1..8, see TrainingStepNames
	StartsAt    time.Time      `gorm:"index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at"`
	OnHoliday   bool           `gorm:"default:false" json:"on_holiday"` // scheduled on a US federal holiday
	CreatedBy   uint           `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (TrainingEvent) TableName() string { return "training_events" }
