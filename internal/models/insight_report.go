package models

import (
	"time"

	"gorm.io/gorm"
)

// InsightReport is an AI-generated summary of the AAR feedback inside a
// unit's subtree over a period. Generation may run asynchronously; Status
// tracks the job.
type InsightReport struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UnitID       uint           `gorm:"index;not null" json:"unit_id"`
	Unit         *Unit          `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	RequestedBy  uint           `json:"requested_by"`
	PeriodStart  time.Time      `json:"period_start"`
	PeriodEnd    time.Time      `json:"period_end"`
	AARCount     int            `json:"aar_count"`
	Content      string         `gorm:"type:text" json:"content"`
	Status       string         `gorm:"size:50;default:pending" json:"status"` // pending, completed, failed
	ErrorMessage string         `gorm:"type:text" json:"error_message"`
	LLMConfigID  *uint          `json:"llm_config_id"` // which LLM produced the content
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InsightReport) TableName() string { return "insight_reports" }
