package models

import (
	"time"

	"gorm.io/gorm"
)

// AAR item kinds. An item is exactly one of these; the kind is an explicit
// discriminator, not a tag convention inspected at read sites.
const (
	AARKindSustain = "sustain"
	AARKindImprove = "improve"
	AARKindAction  = "action"
)

// ValidAARKind reports whether kind is a known AAR item kind.
func ValidAARKind(kind string) bool {
	return kind == AARKindSustain || kind == AARKindImprove || kind == AARKindAction
}

// AAR is a structured after-action review submitted by a participant,
// tied to both the training event and the authoring user.
type AAR struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   uint           `gorm:"index;not null" json:"event_id"`
	Event     *TrainingEvent `gorm:"foreignKey:EventID" json:"event,omitempty"`
	UnitID    uint           `gorm:"index;not null" json:"unit_id"` // owning unit, denormalized from the event for scope filtering
	AuthorID  uint           `gorm:"index;not null" json:"author_id"`
	Author    *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Summary   string         `gorm:"type:text" json:"summary"`
	Items     []AARItem      `gorm:"foreignKey:AARID" json:"items,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AAR) TableName() string { return "aars" }

// AARItem is a single sustain/improve/action entry inside an AAR.
type AARItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AARID     uint      `gorm:"index;not null" json:"aar_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"` // sustain, improve, action
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AARItem) TableName() string { return "aar_items" }
