package services

import (
	"errors"
	"time"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidTrainingStep = errors.New("training step must be between 1 and 8")

type EventService struct {
	db       *gorm.DB
	scope    *ScopeService
	holidays *HolidayService
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db, scope: NewScopeService(db), holidays: NewHolidayService()}
}

type EventListRequest struct {
	UnitID    *uint  `form:"unit_id"`
	Step      int    `form:"step"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type CreateEventRequest struct {
	UnitID      uint       `json:"unit_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Step        int        `json:"step"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Step        *int       `json:"step"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

type EventResponse struct {
	models.TrainingEvent
	StepName    string `json:"step_name"`
	HolidayName string `json:"holiday_name,omitempty"`
}

func (s *EventService) toResponse(e models.TrainingEvent) EventResponse {
	resp := EventResponse{TrainingEvent: e, StepName: models.TrainingStepName(e.Step)}
	if e.OnHoliday {
		resp.HolidayName = s.holidays.HolidayName(e.StartsAt)
	}
	return resp
}

// List returns the training events inside the actor's visible units.
func (s *EventService) List(actor hierarchy.Actor, req *EventListRequest) ([]EventResponse, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	query := s.db.Model(&models.TrainingEvent{}).Preload("Unit")
	if req.UnitID != nil {
		query = query.Where("unit_id = ?", *req.UnitID)
	}
	if req.Step > 0 {
		query = query.Where("step = ?", req.Step)
	}
	if req.StartDate != "" {
		query = query.Where("starts_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("starts_at <= ?", req.EndDate+" 23:59:59")
	}

	var events []models.TrainingEvent
	if err := query.Order("starts_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}

	visible := hierarchy.FilterAccessible(ix, actor, events, func(e models.TrainingEvent) uint {
		return e.UnitID
	})

	out := make([]EventResponse, 0, len(visible))
	for _, e := range visible {
		out = append(out, s.toResponse(e))
	}
	return out, nil
}

func (s *EventService) GetByID(actor hierarchy.Actor, id uint) (*EventResponse, error) {
	var event models.TrainingEvent
	if err := s.db.Preload("Unit").First(&event, id).Error; err != nil {
		return nil, err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, event.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	resp := s.toResponse(event)
	return &resp, nil
}

// Create schedules an event for a unit the actor can manage. Events landing
// on a US federal holiday are flagged, not rejected.
func (s *EventService) Create(actor hierarchy.Actor, req *CreateEventRequest) (*EventResponse, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanManageUnit(actor, req.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	step := req.Step
	if step == 0 {
		step = 1
	}
	if models.TrainingStepName(step) == "" {
		return nil, ErrInvalidTrainingStep
	}

	event := models.TrainingEvent{
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Step:        step,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		OnHoliday:   s.holidays.IsHoliday(req.StartsAt),
		CreatedBy:   actor.ID,
	}

	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}

	uid := actor.ID
	LogInfo("Events", "Create", "scheduled training event "+event.Title, &uid, "", "", map[string]interface{}{
		"event_id":   event.ID,
		"unit_id":    event.UnitID,
		"on_holiday": event.OnHoliday,
	})

	resp := s.toResponse(event)
	return &resp, nil
}

func (s *EventService) Update(actor hierarchy.Actor, id uint, req *UpdateEventRequest) (*EventResponse, error) {
	var event models.TrainingEvent
	if err := s.db.First(&event, id).Error; err != nil {
		return nil, err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanManageUnit(actor, event.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Step != nil {
		if models.TrainingStepName(*req.Step) == "" {
			return nil, ErrInvalidTrainingStep
		}
		updates["step"] = *req.Step
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
		updates["on_holiday"] = s.holidays.IsHoliday(*req.StartsAt)
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}

	if err := s.db.Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}

	resp := s.toResponse(event)
	return &resp, nil
}

func (s *EventService) Delete(actor hierarchy.Actor, id uint) error {
	var event models.TrainingEvent
	if err := s.db.First(&event, id).Error; err != nil {
		return err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return err
	}
	if !ix.CanManageUnit(actor, event.UnitID) {
		return hierarchy.ErrAccessDenied
	}

	return s.db.Delete(&event).Error
}

// Steps returns the 8-step training model labels for UI pickers.
func (s *EventService) Steps() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(models.TrainingStepNames))
	for i, name := range models.TrainingStepNames {
		out = append(out, map[string]interface{}{"step": i + 1, "name": name})
	}
	return out
}
