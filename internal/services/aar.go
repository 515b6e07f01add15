package services

import (
	"errors"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidAARKind = errors.New("AAR item kind must be sustain, improve or action")

type AARService struct {
	db    *gorm.DB
	scope *ScopeService
}

func NewAARService(db *gorm.DB) *AARService {
	return &AARService{db: db, scope: NewScopeService(db)}
}

type AARItemRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateAARRequest struct {
	EventID uint             `json:"event_id" binding:"required"`
	Summary string           `json:"summary"`
	Items   []AARItemRequest `json:"items" binding:"required,min=1"`
}

type AARListRequest struct {
	UnitID    *uint  `form:"unit_id"`
	EventID   *uint  `form:"event_id"`
	AuthorID  *uint  `form:"author_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// AARRollup aggregates item counts by kind over a set of AARs.
type AARRollup struct {
	Total   int64 `json:"total"`
	Sustain int64 `json:"sustain"`
	Improve int64 `json:"improve"`
	Action  int64 `json:"action"`
}

// Create records an AAR against a training event. Any member who can see the
// event's unit may submit; the owning unit is denormalized from the event.
func (s *AARService) Create(actor hierarchy.Actor, req *CreateAARRequest) (*models.AAR, error) {
	for _, item := range req.Items {
		if !models.ValidAARKind(item.Kind) {
			return nil, ErrInvalidAARKind
		}
	}

	var event models.TrainingEvent
	if err := s.db.First(&event, req.EventID).Error; err != nil {
		return nil, err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, event.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	aar := models.AAR{
		EventID:  event.ID,
		UnitID:   event.UnitID,
		AuthorID: actor.ID,
		Summary:  req.Summary,
	}
	for _, item := range req.Items {
		aar.Items = append(aar.Items, models.AARItem{Kind: item.Kind, Content: item.Content})
	}

	if err := s.db.Create(&aar).Error; err != nil {
		return nil, err
	}
	return &aar, nil
}

// List returns AARs inside the actor's visible units.
func (s *AARService) List(actor hierarchy.Actor, req *AARListRequest) ([]models.AAR, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	query := s.db.Model(&models.AAR{}).
		Preload("Items").
		Preload("Author").
		Preload("Event")
	if req.UnitID != nil {
		query = query.Where("unit_id = ?", *req.UnitID)
	}
	if req.EventID != nil {
		query = query.Where("event_id = ?", *req.EventID)
	}
	if req.AuthorID != nil {
		query = query.Where("author_id = ?", *req.AuthorID)
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}

	var aars []models.AAR
	if err := query.Order("created_at DESC").Find(&aars).Error; err != nil {
		return nil, err
	}

	return hierarchy.FilterAccessible(ix, actor, aars, func(a models.AAR) uint {
		return a.UnitID
	}), nil
}

func (s *AARService) GetByID(actor hierarchy.Actor, id uint) (*models.AAR, error) {
	var aar models.AAR
	if err := s.db.Preload("Items").Preload("Author").Preload("Event").First(&aar, id).Error; err != nil {
		return nil, err
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, aar.UnitID) {
		return nil, hierarchy.ErrAccessDenied
	}
	return &aar, nil
}

// Delete removes an AAR. Authors delete their own; leadership deletes within
// their managed subtree.
func (s *AARService) Delete(actor hierarchy.Actor, id uint) error {
	var aar models.AAR
	if err := s.db.First(&aar, id).Error; err != nil {
		return err
	}

	if aar.AuthorID != actor.ID {
		ix, err := s.scope.Snapshot()
		if err != nil {
			return err
		}
		if !ix.CanManageUnit(actor, aar.UnitID) {
			return hierarchy.ErrAccessDenied
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("aar_id = ?", id).Delete(&models.AARItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&aar).Error
	})
}

// Rollup aggregates item counts by kind across the actor-visible AARs of a
// unit's subtree.
func (s *AARService) Rollup(actor hierarchy.Actor, unitID uint) (*AARRollup, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, unitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	subtree, err := ix.Tree().Subtree(unitID)
	if err != nil {
		return nil, err
	}
	unitIDs := make([]uint, 0, len(subtree))
	for _, u := range subtree {
		unitIDs = append(unitIDs, u.ID)
	}

	rollup := &AARRollup{}
	if err := s.db.Model(&models.AAR{}).Where("unit_id IN ?", unitIDs).Count(&rollup.Total).Error; err != nil {
		return nil, err
	}

	kinds := map[string]*int64{
		models.AARKindSustain: &rollup.Sustain,
		models.AARKindImprove: &rollup.Improve,
		models.AARKindAction:  &rollup.Action,
	}
	for kind, dest := range kinds {
		if err := s.db.Model(&models.AARItem{}).
			Joins("JOIN aars ON aars.id = aar_items.aar_id").
			Where("aars.unit_id IN ? AND aars.deleted_at IS NULL AND aar_items.kind = ?", unitIDs, kind).
			Count(dest).Error; err != nil {
			return nil, err
		}
	}
	return rollup, nil
}
