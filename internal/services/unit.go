package services

import (
	"errors"
	"time"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnitHasChildren = errors.New("unit still has subordinate units")
	ErrUnitHasMembers  = errors.New("unit still has assigned personnel")
	ErrStaleParent     = errors.New("unit was moved concurrently, retry")
	ErrReferralInvalid = errors.New("referral code not recognized")
)

type UnitService struct {
	db    *gorm.DB
	scope *ScopeService
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{db: db, scope: NewScopeService(db)}
}

type CreateUnitRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitLevel string `json:"unit_level" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
}

type ReparentUnitRequest struct {
	// NewParentID nil detaches the unit into a new root.
	NewParentID *uint `json:"new_parent_id"`
	// ExpectedParentID is the parent the caller believes the unit has;
	// the move is rejected if another writer got there first.
	ExpectedParentID *uint `json:"expected_parent_id"`
}

type UnitNode struct {
	Unit     models.Unit `json:"unit"`
	Children []*UnitNode `json:"children"`
}

// List returns the units visible to the actor, ordered by id.
func (s *UnitService) List(actor hierarchy.Actor) ([]models.Unit, error) {
	_, accessible, err := s.scope.AccessibleUnits(actor)
	if err != nil {
		return nil, err
	}
	if len(accessible) == 0 {
		return []models.Unit{}, nil
	}

	ids := make([]uint, 0, len(accessible))
	for id := range accessible {
		ids = append(ids, id)
	}

	var units []models.Unit
	if err := s.db.Where("id IN ?", ids).Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// TreeView returns the actor's visible units as a nested forest. Units whose
// parent is out of scope surface as roots of their visible fragment.
func (s *UnitService) TreeView(actor hierarchy.Actor) ([]*UnitNode, error) {
	units, err := s.List(actor)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint]*UnitNode, len(units))
	for i := range units {
		nodes[units[i].ID] = &UnitNode{Unit: units[i], Children: []*UnitNode{}}
	}

	var roots []*UnitNode
	for i := range units {
		n := nodes[units[i].ID]
		if units[i].ParentID != nil {
			if parent, ok := nodes[*units[i].ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// Children returns a unit's direct subordinate units. UI tree expansion
// loads one level at a time through this rather than the whole subtree.
func (s *UnitService) Children(actor hierarchy.Actor, id uint) ([]models.Unit, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, id) {
		return nil, hierarchy.ErrAccessDenied
	}

	subs, err := ix.SubordinateUnits(id)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return []models.Unit{}, nil
	}

	ids := make([]uint, 0, len(subs))
	for _, u := range subs {
		ids = append(ids, u.ID)
	}

	var units []models.Unit
	if err := s.db.Where("id IN ?", ids).Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// GetByID returns a unit if the actor may see it.
func (s *UnitService) GetByID(actor hierarchy.Actor, id uint) (*models.Unit, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, id) {
		return nil, hierarchy.ErrAccessDenied
	}

	var unit models.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// Create adds a unit. Any authenticated user may create one; a hardened
// deployment would restrict this, but here only the guard's structural
// checks apply. The level ordering check runs once against the caller's
// snapshot and again inside the write transaction.
func (s *UnitService) Create(actor hierarchy.Actor, req *CreateUnitRequest) (*models.Unit, error) {
	level, ok := hierarchy.ParseUnitLevel(req.UnitLevel)
	if !ok {
		return nil, hierarchy.ErrInvalidUnitLevel
	}

	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	if actor.ID == 0 {
		return nil, hierarchy.ErrAccessDenied
	}

	if err := hierarchy.ValidateCreateUnit(ix.Tree(), level, req.ParentID); err != nil {
		return nil, err
	}

	unit := models.Unit{
		Name:         req.Name,
		UnitLevel:    level.String(),
		ParentID:     req.ParentID,
		ReferralCode: uuid.NewString(),
		CreatedBy:    actor.ID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-validate against the committed tree; the parent may have
		// moved or died since the snapshot.
		txIx, err := NewScopeService(tx).Snapshot()
		if err != nil {
			return err
		}
		if err := hierarchy.ValidateCreateUnit(txIx.Tree(), level, req.ParentID); err != nil {
			return err
		}
		return tx.Create(&unit).Error
	})
	if err != nil {
		return nil, err
	}

	uid := actor.ID
	LogInfo("Units", "Create", "created unit "+unit.Name, &uid, "", "", map[string]interface{}{
		"unit_id": unit.ID,
		"level":   unit.UnitLevel,
	})
	return &unit, nil
}

// Reparent moves a unit under a new parent, or detaches it when NewParentID
// is nil. The commit is a compare-and-swap on parent_id: if the row's parent
// no longer matches what the caller saw, nothing is written.
func (s *UnitService) Reparent(actor hierarchy.Actor, unitID uint, req *ReparentUnitRequest) (*models.Unit, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanManageUnit(actor, unitID) {
		return nil, hierarchy.ErrAccessDenied
	}
	if req.NewParentID != nil && !ix.CanManageUnit(actor, *req.NewParentID) {
		return nil, hierarchy.ErrAccessDenied
	}

	if err := hierarchy.ValidateReparent(ix.Tree(), unitID, req.NewParentID); err != nil {
		return nil, err
	}

	var unit models.Unit
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&unit, unitID).Error; err != nil {
			return err
		}

		// Structural checks must hold against the tree as committed, not
		// the snapshot the caller validated against.
		txIx, err := NewScopeService(tx).Snapshot()
		if err != nil {
			return err
		}
		if err := hierarchy.ValidateReparent(txIx.Tree(), unitID, req.NewParentID); err != nil {
			return err
		}

		query := tx.Model(&models.Unit{}).Where("id = ?", unitID)
		if req.ExpectedParentID == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *req.ExpectedParentID)
		}
		result := query.Update("parent_id", req.NewParentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleParent
		}
		unit.ParentID = req.NewParentID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uid := actor.ID
	LogInfo("Units", "Reparent", "moved unit "+unit.Name, &uid, "", "", map[string]interface{}{
		"unit_id":   unitID,
		"parent_id": req.NewParentID,
	})
	return &unit, nil
}

// Update renames a unit. Level and parent changes go through Reparent.
func (s *UnitService) Update(actor hierarchy.Actor, id uint, name string) (*models.Unit, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanManageUnit(actor, id) {
		return nil, hierarchy.ErrAccessDenied
	}

	var unit models.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&unit).Update("name", name).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// Delete tombstones a unit. Units with live children or active assignments
// are refused; history pointing at the dead unit is preserved as-is.
func (s *UnitService) Delete(actor hierarchy.Actor, id uint) error {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return err
	}
	if !ix.CanManageUnit(actor, id) {
		return hierarchy.ErrAccessDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var children int64
		if err := tx.Model(&models.Unit{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return ErrUnitHasChildren
		}

		var assigned int64
		if err := tx.Model(&models.UnitAssignment{}).
			Where("unit_id = ? AND end_date IS NULL", id).
			Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return ErrUnitHasMembers
		}

		result := tx.Delete(&models.Unit{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return hierarchy.ErrUnitNotFound
		}
		return nil
	})
}

// RotateReferralCode replaces a unit's join token.
func (s *UnitService) RotateReferralCode(actor hierarchy.Actor, id uint) (string, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return "", err
	}
	if !ix.CanManageUnit(actor, id) {
		return "", hierarchy.ErrAccessDenied
	}

	code := uuid.NewString()
	result := s.db.Model(&models.Unit{}).Where("id = ?", id).Update("referral_code", code)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", hierarchy.ErrUnitNotFound
	}
	return code, nil
}

// JoinByReferral attaches a user to the unit behind a referral code. A user
// with no active assignments joins as primary; otherwise the join is an
// attached assignment on top of their existing primary.
func (s *UnitService) JoinByReferral(userID uint, code string) (*models.UnitAssignment, error) {
	var unit models.Unit
	if err := s.db.Where("referral_code = ?", code).First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrReferralInvalid
		}
		return nil, err
	}

	assignment := models.UnitAssignment{
		UserID:    userID,
		UnitID:    unit.ID,
		StartDate: time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.UnitAssignment{}).
			Where("user_id = ? AND end_date IS NULL", userID).
			Count(&active).Error; err != nil {
			return err
		}

		var dup int64
		if err := tx.Model(&models.UnitAssignment{}).
			Where("user_id = ? AND unit_id = ? AND end_date IS NULL", userID, unit.ID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return hierarchy.ErrDuplicateActiveAssignment
		}

		if active == 0 {
			assignment.AssignmentType = string(hierarchy.AssignmentPrimary)
			if err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("unit_id", unit.ID).Error; err != nil {
				return err
			}
		} else {
			assignment.AssignmentType = string(hierarchy.AssignmentAttached)
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		return nil, err
	}

	LogInfo("Units", "Join", "user joined unit by referral", &userID, "", "", map[string]interface{}{
		"unit_id": unit.ID,
		"type":    assignment.AssignmentType,
	})
	return &assignment, nil
}
