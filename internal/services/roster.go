package services

import (
	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

// RosterService answers personnel queries through the hierarchy scope:
// who the actor can see, who serves in a unit, and who leads it.
type RosterService struct {
	db    *gorm.DB
	scope *ScopeService
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db, scope: NewScopeService(db)}
}

type RosterListRequest struct {
	UnitID *uint  `form:"unit_id"`
	Search string `form:"search"`
	Role   string `form:"role"`
}

type UnitLeaderResponse struct {
	UnitID uint         `json:"unit_id"`
	Leader *models.User `json:"leader"` // nil when the unit has no leadership
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
	Role string `json:"role"`
	Bio  string `json:"bio"`
}

// List returns the users the actor may see, optionally narrowed to one unit.
func (s *RosterService) List(actor hierarchy.Actor, req *RosterListRequest) ([]models.User, error) {
	ix, accessible, err := s.scope.AccessibleUnits(actor)
	if err != nil {
		return nil, err
	}

	if req.UnitID != nil {
		if _, ok := accessible[*req.UnitID]; !ok {
			return nil, hierarchy.ErrAccessDenied
		}
	}

	visible := ix.AccessibleUsers(actor, accessible)
	ids := make([]uint, 0, len(visible))
	for _, m := range visible {
		ids = append(ids, m.ID)
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	query := s.db.Where("id IN ?", ids)
	if req.UnitID != nil {
		// Membership in the unit may come from any active assignment, not
		// just the primary pointer.
		assigned := s.db.Model(&models.UnitAssignment{}).
			Select("user_id").
			Where("unit_id = ? AND end_date IS NULL", *req.UnitID)
		query = query.Where("unit_id = ? OR id IN (?)", *req.UnitID, assigned)
	}
	if req.Search != "" {
		query = query.Where("name LIKE ? OR username LIKE ?", "%"+req.Search+"%", "%"+req.Search+"%")
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var users []models.User
	if err := query.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a user profile the actor is allowed to see.
func (s *RosterService) GetByID(actor hierarchy.Actor, userID uint) (*models.User, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUser(actor, userID) {
		return nil, hierarchy.ErrAccessDenied
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits a user. Users edit themselves; leadership edits anyone
// in their subtree. Role changes require management authority even on self.
func (s *RosterService) UpdateProfile(actor hierarchy.Actor, userID uint, req *UpdateProfileRequest) (*models.User, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	self := actor.ID == userID
	var manages bool
	if user.UnitID != nil {
		manages = ix.CanManageUnit(actor, *user.UnitID)
	} else {
		manages = actor.Admin
	}
	if !self && !manages {
		return nil, hierarchy.ErrAccessDenied
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Rank != "" {
		updates["rank"] = req.Rank
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Role != "" {
		if !manages {
			return nil, hierarchy.ErrAccessDenied
		}
		if hierarchy.Role(req.Role).Authority() == 0 {
			return nil, hierarchy.ErrInvalidLeadershipRole
		}
		updates["role"] = req.Role
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UnitLeader resolves the unit's leader: the member with the highest duty
// authority, lowest user id winning ties. Only an empty unit has no leader.
func (s *RosterService) UnitLeader(actor hierarchy.Actor, unitID uint) (*UnitLeaderResponse, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUnit(actor, unitID) {
		return nil, hierarchy.ErrAccessDenied
	}

	leader, ok := ix.UnitLeader(unitID)
	resp := &UnitLeaderResponse{UnitID: unitID}
	if !ok {
		return resp, nil
	}

	var user models.User
	if err := s.db.First(&user, leader.ID).Error; err != nil {
		return nil, err
	}
	resp.Leader = &user
	return resp, nil
}
