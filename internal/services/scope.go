package services

import (
	"errors"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"github.com/basecode360/traintrack/pkg/logger"
	"gorm.io/gorm"
)

// ScopeService loads hierarchy snapshots from the database and resolves the
// acting user's visibility. A snapshot is built fresh per request; token
// claims never carry unit scope, so a reassignment takes effect on the next
// call without re-login.
type ScopeService struct {
	db *gorm.DB
}

func NewScopeService(db *gorm.DB) *ScopeService {
	return &ScopeService{db: db}
}

// Snapshot loads all live units, active users and active assignments into an
// in-memory hierarchy index.
func (s *ScopeService) Snapshot() (*hierarchy.Index, error) {
	var units []models.Unit
	if err := s.db.Find(&units).Error; err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}

	var assignments []models.UnitAssignment
	if err := s.db.Where("end_date IS NULL").Find(&assignments).Error; err != nil {
		return nil, err
	}

	hUnits := make([]hierarchy.Unit, 0, len(units))
	levelByUnit := make(map[uint]hierarchy.UnitLevel, len(units))
	for _, u := range units {
		level, ok := hierarchy.ParseUnitLevel(u.UnitLevel)
		if !ok {
			return nil, hierarchy.ErrInvalidUnitLevel
		}
		levelByUnit[u.ID] = level
		hUnits = append(hUnits, hierarchy.Unit{
			ID:       u.ID,
			Name:     u.Name,
			Level:    level,
			ParentID: u.ParentID,
		})
	}

	members := make([]hierarchy.Member, 0, len(users))
	for _, u := range users {
		var unitID uint
		if u.UnitID != nil {
			unitID = *u.UnitID
		}
		members = append(members, hierarchy.Member{
			ID:     u.ID,
			Name:   u.Name,
			Role:   hierarchy.Role(u.Role),
			UnitID: unitID,
		})
	}

	hAssignments := make([]hierarchy.Assignment, 0, len(assignments))
	for _, a := range assignments {
		hAssignments = append(hAssignments, hierarchy.Assignment{
			ID:             a.ID,
			UserID:         a.UserID,
			UnitID:         a.UnitID,
			Type:           hierarchy.AssignmentType(a.AssignmentType),
			LeadershipRole: hierarchy.Role(a.LeadershipRole),
			UnitLevel:      levelByUnit[a.UnitID],
			Ended:          !a.Active(),
		})
	}

	return hierarchy.NewIndex(hierarchy.NewTree(hUnits), members, hAssignments), nil
}

// ActorForUser builds the access-control actor for a user id. Unknown users
// yield the zero actor, which the hierarchy treats as unauthenticated.
func (s *ScopeService) ActorForUser(userID uint) (hierarchy.Actor, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return hierarchy.Actor{}, nil
		}
		return hierarchy.Actor{}, err
	}

	var unitID uint
	if user.UnitID != nil {
		unitID = *user.UnitID
	}

	return hierarchy.Actor{
		ID:     user.ID,
		Role:   hierarchy.Role(user.Role),
		UnitID: unitID,
		Admin:  user.IsAdmin,
	}, nil
}

// AccessibleUnits resolves the actor's visible unit set against a fresh
// snapshot. Admin overrides are recorded to the system log.
func (s *ScopeService) AccessibleUnits(actor hierarchy.Actor) (*hierarchy.Index, map[uint]*hierarchy.Unit, error) {
	ix, err := s.Snapshot()
	if err != nil {
		return nil, nil, err
	}

	units, err := ix.AccessibleUnits(actor)
	if err != nil {
		if errors.Is(err, hierarchy.ErrCycleDetected) {
			// Not a validation failure: the persisted tree is corrupt.
			logger.Error().Err(err).Uint("user_id", actor.ID).
				Msg("persisted cycle in unit hierarchy during scope resolution")
		}
		return nil, nil, err
	}

	if actor.Admin {
		uid := actor.ID
		LogInfo("Access", "AdminOverride", "admin accessed full unit tree", &uid, "", "", map[string]interface{}{
			"units": len(units),
		})
	}

	return ix, units, nil
}
