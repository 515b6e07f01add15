package services

import (
	"errors"
	"time"

	"github.com/basecode360/traintrack/internal/hierarchy"
	"github.com/basecode360/traintrack/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidAssignmentType = errors.New("unknown assignment type")

// AssignmentService mutates unit membership. Every batch is validated as the
// complete post-change assignment set and committed all-or-nothing; the
// validation runs again inside the transaction against current rows.
type AssignmentService struct {
	db    *gorm.DB
	scope *ScopeService
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db, scope: NewScopeService(db)}
}

type AddAssignmentRequest struct {
	UnitID         uint   `json:"unit_id" binding:"required"`
	AssignmentType string `json:"assignment_type" binding:"required"`
	LeadershipRole string `json:"leadership_role"`
}

type ApplyAssignmentsRequest struct {
	Add []AddAssignmentRequest `json:"add"`
	// End lists assignment ids to close in the same batch.
	End []uint `json:"end"`
}

// ListForUser returns a user's assignments, newest first, if the actor can
// see that user.
func (s *AssignmentService) ListForUser(actor hierarchy.Actor, userID uint) ([]models.UnitAssignment, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}
	if !ix.CanAccessUser(actor, userID) {
		return nil, hierarchy.ErrAccessDenied
	}

	var assignments []models.UnitAssignment
	if err := s.db.Where("user_id = ?", userID).
		Preload("Unit").
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Apply commits a batch of assignment additions and closures for one user.
// One invalid change rejects the whole batch.
func (s *AssignmentService) Apply(actor hierarchy.Actor, userID uint, req *ApplyAssignmentsRequest) ([]models.UnitAssignment, error) {
	ix, err := s.scope.Snapshot()
	if err != nil {
		return nil, err
	}

	for _, add := range req.Add {
		if !hierarchy.AssignmentType(add.AssignmentType).Valid() {
			return nil, ErrInvalidAssignmentType
		}
		if !ix.CanManageUnit(actor, add.UnitID) {
			return nil, hierarchy.ErrAccessDenied
		}
	}

	var result []models.UnitAssignment
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txIx, err := NewScopeService(tx).Snapshot()
		if err != nil {
			return err
		}

		var current []models.UnitAssignment
		if err := tx.Where("user_id = ? AND end_date IS NULL", userID).Find(&current).Error; err != nil {
			return err
		}

		ending := make(map[uint]bool, len(req.End))
		for _, id := range req.End {
			ending[id] = true
		}

		// Build the post-change active set the guard validates.
		proposed := make([]hierarchy.Assignment, 0, len(current)+len(req.Add))
		for _, a := range current {
			if ending[a.ID] {
				if !txIx.CanManageUnit(actor, a.UnitID) && !actor.Admin {
					return hierarchy.ErrAccessDenied
				}
				continue
			}
			proposed = append(proposed, s.toHierarchy(txIx, a))
		}

		newRows := make([]models.UnitAssignment, 0, len(req.Add))
		for _, add := range req.Add {
			row := models.UnitAssignment{
				UserID:         userID,
				UnitID:         add.UnitID,
				AssignmentType: add.AssignmentType,
				LeadershipRole: add.LeadershipRole,
				StartDate:      time.Now(),
			}
			newRows = append(newRows, row)
			proposed = append(proposed, s.toHierarchy(txIx, row))
		}

		if err := hierarchy.ValidateAssignmentChange(userID, proposed); err != nil {
			return err
		}

		now := time.Now()
		if len(req.End) > 0 {
			ended := tx.Model(&models.UnitAssignment{}).
				Where("id IN ? AND user_id = ? AND end_date IS NULL", req.End, userID).
				Update("end_date", now)
			if ended.Error != nil {
				return ended.Error
			}
			if ended.RowsAffected != int64(len(req.End)) {
				return hierarchy.ErrAssignmentNotFound
			}
		}

		for i := range newRows {
			if err := tx.Create(&newRows[i]).Error; err != nil {
				return err
			}
		}

		// Keep the denormalized primary-unit pointer in step.
		return s.syncPrimaryUnit(tx, userID, proposed)
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("user_id = ? AND end_date IS NULL", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	uid := actor.ID
	LogInfo("Assignments", "Apply", "applied assignment batch", &uid, "", "", map[string]interface{}{
		"user_id": userID,
		"added":   len(req.Add),
		"ended":   len(req.End),
	})
	return result, nil
}

// Promote swaps the user's primary assignment to the target assignment
// atomically: the old primary becomes attached, the target becomes primary.
func (s *AssignmentService) Promote(actor hierarchy.Actor, userID, assignmentID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txIx, err := NewScopeService(tx).Snapshot()
		if err != nil {
			return err
		}

		var current []models.UnitAssignment
		if err := tx.Where("user_id = ? AND end_date IS NULL", userID).Find(&current).Error; err != nil {
			return err
		}

		var target, primary *models.UnitAssignment
		for i := range current {
			if current[i].ID == assignmentID {
				target = &current[i]
			}
			if current[i].AssignmentType == string(hierarchy.AssignmentPrimary) {
				primary = &current[i]
			}
		}
		if target == nil {
			return hierarchy.ErrAssignmentNotFound
		}
		if !txIx.CanManageUnit(actor, target.UnitID) {
			return hierarchy.ErrAccessDenied
		}
		if target.AssignmentType == string(hierarchy.AssignmentPrimary) {
			// Already primary, nothing to do.
			return nil
		}

		proposed := make([]hierarchy.Assignment, 0, len(current))
		for _, a := range current {
			h := s.toHierarchy(txIx, a)
			switch a.ID {
			case assignmentID:
				h.Type = hierarchy.AssignmentPrimary
			default:
				if primary != nil && a.ID == primary.ID {
					h.Type = hierarchy.AssignmentAttached
				}
			}
			proposed = append(proposed, h)
		}
		if err := hierarchy.ValidateAssignmentChange(userID, proposed); err != nil {
			return err
		}

		if primary != nil {
			if err := tx.Model(primary).
				Update("assignment_type", string(hierarchy.AssignmentAttached)).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(target).
			Update("assignment_type", string(hierarchy.AssignmentPrimary)).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("unit_id", target.UnitID).Error
	})
	if err != nil {
		return err
	}

	uid := actor.ID
	LogInfo("Assignments", "Promote", "promoted assignment to primary", &uid, "", "", map[string]interface{}{
		"user_id":       userID,
		"assignment_id": assignmentID,
	})
	return nil
}

// Remove ends a non-primary assignment. Primaries and a user's last
// assignment are refused; Promote first, then remove.
func (s *AssignmentService) Remove(actor hierarchy.Actor, userID, assignmentID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txIx, err := NewScopeService(tx).Snapshot()
		if err != nil {
			return err
		}

		var current []models.UnitAssignment
		if err := tx.Where("user_id = ?", userID).Find(&current).Error; err != nil {
			return err
		}

		hCurrent := make([]hierarchy.Assignment, 0, len(current))
		var targetUnit uint
		for _, a := range current {
			hCurrent = append(hCurrent, s.toHierarchy(txIx, a))
			if a.ID == assignmentID {
				targetUnit = a.UnitID
			}
		}
		if targetUnit != 0 && !txIx.CanManageUnit(actor, targetUnit) {
			return hierarchy.ErrAccessDenied
		}

		if err := hierarchy.ValidateRemoveAssignment(hCurrent, assignmentID); err != nil {
			return err
		}

		return tx.Model(&models.UnitAssignment{}).
			Where("id = ? AND end_date IS NULL", assignmentID).
			Update("end_date", time.Now()).Error
	})
}

func (s *AssignmentService) toHierarchy(ix *hierarchy.Index, a models.UnitAssignment) hierarchy.Assignment {
	var level hierarchy.UnitLevel
	if u, err := ix.Tree().Unit(a.UnitID); err == nil {
		level = u.Level
	}
	return hierarchy.Assignment{
		ID:             a.ID,
		UserID:         a.UserID,
		UnitID:         a.UnitID,
		Type:           hierarchy.AssignmentType(a.AssignmentType),
		LeadershipRole: hierarchy.Role(a.LeadershipRole),
		UnitLevel:      level,
		Ended:          !a.Active(),
	}
}

// syncPrimaryUnit points users.unit_id at the active primary assignment's
// unit, or clears it when none remains.
func (s *AssignmentService) syncPrimaryUnit(tx *gorm.DB, userID uint, active []hierarchy.Assignment) error {
	for _, a := range active {
		if !a.Ended && a.Type == hierarchy.AssignmentPrimary {
			return tx.Model(&models.User{}).Where("id = ?", userID).
				Update("unit_id", a.UnitID).Error
		}
	}
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Update("unit_id", nil).Error
}
