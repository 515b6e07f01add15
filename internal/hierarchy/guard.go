package hierarchy

import "fmt"

// The mutation guard validates structural changes before they reach
// persistence. All validators are pure reads over a tree snapshot; the
// service layer re-runs them inside the write transaction so a concurrent
// edit cannot slip a cycle or a second primary assignment past a stale check.

// ValidateCreateUnit checks a proposed new unit. A root creation (nil parent)
// only needs a valid level; a parented creation additionally requires the
// parent to exist and to sit strictly higher in the level ordering.
func ValidateCreateUnit(tree *Tree, level UnitLevel, parentID *uint) error {
	if !level.Valid() {
		return fmt.Errorf("level %d: %w", level, ErrInvalidUnitLevel)
	}
	if parentID == nil {
		return nil
	}
	parent, err := tree.Unit(*parentID)
	if err != nil {
		return err
	}
	if !parent.Level.Above(level) {
		return fmt.Errorf("%s under %s: %w", level, parent.Level, ErrInvalidLevelOrdering)
	}
	return nil
}

// ValidateReparent checks moving a unit under a new parent. A nil newParentID
// detaches the unit to a root, which is always structurally valid.
func ValidateReparent(tree *Tree, unitID uint, newParentID *uint) error {
	unit, err := tree.Unit(unitID)
	if err != nil {
		return err
	}
	if newParentID == nil {
		return nil
	}
	if *newParentID == unitID {
		return fmt.Errorf("unit %d: %w", unitID, ErrSelfParent)
	}
	newParent, err := tree.Unit(*newParentID)
	if err != nil {
		return err
	}

	// The proposed parent must not currently live below the unit being moved.
	descendant, err := tree.IsDescendant(*newParentID, unitID)
	if err != nil {
		return err
	}
	if descendant {
		return fmt.Errorf("unit %d under its descendant %d: %w", unitID, *newParentID, ErrCycleWouldForm)
	}

	if !newParent.Level.Above(unit.Level) {
		return fmt.Errorf("%s under %s: %w", unit.Level, newParent.Level, ErrInvalidLevelOrdering)
	}
	return nil
}

// ValidateAssignmentChange checks the full proposed active-assignment set for
// a user, as it would stand after a batch of changes. The batch is
// all-or-nothing: one violation rejects every mutation in it.
func ValidateAssignmentChange(userID uint, proposed []Assignment) error {
	primaries := 0
	activeUnits := make(map[uint]bool)

	for _, a := range proposed {
		if a.Ended {
			continue
		}
		if a.UserID != userID {
			return fmt.Errorf("assignment %d belongs to user %d, not %d: %w", a.ID, a.UserID, userID, ErrAssignmentNotFound)
		}
		if activeUnits[a.UnitID] {
			return fmt.Errorf("unit %d: %w", a.UnitID, ErrDuplicateActiveAssignment)
		}
		activeUnits[a.UnitID] = true

		if a.Type == AssignmentPrimary {
			primaries++
		}
		if a.LeadershipRole != "" && !ValidLeadershipRole(a.UnitLevel, a.LeadershipRole) {
			return fmt.Errorf("role %q at %s level: %w", a.LeadershipRole, a.UnitLevel, ErrInvalidLeadershipRole)
		}
	}

	if primaries == 0 {
		// An emptied active set fails too: ending the sole primary without a
		// replacement would strand the user outside the hierarchy.
		return ErrNoPrimaryAssignment
	}
	if primaries > 1 {
		return ErrMultiplePrimaryAssignments
	}
	return nil
}

// ValidateRemoveAssignment checks ending one of the user's active
// assignments. The primary assignment cannot be removed unless another
// assignment is promoted in the same transaction, and the last remaining
// assignment cannot be removed at all.
func ValidateRemoveAssignment(current []Assignment, assignmentID uint) error {
	var target *Assignment
	active := 0
	for i := range current {
		if current[i].Ended {
			continue
		}
		active++
		if current[i].ID == assignmentID {
			target = &current[i]
		}
	}
	if target == nil {
		return fmt.Errorf("assignment %d: %w", assignmentID, ErrAssignmentNotFound)
	}
	if target.Type == AssignmentPrimary {
		return fmt.Errorf("assignment %d: %w", assignmentID, ErrCannotRemovePrimary)
	}
	if active == 1 {
		return fmt.Errorf("assignment %d is the user's last assignment: %w", assignmentID, ErrCannotRemovePrimary)
	}
	return nil
}
