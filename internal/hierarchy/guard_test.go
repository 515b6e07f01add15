package hierarchy

import (
	"errors"
	"testing"
)

func TestValidateCreateUnit(t *testing.T) {
	tree := NewTree(testUnits())

	// Root creation needs only a valid level.
	if err := ValidateCreateUnit(tree, LevelBattalion, nil); err != nil {
		t.Errorf("root creation error = %v, expected nil", err)
	}

	// Platoon under company is fine.
	if err := ValidateCreateUnit(tree, LevelPlatoon, uintPtr(2)); err != nil {
		t.Errorf("platoon under company error = %v, expected nil", err)
	}

	// Company under squad violates the level ordering.
	err := ValidateCreateUnit(tree, LevelCompany, uintPtr(4))
	if !errors.Is(err, ErrInvalidLevelOrdering) {
		t.Errorf("company under squad error = %v, expected ErrInvalidLevelOrdering", err)
	}

	// Equal levels are not strictly higher.
	err = ValidateCreateUnit(tree, LevelCompany, uintPtr(2))
	if !errors.Is(err, ErrInvalidLevelOrdering) {
		t.Errorf("company under company error = %v, expected ErrInvalidLevelOrdering", err)
	}

	// Missing parent.
	err = ValidateCreateUnit(tree, LevelSquad, uintPtr(99))
	if !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("missing parent error = %v, expected ErrUnitNotFound", err)
	}

	// Unknown level.
	err = ValidateCreateUnit(tree, UnitLevel(42), nil)
	if !errors.Is(err, ErrInvalidUnitLevel) {
		t.Errorf("bad level error = %v, expected ErrInvalidUnitLevel", err)
	}
}

func TestValidateCreateUnit_LevelOrderingGrid(t *testing.T) {
	// For every parent level not strictly above the child level, creation
	// must be rejected.
	levels := []UnitLevel{LevelTeam, LevelSquad, LevelSection, LevelPlatoon, LevelCompany, LevelBattalion, LevelBrigade, LevelDivision}
	for _, parent := range levels {
		tree := NewTree([]Unit{{ID: 1, Name: "p", Level: parent}})
		for _, child := range levels {
			err := ValidateCreateUnit(tree, child, uintPtr(1))
			if parent.Above(child) {
				if err != nil {
					t.Errorf("create %s under %s error = %v, expected nil", child, parent, err)
				}
			} else if !errors.Is(err, ErrInvalidLevelOrdering) {
				t.Errorf("create %s under %s error = %v, expected ErrInvalidLevelOrdering", child, parent, err)
			}
		}
	}
}

func TestValidateReparent_SelfParent(t *testing.T) {
	tree := NewTree(testUnits())

	err := ValidateReparent(tree, 3, uintPtr(3))
	if !errors.Is(err, ErrSelfParent) {
		t.Errorf("error = %v, expected ErrSelfParent", err)
	}
}

func TestValidateReparent_CycleWouldForm(t *testing.T) {
	tree := NewTree(testUnits())

	// Battalion(1) under squad(4): squad is a descendant of the battalion.
	err := ValidateReparent(tree, 1, uintPtr(4))
	if !errors.Is(err, ErrCycleWouldForm) {
		t.Errorf("error = %v, expected ErrCycleWouldForm", err)
	}

	// Company(2) under its own platoon(3).
	err = ValidateReparent(tree, 2, uintPtr(3))
	if !errors.Is(err, ErrCycleWouldForm) {
		t.Errorf("error = %v, expected ErrCycleWouldForm", err)
	}
}

func TestValidateReparent_CycleRejection_AllDescendantPairs(t *testing.T) {
	tree := NewTree(testUnits())

	// Every (X, Y) where Y is a strict descendant of X must be rejected.
	for _, x := range []uint{1, 2, 3, 5} {
		sub, err := tree.Subtree(x)
		if err != nil {
			t.Fatalf("Subtree(%d) error = %v", x, err)
		}
		for _, y := range sub {
			if y.ID == x {
				continue
			}
			err := ValidateReparent(tree, x, uintPtr(y.ID))
			if !errors.Is(err, ErrCycleWouldForm) {
				t.Errorf("reparent %d under descendant %d error = %v, expected ErrCycleWouldForm", x, y.ID, err)
			}
		}
	}
}

func TestValidateReparent_InvalidLevelOrdering(t *testing.T) {
	tree := NewTree(testUnits())

	// Company(2) under the sibling company's platoon(6): no cycle, but a
	// platoon is not above a company.
	err := ValidateReparent(tree, 2, uintPtr(6))
	if !errors.Is(err, ErrInvalidLevelOrdering) {
		t.Errorf("company under platoon error = %v, expected ErrInvalidLevelOrdering", err)
	}
}

func TestValidateReparent_DetachToRoot(t *testing.T) {
	tree := NewTree(testUnits())

	if err := ValidateReparent(tree, 3, nil); err != nil {
		t.Errorf("detach to root error = %v, expected nil", err)
	}
}

func TestValidateReparent_ValidMove(t *testing.T) {
	tree := NewTree(testUnits())

	// Move 1st PLT(3) under B Co(5).
	if err := ValidateReparent(tree, 3, uintPtr(5)); err != nil {
		t.Errorf("valid reparent error = %v, expected nil", err)
	}
}

func TestValidateReparent_UnknownUnits(t *testing.T) {
	tree := NewTree(testUnits())

	if err := ValidateReparent(tree, 99, uintPtr(1)); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("unknown unit error = %v, expected ErrUnitNotFound", err)
	}
	if err := ValidateReparent(tree, 3, uintPtr(99)); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("unknown parent error = %v, expected ErrUnitNotFound", err)
	}
}

func TestValidateAssignmentChange_SinglePrimary(t *testing.T) {
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentAttached, UnitLevel: LevelCompany},
	}
	if err := ValidateAssignmentChange(7, proposed); err != nil {
		t.Errorf("valid set error = %v, expected nil", err)
	}
}

func TestValidateAssignmentChange_NoPrimary(t *testing.T) {
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentAttached, UnitLevel: LevelSquad},
	}
	err := ValidateAssignmentChange(7, proposed)
	if !errors.Is(err, ErrNoPrimaryAssignment) {
		t.Errorf("error = %v, expected ErrNoPrimaryAssignment", err)
	}
}

func TestValidateAssignmentChange_MultiplePrimary(t *testing.T) {
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentPrimary, UnitLevel: LevelCompany},
	}
	err := ValidateAssignmentChange(7, proposed)
	if !errors.Is(err, ErrMultiplePrimaryAssignments) {
		t.Errorf("error = %v, expected ErrMultiplePrimaryAssignments", err)
	}
}

func TestValidateAssignmentChange_DuplicateActiveUnit(t *testing.T) {
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 4, Type: AssignmentTemporary, UnitLevel: LevelSquad},
	}
	err := ValidateAssignmentChange(7, proposed)
	if !errors.Is(err, ErrDuplicateActiveAssignment) {
		t.Errorf("error = %v, expected ErrDuplicateActiveAssignment", err)
	}
}

func TestValidateAssignmentChange_EndingSolePrimaryRejected(t *testing.T) {
	// A batch that ends the user's only (primary) assignment leaves an empty
	// active set; that must fail, not slip past the primary count.
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad, Ended: true},
	}
	err := ValidateAssignmentChange(7, proposed)
	if !errors.Is(err, ErrNoPrimaryAssignment) {
		t.Errorf("ValidateAssignmentChange on emptied set = %v, expected ErrNoPrimaryAssignment", err)
	}
}

func TestValidateAssignmentChange_EmptySetRejected(t *testing.T) {
	err := ValidateAssignmentChange(7, nil)
	if !errors.Is(err, ErrNoPrimaryAssignment) {
		t.Errorf("ValidateAssignmentChange(nil) = %v, expected ErrNoPrimaryAssignment", err)
	}
}

func TestValidateAssignmentChange_EndedAssignmentsIgnored(t *testing.T) {
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad, Ended: true},
	}
	if err := ValidateAssignmentChange(7, proposed); err != nil {
		t.Errorf("ended duplicate/primary should not count, error = %v", err)
	}
}

func TestValidateAssignmentChange_LeadershipVocabulary(t *testing.T) {
	// Squad leader on a company-level assignment is out of vocabulary.
	proposed := []Assignment{
		{ID: 1, UserID: 7, UnitID: 2, Type: AssignmentPrimary, LeadershipRole: RoleSquadLeader, UnitLevel: LevelCompany},
	}
	err := ValidateAssignmentChange(7, proposed)
	if !errors.Is(err, ErrInvalidLeadershipRole) {
		t.Errorf("error = %v, expected ErrInvalidLeadershipRole", err)
	}

	// First sergeant at company level is fine.
	proposed[0].LeadershipRole = RoleFirstSergeant
	if err := ValidateAssignmentChange(7, proposed); err != nil {
		t.Errorf("first sergeant at company error = %v, expected nil", err)
	}
}

func TestValidateAssignmentChange_PromoteSwap(t *testing.T) {
	// Scenario: primary on unit 4, new attached on unit 2 promoted to
	// primary while the old primary demotes to attached. Exactly one primary
	// at every step.
	before := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentAttached, UnitLevel: LevelCompany},
	}
	if err := ValidateAssignmentChange(7, before); err != nil {
		t.Fatalf("pre-promotion set error = %v", err)
	}

	after := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentAttached, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentPrimary, UnitLevel: LevelCompany},
	}
	if err := ValidateAssignmentChange(7, after); err != nil {
		t.Fatalf("post-promotion set error = %v", err)
	}

	primaries := 0
	for _, a := range after {
		if a.Type == AssignmentPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Errorf("primaries = %d, expected exactly 1", primaries)
	}
}

func TestValidateRemoveAssignment(t *testing.T) {
	current := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentAttached, UnitLevel: LevelCompany},
	}

	// Removing the attached assignment is fine.
	if err := ValidateRemoveAssignment(current, 2); err != nil {
		t.Errorf("remove attached error = %v, expected nil", err)
	}

	// Removing the primary without a replacement is rejected.
	err := ValidateRemoveAssignment(current, 1)
	if !errors.Is(err, ErrCannotRemovePrimary) {
		t.Errorf("remove primary error = %v, expected ErrCannotRemovePrimary", err)
	}
}

func TestValidateRemoveAssignment_LastAssignment(t *testing.T) {
	current := []Assignment{
		{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentAttached, UnitLevel: LevelCompany},
	}
	err := ValidateRemoveAssignment(current, 2)
	if !errors.Is(err, ErrCannotRemovePrimary) {
		t.Errorf("remove last assignment error = %v, expected ErrCannotRemovePrimary", err)
	}
}

func TestValidateRemoveAssignment_NotFound(t *testing.T) {
	current := []Assignment{
		{ID: 1, UserID: 7, UnitID: 4, Type: AssignmentPrimary, UnitLevel: LevelSquad},
	}
	err := ValidateRemoveAssignment(current, 99)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("error = %v, expected ErrAssignmentNotFound", err)
	}

	// Ended assignments cannot be removed again.
	current = append(current, Assignment{ID: 2, UserID: 7, UnitID: 2, Type: AssignmentAttached, UnitLevel: LevelCompany, Ended: true})
	err = ValidateRemoveAssignment(current, 2)
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("remove ended assignment error = %v, expected ErrAssignmentNotFound", err)
	}
}
