package hierarchy

import "testing"

func TestCanAccessUnit_SubtreeOnly(t *testing.T) {
	ix := newTestIndex()
	// Scenario: battalion(1) → company(2) → platoon(3) → squad(4); actor's
	// primary unit is the platoon.
	actor := Actor{ID: 11, Role: RolePlatoonSergeant, UnitID: 3}

	if !ix.CanAccessUnit(actor, 3) {
		t.Error("actor must access their own unit")
	}
	if !ix.CanAccessUnit(actor, 4) {
		t.Error("actor must access descendant squad")
	}
	if ix.CanAccessUnit(actor, 2) {
		t.Error("no leakage upward: parent company denied")
	}
	if ix.CanAccessUnit(actor, 1) {
		t.Error("no leakage upward: battalion denied")
	}
	if ix.CanAccessUnit(actor, 6) {
		t.Error("no leakage sideways: sibling subtree denied")
	}
}

func TestCanAccessUnit_Transitive(t *testing.T) {
	ix := newTestIndex()
	actor := Actor{ID: 10, Role: RoleCommander, UnitID: 1}

	// company below battalion, platoon below company, squad below platoon:
	// access to the top implies access all the way down.
	for _, id := range []uint{1, 2, 3, 4, 5, 6} {
		if !ix.CanAccessUnit(actor, id) {
			t.Errorf("battalion member should access descendant unit %d", id)
		}
	}
}

func TestCanAccessUnit_UnknownUnitDenied(t *testing.T) {
	ix := newTestIndex()
	actor := Actor{ID: 10, Role: RoleCommander, UnitID: 1}

	if ix.CanAccessUnit(actor, 999) {
		t.Error("unknown unit must be denied, not error")
	}
}

func TestCanAccessUser(t *testing.T) {
	ix := newTestIndex()

	battalion := Actor{ID: 10, Role: RoleCommander, UnitID: 1}
	platoon := Actor{ID: 11, Role: RolePlatoonSergeant, UnitID: 3}

	if !ix.CanAccessUser(battalion, 11) {
		t.Error("battalion member should see platoon member")
	}
	if ix.CanAccessUser(platoon, 10) {
		t.Error("platoon member must not see battalion commander")
	}
	if !ix.CanAccessUser(platoon, 11) {
		t.Error("actor must always see themself")
	}
	if !ix.CanAccessUser(platoon, 14) {
		t.Error("platoon member should see soldier in descendant squad")
	}
	if ix.CanAccessUser(platoon, 999) {
		t.Error("unknown user must be denied")
	}
}

func TestCanAccessUser_MonotonicUnderPromotion(t *testing.T) {
	ix := newTestIndex()

	// Same user placed at squad, then promoted to platoon: the accessible
	// set may only grow.
	squadActor := Actor{ID: 13, Role: RoleSquadLeader, UnitID: 4}
	platoonActor := Actor{ID: 13, Role: RolePlatoonLeader, UnitID: 3}

	before, _ := ix.AccessibleUnits(squadActor)
	after, _ := ix.AccessibleUnits(platoonActor)

	for id := range before {
		if _, ok := after[id]; !ok {
			t.Errorf("unit %d accessible before promotion but not after", id)
		}
	}
	if len(after) < len(before) {
		t.Errorf("accessible set shrank under promotion: %d → %d", len(before), len(after))
	}
}

func TestFilterAccessible(t *testing.T) {
	ix := newTestIndex()
	actor := Actor{ID: 11, Role: RolePlatoonSergeant, UnitID: 3}

	type record struct {
		ID     uint
		UnitID uint
	}
	records := []record{
		{ID: 1, UnitID: 1},
		{ID: 2, UnitID: 3},
		{ID: 3, UnitID: 4},
		{ID: 4, UnitID: 6},
	}

	kept := FilterAccessible(ix, actor, records, func(r record) uint { return r.UnitID })
	if len(kept) != 2 {
		t.Fatalf("len(kept) = %d, expected 2", len(kept))
	}
	if kept[0].ID != 2 || kept[1].ID != 3 {
		t.Errorf("kept = [%d, %d], expected [2, 3]", kept[0].ID, kept[1].ID)
	}
}

func TestFilterAccessible_UnauthenticatedGetsNothing(t *testing.T) {
	ix := newTestIndex()

	records := []uint{1, 2, 3}
	kept := FilterAccessible(ix, Actor{}, records, func(u uint) uint { return u })
	if len(kept) != 0 {
		t.Errorf("unauthenticated filter kept %d records, expected 0", len(kept))
	}
}

func TestCanManageUnit_RequiresLeadership(t *testing.T) {
	ix := newTestIndex()

	soldier := Actor{ID: 14, Role: RoleSoldier, UnitID: 4}
	if ix.CanManageUnit(soldier, 4) {
		t.Error("plain subtree membership must not grant manage rights")
	}

	squadLeader := Actor{ID: 13, Role: RoleSquadLeader, UnitID: 4}
	if !ix.CanManageUnit(squadLeader, 4) {
		t.Error("squad leader should manage their own squad")
	}

	commander := Actor{ID: 10, Role: RoleCommander, UnitID: 1}
	if !ix.CanManageUnit(commander, 4) {
		t.Error("commander should manage any unit below the battalion")
	}

	// Leadership in a sibling subtree grants nothing here.
	siblingLeader := Actor{ID: 15, Role: RoleSquadLeader, UnitID: 6}
	if ix.CanManageUnit(siblingLeader, 4) {
		t.Error("leadership in a sibling subtree must not grant manage rights")
	}
}

func TestCanManageUnit_ViaLeadershipAssignment(t *testing.T) {
	// Soldier by primary role, but dual-hatted with a leadership assignment
	// on the platoon.
	ix := newTestIndex(Assignment{
		ID: 1, UserID: 14, UnitID: 3, Type: AssignmentDualHatted,
		LeadershipRole: RolePlatoonSergeant, UnitLevel: LevelPlatoon,
	})
	actor := Actor{ID: 14, Role: RoleSoldier, UnitID: 4}

	if !ix.CanManageUnit(actor, 4) {
		t.Error("leadership assignment on an ancestor should grant manage rights")
	}
	if ix.CanManageUnit(actor, 2) {
		t.Error("manage rights must not extend above the assignment unit")
	}
}

func TestCanManageUnit_Admin(t *testing.T) {
	ix := newTestIndex()
	admin := Actor{ID: 99, Admin: true}

	if !ix.CanManageUnit(admin, 4) {
		t.Error("admin should manage any unit")
	}
}
