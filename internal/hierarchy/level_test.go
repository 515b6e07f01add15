package hierarchy

import "testing"

func TestUnitLevel_Ordering(t *testing.T) {
	if !LevelBattalion.Above(LevelCompany) {
		t.Error("battalion should be above company")
	}
	if !LevelCompany.Above(LevelSquad) {
		t.Error("company should be above squad")
	}
	if LevelSquad.Above(LevelSquad) {
		t.Error("a level is not above itself")
	}
	if LevelTeam.Above(LevelDivision) {
		t.Error("team must not be above division")
	}
}

func TestParseUnitLevel(t *testing.T) {
	l, ok := ParseUnitLevel("platoon")
	if !ok || l != LevelPlatoon {
		t.Errorf("ParseUnitLevel(platoon) = %v, %v", l, ok)
	}
	if _, ok := ParseUnitLevel("regiment"); ok {
		t.Error("unknown level name should not parse")
	}
	if LevelPlatoon.String() != "platoon" {
		t.Errorf("String() = %q, expected %q", LevelPlatoon.String(), "platoon")
	}
}

func TestRole_Authority(t *testing.T) {
	ordered := []Role{RoleSoldier, RoleTeamLeader, RoleSquadLeader, RolePlatoonSergeant, RolePlatoonLeader, RoleFirstSergeant, RoleXO, RoleCommander}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Authority() <= ordered[i-1].Authority() {
			t.Errorf("%s should outrank %s", ordered[i], ordered[i-1])
		}
	}
	if Role("unknown").Authority() >= RoleSoldier.Authority() {
		t.Error("unknown role must rank below soldier")
	}
}

func TestRole_Leadership(t *testing.T) {
	if RoleSoldier.Leadership() {
		t.Error("soldier is not a leadership role")
	}
	if !RoleSquadLeader.Leadership() {
		t.Error("squad leader is a leadership role")
	}
}

func TestValidLeadershipRole(t *testing.T) {
	cases := []struct {
		level UnitLevel
		role  Role
		want  bool
	}{
		{LevelCompany, RoleFirstSergeant, true},
		{LevelCompany, RoleSquadLeader, false},
		{LevelPlatoon, RolePlatoonLeader, true},
		{LevelPlatoon, RoleCommander, false},
		{LevelSquad, RoleSquadLeader, true},
		{LevelTeam, RoleTeamLeader, true},
		{LevelBattalion, RoleCommander, true},
		{LevelBattalion, RoleTeamLeader, false},
	}
	for _, c := range cases {
		if got := ValidLeadershipRole(c.level, c.role); got != c.want {
			t.Errorf("ValidLeadershipRole(%s, %s) = %v, expected %v", c.level, c.role, got, c.want)
		}
	}
}

func TestAssignmentType_Valid(t *testing.T) {
	for _, at := range []AssignmentType{AssignmentPrimary, AssignmentAttached, AssignmentTemporary, AssignmentDualHatted} {
		if !at.Valid() {
			t.Errorf("%s should be valid", at)
		}
	}
	if AssignmentType("detached").Valid() {
		t.Error("unknown assignment type should be invalid")
	}
}
