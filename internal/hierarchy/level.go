package hierarchy

// UnitLevel is the rank of a unit in the fixed organizational depth ordering.
// A unit's parent must always sit at a strictly higher level.
type UnitLevel int

const (
	LevelTeam UnitLevel = iota + 1
	LevelSquad
	LevelSection
	LevelPlatoon
	LevelCompany
	LevelBattalion
	LevelBrigade
	LevelDivision
)

var levelNames = map[UnitLevel]string{
	LevelTeam:      "team",
	LevelSquad:     "squad",
	LevelSection:   "section",
	LevelPlatoon:   "platoon",
	LevelCompany:   "company",
	LevelBattalion: "battalion",
	LevelBrigade:   "brigade",
	LevelDivision:  "division",
}

func (l UnitLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether l is a known unit level.
func (l UnitLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// Above reports whether l is strictly higher in the ordering than other.
func (l UnitLevel) Above(other UnitLevel) bool {
	return l > other
}

// ParseUnitLevel converts a stored level name back to its UnitLevel.
func ParseUnitLevel(name string) (UnitLevel, bool) {
	for l, n := range levelNames {
		if n == name {
			return l, true
		}
	}
	return 0, false
}

// Role is a user's duty position. Roles form a total authority order used for
// leader resolution; Commander outranks everything, Soldier nothing.
type Role string

const (
	RoleCommander       Role = "commander"
	RoleXO              Role = "xo"
	RoleFirstSergeant   Role = "first_sergeant"
	RolePlatoonLeader   Role = "platoon_leader"
	RolePlatoonSergeant Role = "platoon_sergeant"
	RoleSquadLeader     Role = "squad_leader"
	RoleTeamLeader      Role = "team_leader"
	RoleSoldier         Role = "soldier"
)

var roleAuthority = map[Role]int{
	RoleCommander:       8,
	RoleXO:              7,
	RoleFirstSergeant:   6,
	RolePlatoonLeader:   5,
	RolePlatoonSergeant: 4,
	RoleSquadLeader:     3,
	RoleTeamLeader:      2,
	RoleSoldier:         1,
}

// Authority returns the role's position in the authority ordering.
// Unknown roles rank below Soldier so they can never win leader resolution.
func (r Role) Authority() int {
	return roleAuthority[r]
}

// Leadership reports whether the role carries command or leadership duties.
func (r Role) Leadership() bool {
	return roleAuthority[r] > roleAuthority[RoleSoldier]
}

// leadershipVocabulary lists the leadership roles valid at each unit level.
// An assignment's leadership role must come from the vocabulary of the unit it
// is attached to: there is no "squad leader" of a company.
var leadershipVocabulary = map[UnitLevel][]Role{
	LevelDivision:  {RoleCommander, RoleXO},
	LevelBrigade:   {RoleCommander, RoleXO},
	LevelBattalion: {RoleCommander, RoleXO},
	LevelCompany:   {RoleCommander, RoleXO, RoleFirstSergeant},
	LevelPlatoon:   {RolePlatoonLeader, RolePlatoonSergeant},
	LevelSection:   {RoleSquadLeader},
	LevelSquad:     {RoleSquadLeader},
	LevelTeam:      {RoleTeamLeader},
}

// ValidLeadershipRole reports whether role belongs to the leadership
// vocabulary of the given unit level.
func ValidLeadershipRole(level UnitLevel, role Role) bool {
	for _, r := range leadershipVocabulary[level] {
		if r == role {
			return true
		}
	}
	return false
}

// LeadershipRolesFor returns the leadership vocabulary for a unit level.
func LeadershipRolesFor(level UnitLevel) []Role {
	vocab := leadershipVocabulary[level]
	out := make([]Role, len(vocab))
	copy(out, vocab)
	return out
}
