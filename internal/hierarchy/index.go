package hierarchy

import (
	"errors"
	"fmt"
	"sort"
)

// AssignmentType distinguishes a user's kinds of unit affiliation.
type AssignmentType string

const (
	AssignmentPrimary    AssignmentType = "primary"
	AssignmentAttached   AssignmentType = "attached"
	AssignmentTemporary  AssignmentType = "temporary"
	AssignmentDualHatted AssignmentType = "dual_hatted"
)

// Valid reports whether t is a known assignment type.
func (t AssignmentType) Valid() bool {
	switch t {
	case AssignmentPrimary, AssignmentAttached, AssignmentTemporary, AssignmentDualHatted:
		return true
	}
	return false
}

// Assignment is a user's affiliation to a unit. Ended assignments are kept
// for history but carry no access or invariant weight.
type Assignment struct {
	ID             uint
	UserID         uint
	UnitID         uint
	Type           AssignmentType
	LeadershipRole Role // empty when the assignment carries no leadership duty
	UnitLevel      UnitLevel
	Ended          bool
}

// Member is the slice of a user the hierarchy cares about: identity, duty
// role and primary unit.
type Member struct {
	ID     uint
	Name   string
	Role   Role
	UnitID uint // primary unit; 0 when unassigned
}

// Index is a per-request snapshot joining the unit tree with the user
// directory and active assignments. All queries are pure reads against the
// snapshot; concurrent mutations land in the next snapshot, never this one.
type Index struct {
	tree              *Tree
	members           map[uint]*Member
	byUnit            map[uint][]uint
	assignmentsByUser map[uint][]Assignment
	byAssignedUnit    map[uint][]uint
}

// NewIndex builds an Index from a tree snapshot, the user directory and the
// user's assignment records. Ended assignments are ignored.
func NewIndex(tree *Tree, members []Member, assignments []Assignment) *Index {
	ix := &Index{
		tree:              tree,
		members:           make(map[uint]*Member, len(members)),
		byUnit:            make(map[uint][]uint),
		assignmentsByUser: make(map[uint][]Assignment),
		byAssignedUnit:    make(map[uint][]uint),
	}
	for i := range members {
		m := members[i]
		ix.members[m.ID] = &m
		if m.UnitID != 0 {
			ix.byUnit[m.UnitID] = append(ix.byUnit[m.UnitID], m.ID)
		}
	}
	for _, a := range assignments {
		if a.Ended {
			continue
		}
		ix.assignmentsByUser[a.UserID] = append(ix.assignmentsByUser[a.UserID], a)
		ix.byAssignedUnit[a.UnitID] = append(ix.byAssignedUnit[a.UnitID], a.UserID)
	}
	for id := range ix.byUnit {
		sort.Slice(ix.byUnit[id], func(i, j int) bool { return ix.byUnit[id][i] < ix.byUnit[id][j] })
	}
	return ix
}

// Tree returns the unit tree snapshot backing this index.
func (ix *Index) Tree() *Tree {
	return ix.tree
}

// User returns the member with the given id.
func (ix *Index) User(id uint) (*Member, error) {
	m, ok := ix.members[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return m, nil
}

// Assignments returns the user's active assignments in the snapshot.
func (ix *Index) Assignments(userID uint) []Assignment {
	return ix.assignmentsByUser[userID]
}

// AccessibleUnits computes the set of units the actor may see: the actor's
// primary unit plus its full descendant subtree. Admin standing widens this
// to every unit; an explicit, auditable branch, never a fallthrough. An
// unauthenticated or unit-less actor gets the empty set: authorization fails
// closed, it never defaults to "all units".
func (ix *Index) AccessibleUnits(actor Actor) (map[uint]*Unit, error) {
	out := make(map[uint]*Unit)

	if actor.Admin {
		for id, u := range ix.tree.units {
			out[id] = u
		}
		return out, nil
	}
	if actor.ID == 0 || actor.UnitID == 0 {
		return out, nil
	}

	subtree, err := ix.tree.Subtree(actor.UnitID)
	if err != nil {
		if errors.Is(err, ErrUnitNotFound) {
			// Primary unit tombstoned out from under the user: no access.
			return out, nil
		}
		return nil, err
	}
	for _, u := range subtree {
		out[u.ID] = u
	}
	return out, nil
}

// AccessibleUsers returns every user whose primary unit or active assignment
// unit lies in accessibleUnits, plus the actor themself. Results are ordered
// by user id.
func (ix *Index) AccessibleUsers(actor Actor, accessibleUnits map[uint]*Unit) []*Member {
	seen := make(map[uint]bool)
	var out []*Member

	add := func(id uint) {
		if seen[id] {
			return
		}
		if m, ok := ix.members[id]; ok {
			seen[id] = true
			out = append(out, m)
		}
	}

	for unitID := range accessibleUnits {
		for _, uid := range ix.byUnit[unitID] {
			add(uid)
		}
		for _, uid := range ix.byAssignedUnit[unitID] {
			add(uid)
		}
	}
	add(actor.ID)

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SubordinateUnits returns the direct children of a unit only. UI expansion
// uses this; it is not the accessible subtree.
func (ix *Index) SubordinateUnits(unitID uint) ([]*Unit, error) {
	return ix.tree.Children(unitID)
}

// UsersInUnit returns the members whose primary unit is unitID, ordered by id.
func (ix *Index) UsersInUnit(unitID uint) []*Member {
	ids := ix.byUnit[unitID]
	out := make([]*Member, 0, len(ids))
	for _, id := range ids {
		out = append(out, ix.members[id])
	}
	return out
}

// UnitLeader resolves the unit's leader: the member whose role ranks highest
// in the authority ordering, ties broken by lowest user id so the result is
// deterministic. The second return is false when the unit has no members;
// callers must handle the no-leader case rather than receive an arbitrary
// member.
func (ix *Index) UnitLeader(unitID uint) (*Member, bool) {
	var leader *Member
	for _, id := range ix.byUnit[unitID] {
		m := ix.members[id]
		if leader == nil {
			leader = m
			continue
		}
		if m.Role.Authority() > leader.Role.Authority() {
			leader = m
		}
		// Equal authority: byUnit is id-ordered, so the earlier member stands.
	}
	if leader == nil {
		return nil, false
	}
	return leader, true
}
