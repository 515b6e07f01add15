package hierarchy

// Actor is the acting user's identity as supplied by the auth boundary.
// Every evaluator call takes an Actor explicitly; there is no ambient
// session state.
type Actor struct {
	ID     uint
	Role   Role
	UnitID uint // primary unit; 0 when unassigned
	Admin  bool
}

// CanAccessUnit reports whether the actor may read records scoped to the
// unit. Unknown ids and traversal faults deny rather than error: an
// authorization predicate fails closed. Callers that need to distinguish
// "not found" from "forbidden" consult the tree directly.
func (ix *Index) CanAccessUnit(actor Actor, unitID uint) bool {
	units, err := ix.AccessibleUnits(actor)
	if err != nil {
		return false
	}
	_, ok := units[unitID]
	return ok
}

// CanAccessUser reports whether the actor may see the target user's records.
func (ix *Index) CanAccessUser(actor Actor, targetUserID uint) bool {
	if actor.ID != 0 && actor.ID == targetUserID {
		return true
	}
	units, err := ix.AccessibleUnits(actor)
	if err != nil {
		return false
	}
	target, ok := ix.members[targetUserID]
	if !ok {
		return false
	}
	if _, ok := units[target.UnitID]; ok {
		return true
	}
	for _, a := range ix.assignmentsByUser[targetUserID] {
		if _, ok := units[a.UnitID]; ok {
			return true
		}
	}
	return false
}

// FilterAccessible keeps only the records whose associated unit the actor can
// access. unitIDOf extracts the owning unit from a record; events, AARs and
// any other unit-scoped collection filter through here.
func FilterAccessible[T any](ix *Index, actor Actor, records []T, unitIDOf func(T) uint) []T {
	units, err := ix.AccessibleUnits(actor)
	if err != nil {
		return nil
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if _, ok := units[unitIDOf(rec)]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// CanManageUnit is the stricter predicate for structural operations: the
// actor must hold a leadership position in the unit itself or in one of its
// ancestors. Plain subtree membership grants read access only.
func (ix *Index) CanManageUnit(actor Actor, unitID uint) bool {
	if actor.Admin {
		return true
	}
	if actor.ID == 0 {
		return false
	}

	chain, err := ix.tree.AncestorChain(unitID)
	if err != nil {
		return false
	}
	ancestors := make(map[uint]bool, len(chain))
	for _, u := range chain {
		ancestors[u.ID] = true
	}

	if actor.UnitID != 0 && actor.Role.Leadership() && ancestors[actor.UnitID] {
		return true
	}
	for _, a := range ix.assignmentsByUser[actor.ID] {
		if a.LeadershipRole != "" && ancestors[a.UnitID] {
			return true
		}
	}
	return false
}
