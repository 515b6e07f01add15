package hierarchy

import (
	"fmt"
	"sort"
)

// Unit is a node in the organizational tree. ParentID is nil for roots.
type Unit struct {
	ID       uint
	Name     string
	Level    UnitLevel
	ParentID *uint
}

// Tree is an immutable snapshot of all live units and their parent/child
// edges. It is built once per request from persisted rows; tombstoned units
// must be filtered out before construction.
type Tree struct {
	units    map[uint]*Unit
	children map[uint][]uint
}

// NewTree builds a Tree from a snapshot of live units.
func NewTree(units []Unit) *Tree {
	t := &Tree{
		units:    make(map[uint]*Unit, len(units)),
		children: make(map[uint][]uint),
	}
	for i := range units {
		u := units[i]
		t.units[u.ID] = &u
	}
	for id, u := range t.units {
		if u.ParentID == nil {
			continue
		}
		// Edges to dead parents are dropped; the unit behaves as a root.
		if _, ok := t.units[*u.ParentID]; !ok {
			continue
		}
		t.children[*u.ParentID] = append(t.children[*u.ParentID], id)
	}
	for pid := range t.children {
		sort.Slice(t.children[pid], func(i, j int) bool {
			return t.children[pid][i] < t.children[pid][j]
		})
	}
	return t
}

// Size returns the number of live units in the snapshot.
func (t *Tree) Size() int {
	return len(t.units)
}

// Unit returns the unit with the given id.
func (t *Tree) Unit(id uint) (*Unit, error) {
	u, ok := t.units[id]
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnitNotFound)
	}
	return u, nil
}

// Children returns the direct children of a unit, ordered by id.
func (t *Tree) Children(id uint) ([]*Unit, error) {
	if _, ok := t.units[id]; !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnitNotFound)
	}
	ids := t.children[id]
	out := make([]*Unit, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.units[cid])
	}
	return out, nil
}

// AncestorChain returns the units from id up to its root, starting with the
// unit itself. The walk is bounded by the total unit count; exceeding the
// bound means the parent graph contains a cycle and ErrCycleDetected is
// returned instead of looping forever.
func (t *Tree) AncestorChain(id uint) ([]*Unit, error) {
	u, err := t.Unit(id)
	if err != nil {
		return nil, err
	}

	chain := []*Unit{u}
	hops := 0
	for u.ParentID != nil {
		hops++
		if hops > len(t.units) {
			return nil, fmt.Errorf("unit %d: %w", id, ErrCycleDetected)
		}
		parent, ok := t.units[*u.ParentID]
		if !ok {
			// Dangling parent pointer: treat the unit as a root.
			break
		}
		chain = append(chain, parent)
		u = parent
	}
	return chain, nil
}

// Root returns the top-most ancestor of a unit.
func (t *Tree) Root(id uint) (*Unit, error) {
	chain, err := t.AncestorChain(id)
	if err != nil {
		return nil, err
	}
	return chain[len(chain)-1], nil
}

// Subtree returns the unit and every descendant reachable through child
// edges, in breadth-first order. Each unit is visited at most once, so the
// traversal terminates even against corrupted data; the mutation guard is
// what keeps such data from appearing in the first place.
func (t *Tree) Subtree(id uint) ([]*Unit, error) {
	root, err := t.Unit(id)
	if err != nil {
		return nil, err
	}

	visited := map[uint]bool{id: true}
	out := []*Unit{root}
	queue := []uint{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cid := range t.children[cur] {
			if visited[cid] {
				continue
			}
			visited[cid] = true
			out = append(out, t.units[cid])
			queue = append(queue, cid)
		}
	}
	return out, nil
}

// IsDescendant reports whether unit id lies in the subtree rooted at
// ancestorID (a unit is a descendant of itself).
func (t *Tree) IsDescendant(id, ancestorID uint) (bool, error) {
	chain, err := t.AncestorChain(id)
	if err != nil {
		return false, err
	}
	for _, u := range chain {
		if u.ID == ancestorID {
			return true, nil
		}
	}
	return false, nil
}
