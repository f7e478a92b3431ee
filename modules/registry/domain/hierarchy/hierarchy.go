// Package hierarchy validates and orders the corporate entity tree.
//
// Every operation works on a snapshot of the entity set supplied by the
// caller. Nothing is cached between calls and nothing is persisted here;
// persistence stays with the caller and happens only after validation
// succeeds.
package hierarchy

import (
	"sort"
	"strings"

	"github.com/alphaholdings/entity-registry/modules/registry/domain/aggregates/entity"
)

// Row is one node of the hierarchy in pre-order position.
type Row struct {
	Entity entity.Entity
	// Depth is the nesting level. Roots sit at depth 0.
	Depth int
	// Last carries one flag per level from the root generation down to this
	// row: Last[i] reports whether the ancestor at depth i (the row itself
	// at i == Depth) is the final sibling of its generation. Renderers read
	// it to decide which vertical connectors continue past this row.
	Last []bool
}

// ValidateInsert checks a candidate entity against the current snapshot.
// It returns a *Error describing the first failed check, or nil when the
// candidate may be persisted.
func ValidateInsert(candidate entity.Entity, existing []entity.Entity) error {
	if !entity.ValidABN(candidate.ABN()) {
		return &Error{Kind: ErrorKindInvalidIdentifier, Field: "abn", ABN: candidate.ABN()}
	}
	if strings.TrimSpace(candidate.Name()) == "" {
		return &Error{Kind: ErrorKindMissingName, Field: "entity_name", ABN: candidate.ABN()}
	}
	byABN := make(map[string]int, len(existing))
	for i, e := range existing {
		byABN[e.ABN()] = i
	}
	if _, ok := byABN[candidate.ABN()]; ok {
		return &Error{Kind: ErrorKindDuplicateIdentifier, Field: "abn", ABN: candidate.ABN()}
	}
	if candidate.IsRoot() {
		return nil
	}
	if _, ok := byABN[candidate.ParentABN()]; !ok {
		return &Error{Kind: ErrorKindUnknownParent, Field: "parent_abn", ABN: candidate.ParentABN()}
	}
	// Walk the parent chain upward. Meeting the candidate again means the
	// new edge would close a loop; meeting any other repeat means the
	// snapshot already carries one.
	seen := map[string]struct{}{candidate.ABN(): {}}
	cur := candidate.ParentABN()
	for cur != "" {
		if _, ok := seen[cur]; ok {
			return &Error{Kind: ErrorKindCycleDetected, Field: "parent_abn", ABN: cur}
		}
		seen[cur] = struct{}{}
		i, ok := byABN[cur]
		if !ok {
			break
		}
		cur = existing[i].ParentABN()
	}
	return nil
}

// ValidateDelete rejects deletion while other entities still point at the
// identifier as their parent.
func ValidateDelete(abn string, existing []entity.Entity) error {
	if CountChildren(abn, existing) > 0 {
		return &Error{Kind: ErrorKindHasChildren, Field: "parent_abn", ABN: abn}
	}
	return nil
}

// CountChildren returns the number of direct children of abn, not the
// transitive descendant count.
func CountChildren(abn string, existing []entity.Entity) int {
	if abn == "" {
		return 0
	}
	n := 0
	for _, e := range existing {
		if e.ParentABN() == abn {
			n++
		}
	}
	return n
}

// BuildTree orders the entities that pass keep into pre-order rows, roots
// first, siblings by display name with the identifier as tie-break. A nil
// keep admits every entity. Entities whose parent was filtered out stay
// hidden together with their subtree; entities sitting on a cycle make the
// whole call fail with ErrorKindCycleDetected.
func BuildTree(existing []entity.Entity, keep func(entity.Entity) bool) ([]Row, error) {
	idx := newIndex(existing, keep)

	rows := make([]Row, 0, len(idx.nodes))
	visited := make(map[string]struct{}, len(idx.nodes))

	type frame struct {
		node  int
		depth int
		trail []bool
	}

	// Push in reverse so the stack pops siblings in sorted order.
	stack := make([]frame, 0, len(idx.roots))
	for i := len(idx.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{
			node:  idx.roots[i],
			depth: 0,
			trail: []bool{i == len(idx.roots)-1},
		})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e := idx.nodes[f.node]
		if _, ok := visited[e.ABN()]; ok {
			return nil, &Error{Kind: ErrorKindCycleDetected, Field: "parent_abn", ABN: e.ABN()}
		}
		visited[e.ABN()] = struct{}{}
		rows = append(rows, Row{Entity: e, Depth: f.depth, Last: f.trail})

		kids := idx.children[e.ABN()]
		for i := len(kids) - 1; i >= 0; i-- {
			trail := make([]bool, len(f.trail)+1)
			copy(trail, f.trail)
			trail[len(f.trail)] = i == len(kids)-1
			stack = append(stack, frame{node: kids[i], depth: f.depth + 1, trail: trail})
		}
	}

	if len(visited) == len(idx.nodes) {
		return rows, nil
	}

	// Anything never reached from a root either hangs below a parent the
	// filter removed, which keeps the subtree hidden, or sits on a cycle.
	for _, e := range idx.nodes {
		if _, ok := visited[e.ABN()]; ok {
			continue
		}
		onChain := make(map[string]struct{})
		cur := e
		for {
			if _, ok := onChain[cur.ABN()]; ok {
				return nil, &Error{Kind: ErrorKindCycleDetected, Field: "parent_abn", ABN: cur.ABN()}
			}
			onChain[cur.ABN()] = struct{}{}
			pi, ok := idx.byABN[cur.ParentABN()]
			if !ok {
				break
			}
			cur = idx.nodes[pi]
		}
	}
	return rows, nil
}

// index is the flat arena a single BuildTree call traverses: entities in
// one slice, lookups and child lists by position.
type index struct {
	nodes    []entity.Entity
	byABN    map[string]int
	children map[string][]int
	roots    []int
}

func newIndex(entities []entity.Entity, keep func(entity.Entity) bool) *index {
	idx := &index{
		byABN:    make(map[string]int, len(entities)),
		children: make(map[string][]int, len(entities)),
	}
	for _, e := range entities {
		if keep != nil && !keep(e) {
			continue
		}
		// The store keys entities by identifier; keep the first if a
		// duplicate ever slips through.
		if _, ok := idx.byABN[e.ABN()]; ok {
			continue
		}
		idx.nodes = append(idx.nodes, e)
		idx.byABN[e.ABN()] = len(idx.nodes) - 1
	}
	for i, e := range idx.nodes {
		if e.IsRoot() {
			idx.roots = append(idx.roots, i)
			continue
		}
		idx.children[e.ParentABN()] = append(idx.children[e.ParentABN()], i)
	}
	idx.sortSiblings(idx.roots)
	for parent := range idx.children {
		idx.sortSiblings(idx.children[parent])
	}
	return idx
}

// sortSiblings orders by display name, identifier as the tie-break, so an
// unchanged snapshot always renders in the same order.
func (idx *index) sortSiblings(ids []int) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := idx.nodes[ids[i]], idx.nodes[ids[j]]
		if a.Name() != b.Name() {
			return a.Name() < b.Name()
		}
		return a.ABN() < b.ABN()
	})
}
