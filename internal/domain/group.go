package domain

import (
	"fmt"
	"strings"
)

// GroupType is the top-level chart-of-accounts category a group belongs to.
// A group's type is fixed at creation and assumed to match its root
// ancestor's type; rollup trusts the data rather than re-validating it.
type GroupType string

const (
	GroupAssets    GroupType = "assets"
	GroupLiability GroupType = "liability"
	GroupIncome    GroupType = "income"
	GroupExpenses  GroupType = "expenses"
)

// Valid reports whether t is a known group type.
func (t GroupType) Valid() bool {
	switch t {
	case GroupAssets, GroupLiability, GroupIncome, GroupExpenses:
		return true
	}
	return false
}

// Group is one node of the chart-of-accounts hierarchy. ParentID is nil for
// roots. The hierarchy forms a forest: multiple roots per type.
type Group struct {
	ID       string
	Name     string
	Type     GroupType
	ParentID *string
}

// GroupNode is a group with its resolved children, produced by
// BuildGroupForest.
type GroupNode struct {
	Group
	Children []*GroupNode
}

// BuildGroupForest assembles flat groups into a forest keyed by parent
// reference. A group whose parent is absent or points outside the input set
// becomes a root. Construction is O(n) and does not chase cycles: a group
// whose parent is present is attached under it regardless, so cycle members
// end up attached to each other and reachable from no root. Use
// ValidateGroupForest to surface them.
func BuildGroupForest(groups []*Group) []*GroupNode {
	nodes := make(map[string]*GroupNode, len(groups))
	for _, g := range groups {
		nodes[g.ID] = &GroupNode{Group: *g}
	}

	var roots []*GroupNode
	for _, g := range groups {
		node := nodes[g.ID]
		if g.ParentID == nil || strings.TrimSpace(*g.ParentID) == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*g.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

// ValidateGroupForest checks that every group is reachable from a root, which
// is equivalent to the hierarchy being acyclic. Returns ErrGroupCycle naming
// the unreachable groups.
func ValidateGroupForest(groups []*Group) error {
	roots := BuildGroupForest(groups)

	reachable := make(map[string]bool, len(groups))
	var walk func(n *GroupNode)
	walk = func(n *GroupNode) {
		if reachable[n.ID] {
			return
		}
		reachable[n.ID] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}

	var orphans []string
	for _, g := range groups {
		if !reachable[g.ID] {
			orphans = append(orphans, g.ID)
		}
	}
	if len(orphans) > 0 {
		return fmt.Errorf("%w: unreachable groups %v", ErrGroupCycle, orphans)
	}

	return nil
}

// FilterGroupsByType returns the groups of one type, preserving input order.
func FilterGroupsByType(groups []*Group, t GroupType) []*Group {
	var out []*Group
	for _, g := range groups {
		if g.Type == t {
			out = append(out, g)
		}
	}
	return out
}
