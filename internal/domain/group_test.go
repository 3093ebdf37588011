package domain

import (
	"errors"
	"testing"
)

func strptr(s string) *string { return &s }

func TestBuildGroupForest(t *testing.T) {
	groups := []*Group{
		{ID: "assets", Name: "Assets", Type: GroupAssets},
		{ID: "current", Name: "Current Assets", Type: GroupAssets, ParentID: strptr("assets")},
		{ID: "bank", Name: "Bank Accounts", Type: GroupAssets, ParentID: strptr("current")},
		{ID: "liab", Name: "Liabilities", Type: GroupLiability},
	}

	roots := BuildGroupForest(groups)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	byID := map[string]*GroupNode{}
	var index func(n *GroupNode)
	index = func(n *GroupNode) {
		byID[n.ID] = n
		for _, c := range n.Children {
			index(c)
		}
	}
	for _, r := range roots {
		index(r)
	}

	if len(byID["assets"].Children) != 1 || byID["assets"].Children[0].ID != "current" {
		t.Fatalf("current should hang under assets")
	}
	if len(byID["current"].Children) != 1 || byID["current"].Children[0].ID != "bank" {
		t.Fatalf("bank should hang under current")
	}
	if len(byID["liab"].Children) != 0 {
		t.Fatalf("liab should be a leaf root")
	}
}

func TestBuildGroupForest_MissingParentBecomesRoot(t *testing.T) {
	groups := []*Group{
		{ID: "orphan", Name: "Orphan", Type: GroupAssets, ParentID: strptr("gone")},
		{ID: "blank", Name: "Blank parent", Type: GroupAssets, ParentID: strptr("  ")},
	}

	roots := BuildGroupForest(groups)
	if len(roots) != 2 {
		t.Fatalf("expected both groups to become roots, got %d", len(roots))
	}
}

func TestValidateGroupForest(t *testing.T) {
	ok := []*Group{
		{ID: "a", Type: GroupAssets},
		{ID: "b", Type: GroupAssets, ParentID: strptr("a")},
	}
	if err := ValidateGroupForest(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cyclic := []*Group{
		{ID: "x", Type: GroupAssets, ParentID: strptr("y")},
		{ID: "y", Type: GroupAssets, ParentID: strptr("x")},
	}
	err := ValidateGroupForest(cyclic)
	if !errors.Is(err, ErrGroupCycle) {
		t.Fatalf("expected ErrGroupCycle, got %v", err)
	}
}

func TestFilterGroupsByType(t *testing.T) {
	groups := []*Group{
		{ID: "a", Type: GroupAssets},
		{ID: "i", Type: GroupIncome},
		{ID: "b", Type: GroupAssets},
	}

	assets := FilterGroupsByType(groups, GroupAssets)
	if len(assets) != 2 || assets[0].ID != "a" || assets[1].ID != "b" {
		t.Fatalf("unexpected filter result: %+v", assets)
	}
}
