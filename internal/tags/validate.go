package tags

import (
	"fmt"
	"sort"
)

// IssueKind classifies a data-integrity finding in a tag set.
type IssueKind string

const (
	IssueOrphan        IssueKind = "orphan"
	IssueSelfParent    IssueKind = "self-parent"
	IssueCycle         IssueKind = "cycle"
	IssueDuplicateName IssueKind = "duplicate-name"
)

// Issue is a non-fatal finding. Orphans and self-parented tags are still shown as
// roots; cycle members are not reachable from any root.
type Issue struct {
	Kind   IssueKind
	ID     int64
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: tag %d: %s", i.Kind, i.ID, i.Detail)
}

// Validate reports orphans, self-parented tags, loops and name collisions.
func (f *Forest) Validate() []Issue {
	if f == nil {
		return nil
	}

	var issues []Issue
	for _, id := range f.order {
		node := f.nodes[id]
		if node.ParentID == nil {
			continue
		}
		if *node.ParentID == id {
			issues = append(issues, Issue{Kind: IssueSelfParent, ID: id, Detail: "parent is itself"})
			continue
		}
		if _, ok := f.nodes[*node.ParentID]; !ok {
			issues = append(issues, Issue{
				Kind:   IssueOrphan,
				ID:     id,
				Detail: fmt.Sprintf("parent %d does not exist", *node.ParentID),
			})
		}
	}

	for _, id := range f.Unreachable() {
		issues = append(issues, Issue{Kind: IssueCycle, ID: id, Detail: "parent chain never reaches a root"})
	}

	for name, ids := range f.DuplicateNames() {
		for _, id := range ids[1:] {
			issues = append(issues, Issue{
				Kind:   IssueDuplicateName,
				ID:     id,
				Detail: fmt.Sprintf("name %q also used by tag %d", name, ids[0]),
			})
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		return issues[i].ID < issues[j].ID
	})
	return issues
}

// DuplicateNames maps each name carried by more than one tag to those ids in
// first-seen order.
func (f *Forest) DuplicateNames() map[string][]int64 {
	if f == nil {
		return nil
	}
	byName := make(map[string][]int64)
	for _, id := range f.order {
		name := f.nodes[id].Name
		byName[name] = append(byName[name], id)
	}
	for name, ids := range byName {
		if len(ids) < 2 {
			delete(byName, name)
		}
	}
	return byName
}
