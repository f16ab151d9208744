package tasks

import "fmt"

const archivedPrefix = "archived_"

// Restore replaces the active forest with tasks reconstructed from a
// document. Ids, levels and parent links are re-derived by position;
// anything nested deeper than MaxDepth is lifted to the deepest allowed
// level so the depth invariant holds.
func (t *Tree) Restore(roots []*Task) {
	t.roots = nil
	t.nextRoot = 0
	for _, r := range roots {
		if r == nil {
			continue
		}
		kids := r.Subtasks
		r.ID = rootID(t.nextRoot)
		t.nextRoot++
		t.settle(r, nil, kids)
		t.roots = append(t.roots, r)
	}
}

// RestoreArchived replaces the archive collection. Archived tasks keep
// their subtrees but are never searchable.
func (t *Tree) RestoreArchived(archived []*Task) {
	t.archived = nil
	t.nextArchived = 0
	for _, a := range archived {
		if a == nil {
			continue
		}
		kids := a.Subtasks
		a.ID = fmt.Sprintf("%s%d", archivedPrefix, t.nextArchived)
		t.nextArchived++
		t.settle(a, nil, kids)
		a.Status = StatusArchived
		t.archived = append(t.archived, a)
	}
}

// settle fixes up a node whose id is already assigned: level, parent
// link, status consistency, then its children.
func (t *Tree) settle(task, parent *Task, kids []*Task) {
	task.ParentID = ""
	task.Level = 0
	if parent != nil {
		task.ParentID = parent.ID
		task.Level = parent.Level + 1
	}
	if (parent != nil && parent.Completed) || task.Status == StatusCompleted {
		task.Completed = true
	}
	switch {
	case task.Status == StatusArchived:
	case task.Completed:
		task.Status = StatusCompleted
	default:
		task.Status = StatusActive
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}

	task.Subtasks = nil
	task.nextChild = 0
	for _, k := range kids {
		t.attach(task, k)
	}
}

// attach links k under parent. If k sits at MaxDepth its own children
// cannot stay below it, so they become its following siblings.
func (t *Tree) attach(parent, k *Task) {
	if k == nil {
		return
	}
	kids := k.Subtasks
	k.ID = childID(parent.ID, parent.nextChild)
	parent.nextChild++
	parent.Subtasks = append(parent.Subtasks, k)

	if parent.Level+1 < t.cfg.MaxDepth {
		t.settle(k, parent, kids)
		return
	}
	t.settle(k, parent, nil)
	for _, g := range kids {
		t.attach(parent, g)
	}
}
