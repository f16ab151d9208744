package tasks

import (
	"fmt"
	"time"
)

// DefaultMaxDepth allows levels 0..3, i.e. three nested levels below a root.
const DefaultMaxDepth = 3

// Config controls the shape rules of a Tree.
type Config struct {
	// MaxDepth is the deepest level a task may live at.
	MaxDepth int
	// ArchiveNested lets completed subtasks be archived on their own.
	// When false only root tasks are archivable.
	ArchiveNested bool
}

// DefaultConfig returns the reference rules: depth 3, root-only archival.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Tree owns the active forest and the archive collection.
// It is not safe for concurrent use; callers serialize access.
type Tree struct {
	cfg      Config
	roots    []*Task
	archived []*Task

	// nextRoot only grows, so archived root ids are never handed out again.
	nextRoot     int
	nextArchived int
}

// New creates an empty tree. A MaxDepth below 1 means DefaultMaxDepth.
func New(cfg Config) *Tree {
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Tree{cfg: cfg}
}

// Config returns the rules the tree was created with.
func (t *Tree) Config() Config {
	return t.cfg
}

// Roots returns the active top-level tasks in creation order.
func (t *Tree) Roots() []*Task {
	return t.roots
}

// Archived returns the archive collection in archival order.
func (t *Tree) Archived() []*Task {
	return t.archived
}

// Len returns the number of active tasks at every level.
func (t *Tree) Len() int {
	n := 0
	t.walk(func(*Task, []*Task) bool {
		n++
		return false
	})
	return n
}

// --- Traversal ---

// walk visits the active forest depth-first, parents before children.
// ancestors is root-first and ends with the direct parent. Returning
// true from fn stops the walk.
func (t *Tree) walk(fn func(task *Task, ancestors []*Task) bool) {
	var visit func(task *Task, ancestors []*Task) bool
	visit = func(task *Task, ancestors []*Task) bool {
		if fn(task, ancestors) {
			return true
		}
		chain := append(ancestors[:len(ancestors):len(ancestors)], task)
		for _, st := range task.Subtasks {
			if visit(st, chain) {
				return true
			}
		}
		return false
	}
	for _, root := range t.roots {
		if visit(root, nil) {
			return
		}
	}
}

// locate finds a task and its ancestor chain (root-first).
// Returns a nil task when the id is not in the active forest.
func (t *Tree) locate(id string) (*Task, []*Task) {
	var found *Task
	var chain []*Task
	if id == "" {
		return nil, nil
	}
	t.walk(func(task *Task, ancestors []*Task) bool {
		if task.ID == id {
			found = task
			chain = ancestors
			return true
		}
		return false
	})
	return found, chain
}

// Find returns the active task with the given id, or nil.
func (t *Tree) Find(id string) *Task {
	task, _ := t.locate(id)
	return task
}

// Ancestors returns the ancestor chain of a task (root-first), or nil
// when the task is a root or unknown.
func (t *Tree) Ancestors(id string) []*Task {
	_, chain := t.locate(id)
	return chain
}

// Flatten returns every active task with Level <= maxLevel in
// depth-first order.
func (t *Tree) Flatten(maxLevel int) []*Task {
	var out []*Task
	t.walk(func(task *Task, _ []*Task) bool {
		if task.Level <= maxLevel {
			out = append(out, task)
		}
		return false
	})
	return out
}

// --- Mutations ---

// CreateRoot appends a new active top-level task and returns its id.
func (t *Tree) CreateRoot(title, description string) (string, error) {
	title = singleLine(title)
	if title == "" {
		return "", ErrEmptyTitle
	}

	now := stamp()
	task := &Task{
		ID:          rootID(t.nextRoot),
		Level:       0,
		Title:       title,
		Description: singleLine(description),
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.nextRoot++
	t.roots = append(t.roots, task)
	return task.ID, nil
}

// CreateChild appends a subtask under parentID and touches every
// ancestor's UpdatedAt. A completed parent and any completed ancestors
// are reopened, since the new subtask starts active.
func (t *Tree) CreateChild(parentID, title string) (string, error) {
	title = singleLine(title)
	if title == "" {
		return "", ErrEmptyContent
	}

	parent, ancestors := t.locate(parentID)
	if parent == nil {
		return "", fmt.Errorf("%w: %q", ErrParentNotFound, parentID)
	}
	if parent.Level >= t.cfg.MaxDepth {
		return "", fmt.Errorf("%w: %q is at level %d", ErrMaxDepthExceeded, parentID, parent.Level)
	}

	now := stamp()
	child := &Task{
		ID:        childID(parent.ID, parent.nextChild),
		ParentID:  parent.ID,
		Level:     parent.Level + 1,
		Title:     title,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	parent.nextChild++
	parent.Subtasks = append(parent.Subtasks, child)

	reopen(parent, now)
	for _, a := range ancestors {
		reopen(a, now)
	}
	return child.ID, nil
}

// Complete marks a task and all of its descendants completed, then
// promotes each ancestor whose direct children are now all completed.
// The rollup reports the direct parent's resulting percentage.
func (t *Tree) Complete(id string) (Rollup, error) {
	task, ancestors := t.locate(id)
	if task == nil {
		return Rollup{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	now := stamp()
	markCompleted(task, now)

	rollup := Rollup{Percent: 100}
	promoting := true
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		parent.UpdatedAt = now

		pct := Percentage(parent.CompletedChildren(), len(parent.Subtasks))
		if i == len(ancestors)-1 {
			rollup = Rollup{ParentID: parent.ID, Percent: pct}
		}
		if !promoting {
			continue
		}
		if pct < 100 {
			promoting = false
			continue
		}
		parent.Completed = true
		parent.Status = StatusCompleted
	}
	return rollup, nil
}

func reopen(task *Task, now time.Time) {
	task.Completed = false
	task.Status = StatusActive
	task.UpdatedAt = now
}

// promote walks ancestors from the direct parent upward, marking each
// one completed while all of its direct children are completed.
func promote(ancestors []*Task, now time.Time) {
	for i := len(ancestors) - 1; i >= 0; i-- {
		parent := ancestors[i]
		if len(parent.Subtasks) == 0 || parent.CompletedChildren() < len(parent.Subtasks) {
			return
		}
		parent.Completed = true
		parent.Status = StatusCompleted
		parent.UpdatedAt = now
	}
}

func markCompleted(task *Task, now time.Time) {
	task.Completed = true
	task.Status = StatusCompleted
	task.UpdatedAt = now
	for _, st := range task.Subtasks {
		markCompleted(st, now)
	}
}

// Archive moves a completed task and its subtree from the active forest
// to the archive collection. Only roots qualify unless ArchiveNested;
// archiving a nested task re-runs completion promotion over its
// ancestors, since the remaining siblings may all be completed.
func (t *Tree) Archive(id string) (*Task, error) {
	task, ancestors := t.locate(id)
	if task == nil || (!task.IsRoot() && !t.cfg.ArchiveNested) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if task.Status != StatusCompleted {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotCompleted, id, task.Status)
	}

	now := stamp()
	if task.IsRoot() {
		t.roots = without(t.roots, task)
	} else {
		parent := ancestors[len(ancestors)-1]
		parent.Subtasks = without(parent.Subtasks, task)
		for _, a := range ancestors {
			a.UpdatedAt = now
		}
		promote(ancestors, now)
	}

	task.Status = StatusArchived
	task.ArchivedAt = now
	task.UpdatedAt = now
	t.archived = append(t.archived, task)
	return task, nil
}

// CompletionRatio returns 0..100 for a task: 100/0 for a leaf by its
// own flag, otherwise the share of completed direct children.
func (t *Tree) CompletionRatio(id string) (int, bool) {
	task := t.Find(id)
	if task == nil {
		return 0, false
	}
	return Ratio(task), true
}

// Ratio is CompletionRatio for a task value already in hand.
func Ratio(task *Task) int {
	if len(task.Subtasks) == 0 {
		if task.Completed {
			return 100
		}
		return 0
	}
	return Percentage(task.CompletedChildren(), len(task.Subtasks))
}

func without(list []*Task, target *Task) []*Task {
	out := list[:0:0]
	for _, item := range list {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}
