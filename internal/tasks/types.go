// Package tasks holds the canonical in-memory roadmap: a depth-bounded
// forest of tasks with completion rollup and archival.
//
// All mutations go through Tree so the hierarchy invariants hold:
//   - a child's level is its parent's level + 1, roots are level 0
//   - no task at MaxDepth may take a child
//   - a completed task has only completed descendants
//   - only completed tasks are archived
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// --- Status enum ---

// Status tracks where a task is in its lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// TimestampLayout is the minute-resolution local time format used in
// documents and responses.
const TimestampLayout = "2006-01-02 15:04"

// --- Rejections ---

var (
	ErrEmptyTitle       = errors.New("task title must not be empty")
	ErrEmptyContent     = errors.New("subtask content must not be empty")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrNotFound         = errors.New("task not found")
	ErrMaxDepthExceeded = errors.New("maximum nesting depth reached")
	ErrNotCompleted     = errors.New("task is not completed")
)

// --- Core data structures ---

// Task is a node of the roadmap. Subtasks are owned exclusively by
// their parent and kept in insertion order.
type Task struct {
	ID          string
	ParentID    string
	Level       int
	Title       string
	Description string
	Status      Status
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ArchivedAt  time.Time
	Subtasks    []*Task

	// nextChild is the ordinal handed to the next appended subtask.
	// It only grows, so ids are never reused.
	nextChild int
}

// IsRoot reports whether the task has no parent.
func (t *Task) IsRoot() bool {
	return t.ParentID == ""
}

// IsArchived reports whether the task has been moved to the archive.
func (t *Task) IsArchived() bool {
	return t.Status == StatusArchived
}

// CompletedChildren returns how many direct subtasks are completed.
func (t *Task) CompletedChildren() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}

// Rollup describes the effect of a completion on the task's parent.
type Rollup struct {
	// ParentID is empty when the completed task is a root.
	ParentID string
	// Percent is the parent's completion percentage after the change
	// (100 for roots).
	Percent int
}

// Done reports whether the rollup reached full completion.
func (r Rollup) Done() bool {
	return r.Percent >= 100
}

// String renders the rollup the way responses show it: "completed"
// for full completion, otherwise the parent's percentage.
func (r Rollup) String() string {
	if r.Done() {
		return string(StatusCompleted)
	}
	return fmt.Sprintf("%d%%", r.Percent)
}

// Percentage is the completion formula shared by the tree and the
// status views: floor(done/total*100), and 100 for an empty set.
func Percentage(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}

// --- ID derivation ---

const rootPrefix = "task_"

func rootID(n int) string {
	return fmt.Sprintf("%s%d", rootPrefix, n)
}

func childID(parentID string, n int) string {
	return fmt.Sprintf("%s.%d", parentID, n)
}

// singleLine collapses any whitespace run (including newlines) into one
// space so titles and descriptions stay on one line.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
