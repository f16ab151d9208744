package navigator

import (
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/navigate/internal/tasks"
)

// TaskView is a detached copy of one task for display.
type TaskView struct {
	ID        string
	Title     string
	Level     int
	Completed bool
	Percent   int
	UpdatedAt time.Time
	Subtasks  []TaskView
}

// Overview is a point-in-time view of the whole roadmap.
type Overview struct {
	Roots         []TaskView
	ActiveCount   int
	DoneCount     int
	ArchivedCount int
}

// Percent is the share of top-level tasks completed.
func (o Overview) Percent() int {
	done := 0
	for _, r := range o.Roots {
		if r.Completed {
			done++
		}
	}
	if len(o.Roots) == 0 {
		return 0
	}
	return tasks.Percentage(done, len(o.Roots))
}

// Snapshot copies the current roadmap so callers can render it without
// holding the navigator's lock.
func (n *Navigator) Snapshot() Overview {
	n.mu.Lock()
	defer n.mu.Unlock()

	ov := Overview{ArchivedCount: len(n.tree.Archived())}
	for _, r := range n.tree.Roots() {
		ov.Roots = append(ov.Roots, view(r, &ov))
	}
	return ov
}

func view(t *tasks.Task, ov *Overview) TaskView {
	if t.Completed {
		ov.DoneCount++
	} else {
		ov.ActiveCount++
	}
	v := TaskView{
		ID:        t.ID,
		Title:     t.Title,
		Level:     t.Level,
		Completed: t.Completed,
		Percent:   tasks.Ratio(t),
		UpdatedAt: t.UpdatedAt,
	}
	for _, st := range t.Subtasks {
		v.Subtasks = append(v.Subtasks, view(st, ov))
	}
	return v
}

// Format renders the overview as plain text, one task per line.
func (o Overview) Format() string {
	if len(o.Roots) == 0 {
		return fmt.Sprintf("No active tasks. %d archived.\n", o.ArchivedCount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Roadmap: %d top-level tasks, %d%% complete\n", len(o.Roots), o.Percent())
	fmt.Fprintf(&b, "Tasks: %d open, %d done, %d archived\n\n", o.ActiveCount, o.DoneCount, o.ArchivedCount)
	for _, r := range o.Roots {
		formatView(&b, r)
	}
	return b.String()
}

func formatView(b *strings.Builder, v TaskView) {
	mark := "[ ]"
	if v.Completed {
		mark = "[x]"
	}
	indent := strings.Repeat("  ", v.Level)
	if len(v.Subtasks) > 0 {
		fmt.Fprintf(b, "%s%s %s (%d%%) {%s}\n", indent, mark, v.Title, v.Percent, v.ID)
	} else {
		fmt.Fprintf(b, "%s%s %s {%s}\n", indent, mark, v.Title, v.ID)
	}
	for _, st := range v.Subtasks {
		formatView(b, st)
	}
}
