// Package roadmap converts between the task forest and the two markdown
// documents a user reads: the active roadmap and the achievements log.
//
// Both documents share one line grammar, so Parse reads either:
//
//	# <title> [created: YYYY-MM-DD HH:MM] [archived: ...] [done]
//	> <description>
//	## <section heading>
//	* [x] <subtask title> [created: ...]
//	  * [ ] <nested subtask> [created: ...]
//	---
//	**Last Updated:** YYYY-MM-DD HH:MM
//	**Archived Date:** YYYY-MM-DD HH:MM
//
// Lines of any other shape are ignored. A title that itself ends in a
// tag is written with the bracket escaped as "\[" and read back verbatim.
package roadmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/navigate/internal/tasks"
)

const (
	subtasksHeading          = "## Subtasks"
	completedSubtasksHeading = "## Completed Subtasks"
	separator                = "---"
	lastUpdatedLabel         = "**Last Updated:**"
	archivedDateLabel        = "**Archived Date:**"
	doneTag                  = "[done]"
)

// Render serializes the active forest. An empty forest renders to "".
func Render(roots []*tasks.Task) string {
	if len(roots) == 0 {
		return ""
	}

	var b strings.Builder
	for _, root := range roots {
		b.WriteString("# " + escapeTitle(root.Title))
		writeTag(&b, "created", root.CreatedAt)
		if root.Completed {
			b.WriteString(" " + doneTag)
		}
		b.WriteString("\n\n")

		writeDescription(&b, root.Description)
		if len(root.Subtasks) > 0 {
			b.WriteString(subtasksHeading + "\n")
			writeChecklist(&b, root.Subtasks, 0)
			b.WriteString("\n")
		}

		b.WriteString(separator + "\n")
		updated := root.UpdatedAt
		if updated.IsZero() {
			updated = root.CreatedAt
		}
		fmt.Fprintf(&b, "%s %s\n\n", lastUpdatedLabel, formatTime(updated))
	}
	return b.String()
}

// RenderAchievement serializes one archived task as an entry of the
// achievements log.
func RenderAchievement(task *tasks.Task) string {
	if task == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# " + escapeTitle(task.Title))
	writeTag(&b, "created", task.CreatedAt)
	writeTag(&b, "archived", task.ArchivedAt)
	b.WriteString("\n\n")

	writeDescription(&b, task.Description)
	if len(task.Subtasks) > 0 {
		b.WriteString(completedSubtasksHeading + "\n")
		writeChecklist(&b, task.Subtasks, 0)
		b.WriteString("\n")
	}

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "%s %s\n", archivedDateLabel, formatTime(task.ArchivedAt))
	return b.String()
}

// RenderAchievements serializes a whole archive collection, one entry
// after another separated by a blank line.
func RenderAchievements(archived []*tasks.Task) string {
	entries := make([]string, 0, len(archived))
	for _, a := range archived {
		entries = append(entries, RenderAchievement(a))
	}
	return strings.Join(entries, "\n")
}

func writeDescription(b *strings.Builder, description string) {
	if description == "" {
		return
	}
	fmt.Fprintf(b, "> %s\n\n", description)
}

// writeChecklist writes subtasks recursively. Direct children start at
// column zero and each deeper level indents two more spaces.
func writeChecklist(b *strings.Builder, subtasks []*tasks.Task, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, st := range subtasks {
		mark := "[ ]"
		if st.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(b, "%s* %s %s", indent, mark, escapeTitle(st.Title))
		writeTag(b, "created", st.CreatedAt)
		b.WriteString("\n")
		writeChecklist(b, st.Subtasks, depth+1)
	}
}

// writeTag appends " [name: timestamp]" unless the time is unset.
func writeTag(b *strings.Builder, name string, t time.Time) {
	if t.IsZero() {
		return
	}
	fmt.Fprintf(b, " [%s: %s]", name, formatTime(t))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(tasks.TimestampLayout)
}
