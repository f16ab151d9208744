package ui

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/HendryAvila/navigate/internal/ui/styles"
)

const barWidth = 20

// RenderOverview draws the roadmap as a styled tree with a progress bar
// per top-level task.
func RenderOverview(ov navigator.Overview, s *styles.Styles) string {
	if len(ov.Roots) == 0 {
		return s.Placeholder.Render(fmt.Sprintf("No active tasks. %d archived.", ov.ArchivedCount))
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Roadmap"))
	b.WriteString("  ")
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("%d open, %d done, %d archived",
		ov.ActiveCount, ov.DoneCount, ov.ArchivedCount)))
	b.WriteString("\n")
	b.WriteString(bar(ov.Percent(), s))
	b.WriteString(" ")
	b.WriteString(s.Percent.Render(fmt.Sprintf("%d%%", ov.Percent())))
	b.WriteString("\n\n")

	for _, r := range ov.Roots {
		writeTask(&b, r, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeTask(b *strings.Builder, v navigator.TaskView, s *styles.Styles) {
	b.WriteString(strings.Repeat("  ", v.Level))
	if v.Completed {
		b.WriteString(s.TaskDone.Render("[x] " + v.Title))
	} else {
		b.WriteString(s.TaskOpen.Render("[ ] " + v.Title))
	}
	if len(v.Subtasks) > 0 {
		b.WriteString(" ")
		b.WriteString(s.Percent.Render(fmt.Sprintf("%d%%", v.Percent)))
	}
	b.WriteString(" ")
	b.WriteString(s.TaskID.Render(v.ID))
	b.WriteString("\n")
	for _, st := range v.Subtasks {
		writeTask(b, st, s)
	}
}

func bar(percent int, s *styles.Styles) string {
	filled := percent * barWidth / 100
	return s.BarFilled.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
}
