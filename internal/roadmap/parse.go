package roadmap

import (
	"regexp"
	"strings"
	"time"

	"github.com/HendryAvila/navigate/internal/tasks"
)

var (
	// trailingTag matches one "[created: ...]" or "[archived: ...]" tag at
	// the end of a heading or checklist line.
	trailingTag = regexp.MustCompile(`\s*\[(created|archived): (\d{4}-\d{2}-\d{2} \d{2}:\d{2})\]$`)
	// checklistItem captures indentation, the check mark and the rest.
	checklistItem = regexp.MustCompile(`^([ \t]*)\* \[([ xX])\] (.+)$`)
)

// Parse reconstructs tasks from a roadmap or achievements document.
// The returned tasks carry titles, timestamps, completion flags,
// descriptions and nesting; ids, levels and parent links are assigned
// when the tasks are handed to tasks.Tree.Restore or RestoreArchived.
func Parse(doc string) []*tasks.Task {
	var (
		roots   []*tasks.Task
		current *tasks.Task
		// path[0] is the current root, path[i] the last item at depth i-1.
		path []*tasks.Task
	)

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, " \t\r")

		switch {
		case strings.HasPrefix(line, "# "):
			current = parseHeading(line[2:])
			if current.Title == "" {
				current = nil
				path = nil
				continue
			}
			roots = append(roots, current)
			path = []*tasks.Task{current}

		case current == nil:
			continue

		case strings.HasPrefix(line, "> "):
			if current.Description == "" {
				current.Description = strings.TrimSpace(line[2:])
			}

		case strings.HasPrefix(line, lastUpdatedLabel):
			if t, ok := parseTime(strings.TrimPrefix(line, lastUpdatedLabel)); ok {
				current.UpdatedAt = t
			}

		case strings.HasPrefix(line, archivedDateLabel):
			if t, ok := parseTime(strings.TrimPrefix(line, archivedDateLabel)); ok && current.ArchivedAt.IsZero() {
				current.ArchivedAt = t
				current.Completed = true
			}

		default:
			m := checklistItem.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			item := parseItem(m[3])
			if item.Title == "" {
				continue
			}
			item.Completed = m[2] != " "

			depth := indentWidth(m[1]) / 2
			parentIdx := depth
			if parentIdx > len(path)-1 {
				parentIdx = len(path) - 1
			}
			parent := path[parentIdx]
			parent.Subtasks = append(parent.Subtasks, item)
			path = append(path[:parentIdx+1], item)
		}
	}
	return roots
}

// parseHeading reads "<title> [created: ..] [archived: ..] [done]" with
// the tags in any order.
func parseHeading(text string) *tasks.Task {
	task := &tasks.Task{}
	text = strings.TrimSpace(text)
	for {
		if i := tagStart(text); i >= 0 && !escapedAt(text, i) && text[i:] == doneTag {
			task.Completed = true
			text = strings.TrimSpace(strings.TrimSuffix(text, doneTag))
			continue
		}
		name, t, rest, ok := cutTag(text)
		if !ok {
			break
		}
		switch name {
		case "created":
			task.CreatedAt = t
		case "archived":
			task.ArchivedAt = t
			task.Completed = true
		}
		text = rest
	}
	task.Title = unescapeTitle(text)
	return task
}

func parseItem(text string) *tasks.Task {
	task := &tasks.Task{}
	text = strings.TrimSpace(text)
	for {
		name, t, rest, ok := cutTag(text)
		if !ok {
			break
		}
		if name == "created" {
			task.CreatedAt = t
		}
		text = rest
	}
	task.Title = unescapeTitle(text)
	return task
}

// cutTag removes one trailing timestamp tag from text.
func cutTag(text string) (name string, t time.Time, rest string, ok bool) {
	loc := trailingTag.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", time.Time{}, text, false
	}
	// loc[2] is just past the opening bracket.
	if escapedAt(text, loc[2]-1) {
		return "", time.Time{}, text, false
	}
	name = text[loc[2]:loc[3]]
	t, _ = parseTime(text[loc[4]:loc[5]])
	return name, t, strings.TrimSpace(text[:loc[0]]), true
}

// tagStart returns the index of the opening bracket of a tag-shaped
// suffix of s, or -1.
func tagStart(s string) int {
	if strings.HasSuffix(s, doneTag) {
		return len(s) - len(doneTag)
	}
	if loc := trailingTag.FindStringSubmatchIndex(s); loc != nil {
		return loc[2] - 1
	}
	return -1
}

func escapedAt(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

// escapeTitle backslash-escapes a title whose own text ends in a tag, so
// Parse keeps it as part of the title.
func escapeTitle(title string) string {
	i := tagStart(title)
	if i < 0 {
		return title
	}
	return title[:i] + `\` + title[i:]
}

func unescapeTitle(text string) string {
	if i := tagStart(text); escapedAt(text, i) {
		return text[:i-1] + text[i:]
	}
	return text
}

func parseTime(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(tasks.TimestampLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// indentWidth counts leading whitespace, a tab standing for two spaces.
func indentWidth(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += 2
			continue
		}
		n++
	}
	return n
}
