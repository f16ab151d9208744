package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/HendryAvila/navigate/internal/tasks"
)

// stopWords never count towards overlap.
var stopWords = map[string]bool{
	"done": true, "with": true, "the": true, "and": true, "for": true,
	"that": true, "this": true, "add": true, "create": true,
	"implement": true, "about": true,
}

// minSignificantLen is the shortest word that counts towards overlap.
const minSignificantLen = 3

// minSharedLen is the shortest raw word that alone marks a prompt as
// related to an existing task.
const minSharedLen = 4

// prompt is the normalized form every rule works on.
type prompt struct {
	raw         string
	lower       string
	words       []string
	significant map[string]bool
}

func newPrompt(text string) prompt {
	raw := strings.TrimSpace(text)
	ws := words(raw)
	return prompt{
		raw:         raw,
		lower:       strings.ToLower(raw),
		words:       ws,
		significant: significantWords(ws),
	}
}

// containsTitle reports whether the task title appears verbatim
// (case-insensitively) inside the prompt.
func (p prompt) containsTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	return t != "" && strings.Contains(p.lower, t)
}

// overlap returns the number of significant words shared with title and
// the title's own significant word count.
func (p prompt) overlap(title string) (shared, size int) {
	tw := significantWords(words(title))
	for w := range tw {
		if p.significant[w] {
			shared++
		}
	}
	return shared, len(tw)
}

// words lower-cases s, splits on whitespace and strips punctuation
// around each word.
func words(s string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func significantWords(ws []string) map[string]bool {
	set := make(map[string]bool, len(ws))
	for _, w := range ws {
		if utf8.RuneCountInString(w) < minSignificantLen || stopWords[w] {
			continue
		}
		set[w] = true
	}
	return set
}

// weakMatch reports overlap too thin to act on when completing: less
// than half of the candidate's words and fewer than two in total.
func weakMatch(shared, size int) bool {
	if shared >= 2 {
		return false
	}
	return size > 0 && float64(shared)/float64(size) < 0.5
}

// --- Target resolution ---

// findTarget resolves the task a prompt refers to. Candidates are
// visited subtasks-first, so a specific subtask beats its root unless
// the root scores strictly higher. A title contained in the prompt wins
// immediately. Ties keep the first candidate.
//
// strict mode is used for completion: it needs at least one significant
// prompt word and skips candidates with weak overlap.
func findTarget(p prompt, roots []*tasks.Task, strict bool) *tasks.Task {
	if len(roots) == 0 {
		return nil
	}
	if strict && len(p.significant) == 0 {
		return nil
	}

	var (
		best      *tasks.Task
		bestScore int
		exact     *tasks.Task
	)
	var visit func(t *tasks.Task) bool
	visit = func(t *tasks.Task) bool {
		for _, st := range t.Subtasks {
			if visit(st) {
				return true
			}
		}
		if p.containsTitle(t.Title) {
			exact = t
			return true
		}
		shared, size := p.overlap(t.Title)
		if shared == 0 {
			return false
		}
		if strict && weakMatch(shared, size) {
			return false
		}
		if shared > bestScore {
			best, bestScore = t, shared
		}
		return false
	}

	for _, r := range roots {
		if visit(r) {
			return exact
		}
	}
	return best
}

// shouldBeSubtask reports whether a prompt looks like it extends an
// existing task rather than starting a new one.
func shouldBeSubtask(p prompt, all []*tasks.Task) bool {
	for _, verb := range actionVerbs {
		if strings.HasPrefix(p.lower, verb+" ") {
			return true
		}
	}
	mentionsWork := containsAny(p.lower, "project", "task")
	for _, t := range all {
		if shared, _ := p.overlap(t.Title); shared > 0 {
			return true
		}
		if p.containsTitle(t.Title) {
			return true
		}
		title := make(map[string]bool)
		for _, w := range words(t.Title) {
			title[w] = true
		}
		for _, w := range p.words {
			n := utf8.RuneCountInString(w)
			if !title[w] {
				continue
			}
			if n >= minSharedLen || (mentionsWork && n >= minSignificantLen) {
				return true
			}
		}
	}
	return false
}

// bestParent picks where a new subtask should go: the shallowest task
// whose title the prompt contains, else the highest overlap biased by
// 0.5 per level towards deeper tasks, else the newest root. Tasks at
// maxDepth are never chosen.
func bestParent(p prompt, all, roots []*tasks.Task, maxDepth int) *tasks.Task {
	var exact *tasks.Task
	for _, t := range all {
		if t.Level >= maxDepth || !p.containsTitle(t.Title) {
			continue
		}
		if exact == nil || t.Level < exact.Level {
			exact = t
		}
	}
	if exact != nil {
		return exact
	}

	var (
		best      *tasks.Task
		bestScore float64
	)
	for _, t := range all {
		if t.Level >= maxDepth {
			continue
		}
		shared, _ := p.overlap(t.Title)
		if shared == 0 {
			continue
		}
		score := float64(shared) + 0.5*float64(t.Level)
		if best == nil || score > bestScore {
			best, bestScore = t, score
		}
	}
	if best != nil {
		return best
	}

	if len(roots) == 0 {
		return nil
	}
	return roots[len(roots)-1]
}
