// Package intent maps a free-text prompt plus the current roadmap to one
// of a small closed set of actions.
//
// Classification is an ordered chain of keyword and word-overlap rules.
// The first rule that produces a result wins; the last rule always does.
package intent

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/navigate/internal/tasks"
)

// Action is what the classifier decided the prompt asks for.
type Action string

const (
	ActionCreateMain    Action = "create_main_task"
	ActionCreateSubtask Action = "create_subtask"
	ActionComplete      Action = "mark_complete"
	ActionArchive       Action = "archive"
	ActionClarify       Action = "clarify"
)

// ValidActions lists every action in decision order.
var ValidActions = []Action{
	ActionComplete,
	ActionArchive,
	ActionCreateSubtask,
	ActionCreateMain,
	ActionClarify,
}

// ParseAction converts a string to an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range ValidActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Result is a classification outcome. For clarify, Content holds the
// question to ask back; otherwise it is the trimmed prompt.
type Result struct {
	Action     Action
	Content    string
	TargetID   string
	Confidence float64
}

// Thresholds maps each action to the confidence reported when it is chosen.
type Thresholds map[Action]float64

// DefaultThresholds returns the reference confidences.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ActionComplete:      0.90,
		ActionArchive:       0.85,
		ActionCreateSubtask: 0.80,
		ActionCreateMain:    0.85,
		ActionClarify:       0.40,
	}
}

// Merge returns a copy of t with any values from overrides applied.
// Unknown keys are ignored.
func (t Thresholds) Merge(overrides map[string]float64) Thresholds {
	out := make(Thresholds, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		a, err := ParseAction(k)
		if err != nil {
			continue
		}
		out[a] = v
	}
	return out
}

// Forest is the read-only view of the roadmap the classifier needs.
// *tasks.Tree satisfies it.
type Forest interface {
	Roots() []*tasks.Task
	Flatten(maxLevel int) []*tasks.Task
	Config() tasks.Config
}

// Keyword sets. Matching is by substring over the lower-cased prompt.
var (
	completionPhrases = []string{
		"done", "finished", "complete", "completed", "all set",
		"ready", "accomplished", "achieved", "wrapped up",
	}
	archivePhrases = []string{"archive", "move to achievements", "save to archive"}
	actionVerbs    = []string{
		"add", "create", "implement", "build", "write",
		"setup", "configure", "install", "design",
	}
)

// rule inspects a prompt and either decides (ok=true) or passes.
type rule func(c *Classifier, p prompt, f Forest) (Result, bool)

// Classifier runs the rule chain. It holds no roadmap state, so one
// instance may serve any number of forests.
type Classifier struct {
	thresholds Thresholds
	rules      []rule
}

// New creates a classifier. A nil map means DefaultThresholds; missing
// actions fall back to their defaults.
func New(thresholds Thresholds) *Classifier {
	merged := DefaultThresholds()
	for k, v := range thresholds {
		merged[k] = v
	}
	return &Classifier{
		thresholds: merged,
		rules: []rule{
			completionRule,
			archiveRule,
			subtaskRule,
			mainTaskRule,
		},
	}
}

// Thresholds returns the confidences in effect.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify decides what the prompt asks for against the given forest.
// A nil forest is treated as empty.
func (c *Classifier) Classify(text string, f Forest) Result {
	if f == nil {
		f = emptyForest{}
	}
	p := newPrompt(text)
	for _, r := range c.rules {
		if res, ok := r(c, p, f); ok {
			return res
		}
	}
	// mainTaskRule always decides; this is unreachable with the built-in chain.
	return c.result(ActionCreateMain, p.raw, "")
}

func (c *Classifier) result(action Action, content, target string) Result {
	return Result{
		Action:     action,
		Content:    content,
		TargetID:   target,
		Confidence: c.thresholds[action],
	}
}

// --- Rules ---

func completionRule(c *Classifier, p prompt, f Forest) (Result, bool) {
	if !containsAny(p.lower, completionPhrases...) {
		return Result{}, false
	}
	if target := findTarget(p, f.Roots(), true); target != nil {
		return c.result(ActionComplete, p.raw, target.ID), true
	}
	return c.result(ActionClarify,
		fmt.Sprintf("Which task are you referring to when you say '%s'?", p.raw), ""), true
}

func archiveRule(c *Classifier, p prompt, f Forest) (Result, bool) {
	if !containsAny(p.lower, archivePhrases...) {
		return Result{}, false
	}
	if target := findTarget(p, f.Roots(), false); target != nil {
		return c.result(ActionArchive, p.raw, target.ID), true
	}
	return c.result(ActionClarify, "Which completed task would you like to archive?", ""), true
}

func subtaskRule(c *Classifier, p prompt, f Forest) (Result, bool) {
	maxDepth := f.Config().MaxDepth
	all := f.Flatten(maxDepth)
	if len(all) == 0 || !shouldBeSubtask(p, all) {
		return Result{}, false
	}
	parent := bestParent(p, all, f.Roots(), maxDepth)
	if parent == nil {
		return Result{}, false
	}
	return c.result(ActionCreateSubtask, p.raw, parent.ID), true
}

func mainTaskRule(c *Classifier, p prompt, _ Forest) (Result, bool) {
	return c.result(ActionCreateMain, p.raw, ""), true
}

// containsAny returns true if text contains any of the given substrings.
func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

type emptyForest struct{}

func (emptyForest) Roots() []*tasks.Task     { return nil }
func (emptyForest) Flatten(int) []*tasks.Task { return nil }
func (emptyForest) Config() tasks.Config      { return tasks.DefaultConfig() }
