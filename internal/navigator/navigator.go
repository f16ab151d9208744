// Package navigator turns free-text prompts into roadmap changes.
//
// A Navigator owns the task tree for one pair of documents. Each prompt
// is validated, classified, applied to the tree, rendered and written
// back, and answered with one human-readable sentence. Known failures
// become sentences too; nothing escapes as a panic.
package navigator

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/HendryAvila/navigate/internal/intent"
	"github.com/HendryAvila/navigate/internal/journal"
	"github.com/HendryAvila/navigate/internal/roadmap"
	"github.com/HendryAvila/navigate/internal/storage"
	"github.com/HendryAvila/navigate/internal/tasks"
)

// DefaultMaxPromptLength is the longest prompt accepted, in characters.
const DefaultMaxPromptLength = 1000

// DefaultMinConfidence is the confidence below which a classification is
// answered with a question instead of a change.
const DefaultMinConfidence = 0.7

var (
	ErrEmptyInput   = errors.New("prompt is empty")
	ErrInputTooLong = errors.New("prompt is too long")
	ErrInternal     = errors.New("internal failure")
)

// Response sentences that do not depend on the roadmap.
const (
	msgEmptyInput     = "Please provide a task description."
	msgTooLongFormat  = "Prompt is too long (max %d characters)."
	msgInternal       = "Something went wrong while processing your prompt. Please try again."
	msgUnsure         = "I'm not sure what you want to do with '%s'. Could you rephrase it?"
	msgWarningSuffix  = " (warning: changes were not saved: %s)"
	msgUnknownAction  = "I don't know how to handle that yet."
	msgNoParentFormat = "Could not find the parent task for '%s'."
)

// Recorder receives one journal entry per classified prompt.
// *journal.Store satisfies it.
type Recorder interface {
	Record(e journal.Entry) (int64, error)
}

// Config tunes validation, classification and tree rules.
type Config struct {
	MaxPromptLength int
	MinConfidence   float64
	Tree            tasks.Config
	Thresholds      intent.Thresholds
}

// DefaultConfig returns the reference behavior.
func DefaultConfig() Config {
	return Config{
		MaxPromptLength: DefaultMaxPromptLength,
		MinConfidence:   DefaultMinConfidence,
		Tree:            tasks.DefaultConfig(),
		Thresholds:      intent.DefaultThresholds(),
	}
}

// Option configures optional collaborators.
type Option func(*Navigator)

// WithRecorder journals every classified prompt.
func WithRecorder(r Recorder) Option {
	return func(n *Navigator) { n.recorder = r }
}

// Outcome is the full result of processing one prompt.
type Outcome struct {
	// Result is the classification; zero when the prompt was rejected
	// before classification.
	Result intent.Result
	// Response is the sentence shown to the user.
	Response string
	// Changed reports whether the tree was mutated.
	Changed bool
	// Err is the rejection or failure behind the response, if any. A
	// failed write is reported here even though the change stands.
	Err error
}

// Navigator sequences classifier, tree and documents. It is safe for
// concurrent use; prompts are applied one at a time.
type Navigator struct {
	mu         sync.Mutex
	cfg        Config
	tree       *tasks.Tree
	classifier *intent.Classifier
	docs       storage.Documents
	recorder   Recorder
}

// New loads both documents into a fresh tree.
func New(cfg Config, docs storage.Documents, opts ...Option) (*Navigator, error) {
	if cfg.MaxPromptLength <= 0 {
		cfg.MaxPromptLength = DefaultMaxPromptLength
	}
	n := &Navigator{
		cfg:        cfg,
		tree:       tasks.New(cfg.Tree),
		classifier: intent.New(cfg.Thresholds),
		docs:       docs,
	}
	for _, opt := range opts {
		opt(n)
	}

	active, err := docs.ReadRoadmap()
	if err != nil {
		return nil, fmt.Errorf("loading roadmap: %w", err)
	}
	n.tree.Restore(roadmap.Parse(active))

	archived, err := docs.ReadAchievements()
	if err != nil {
		return nil, fmt.Errorf("loading achievements: %w", err)
	}
	n.tree.RestoreArchived(roadmap.Parse(archived))
	return n, nil
}

// ProcessPrompt handles one prompt and returns the response sentence.
func (n *Navigator) ProcessPrompt(prompt string) string {
	return n.Process(prompt).Response
}

// Process handles one prompt and returns everything known about it.
func (n *Navigator) Process(prompt string) (out Outcome) {
	n.mu.Lock()
	defer n.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: navigator: recovered from panic: %v", r)
			out = Outcome{
				Result:   out.Result,
				Response: msgInternal,
				Err:      fmt.Errorf("%w: %v", ErrInternal, r),
			}
		}
		if out.Result.Action != "" {
			n.record(prompt, out)
		}
	}()

	if err := n.validate(prompt); err != nil {
		return rejection(err, n.cfg.MaxPromptLength)
	}

	res := n.classifier.Classify(prompt, n.tree)
	if res.Action != intent.ActionClarify && res.Confidence < n.cfg.MinConfidence {
		return Outcome{Result: res, Response: fmt.Sprintf(msgUnsure, res.Content)}
	}

	out.Result = res
	applied := n.apply(res)
	applied.Result = res
	return applied
}

func (n *Navigator) validate(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return ErrEmptyInput
	}
	if utf8.RuneCountInString(trimmed) > n.cfg.MaxPromptLength {
		return ErrInputTooLong
	}
	return nil
}

func rejection(err error, maxLen int) Outcome {
	if errors.Is(err, ErrInputTooLong) {
		return Outcome{Response: fmt.Sprintf(msgTooLongFormat, maxLen), Err: err}
	}
	return Outcome{Response: msgEmptyInput, Err: err}
}

// apply dispatches a confident classification to the tree.
func (n *Navigator) apply(res intent.Result) Outcome {
	switch res.Action {
	case intent.ActionCreateMain:
		return n.createMain(res)
	case intent.ActionCreateSubtask:
		return n.createSubtask(res)
	case intent.ActionComplete:
		return n.complete(res)
	case intent.ActionArchive:
		return n.archive(res)
	case intent.ActionClarify:
		return Outcome{Response: res.Content}
	default:
		return Outcome{Response: msgUnknownAction, Err: fmt.Errorf("unknown action %q", res.Action)}
	}
}

func (n *Navigator) createMain(res intent.Result) Outcome {
	id, err := n.tree.CreateRoot(res.Content, "")
	if err != nil {
		return Outcome{Response: msgEmptyInput, Err: err}
	}
	task := n.tree.Find(id)
	return n.persist(fmt.Sprintf("Created main task: '%s'", task.Title), nil)
}

func (n *Navigator) createSubtask(res intent.Result) Outcome {
	parent := n.tree.Find(res.TargetID)
	id, err := n.tree.CreateChild(res.TargetID, res.Content)
	switch {
	case errors.Is(err, tasks.ErrEmptyContent):
		return Outcome{Response: msgEmptyInput, Err: err}
	case errors.Is(err, tasks.ErrParentNotFound):
		return Outcome{Response: fmt.Sprintf(msgNoParentFormat, res.Content), Err: err}
	case errors.Is(err, tasks.ErrMaxDepthExceeded):
		return Outcome{
			Response: fmt.Sprintf("Cannot add a subtask to '%s': it is already at the maximum nesting depth.", parent.Title),
			Err:      err,
		}
	case err != nil:
		return Outcome{Response: msgInternal, Err: err}
	}
	child := n.tree.Find(id)
	return n.persist(fmt.Sprintf("Added subtask to '%s': '%s'", parent.Title, child.Title), nil)
}

func (n *Navigator) complete(res intent.Result) Outcome {
	task := n.tree.Find(res.TargetID)
	rollup, err := n.tree.Complete(res.TargetID)
	if err != nil {
		return Outcome{Response: "Could not find the task to mark as complete.", Err: err}
	}
	return n.persist(fmt.Sprintf("Marked task as complete: '%s' (%s)", task.Title, rollup), nil)
}

func (n *Navigator) archive(res intent.Result) Outcome {
	target := n.tree.Find(res.TargetID)
	archived, err := n.tree.Archive(res.TargetID)
	switch {
	case errors.Is(err, tasks.ErrNotCompleted):
		return Outcome{
			Response: fmt.Sprintf("Task '%s' must be completed before it can be archived.", target.Title),
			Err:      err,
		}
	case err != nil:
		return Outcome{Response: "Could not find a task to archive. Only completed top-level tasks can be archived.", Err: err}
	}

	var writeErr error
	if err := n.docs.AppendAchievement(roadmap.RenderAchievement(archived)); err != nil {
		writeErr = fmt.Errorf("appending achievement: %w", err)
	}
	return n.persist(fmt.Sprintf("Archived task: '%s'", archived.Title), writeErr)
}

// persist writes the roadmap after a successful mutation. Write failures
// leave the in-memory change in place and become a warning suffix.
func (n *Navigator) persist(response string, prior error) Outcome {
	out := Outcome{Response: response, Changed: true}

	var errs []error
	if prior != nil {
		errs = append(errs, prior)
	}
	if err := n.docs.WriteRoadmap(roadmap.Render(n.tree.Roots())); err != nil {
		errs = append(errs, fmt.Errorf("writing roadmap: %w", err))
	}
	if len(errs) == 0 {
		return out
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	detail := strings.Join(msgs, "; ")
	log.Printf("WARNING: navigator: %s", detail)
	out.Err = errors.Join(errs...)
	out.Response += fmt.Sprintf(msgWarningSuffix, detail)
	return out
}

// record journals a classified prompt. Failures are logged and ignored.
func (n *Navigator) record(prompt string, out Outcome) {
	if n.recorder == nil {
		return
	}
	_, err := n.recorder.Record(journal.Entry{
		Prompt:     strings.TrimSpace(prompt),
		Action:     string(out.Result.Action),
		TargetID:   out.Result.TargetID,
		Confidence: out.Result.Confidence,
		Response:   out.Response,
	})
	if err != nil {
		log.Printf("WARNING: journal: record prompt: %v", err)
	}
}
