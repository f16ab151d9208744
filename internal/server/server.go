// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// Only wiring lives here.
package server

import (
	"fmt"
	"log"

	"github.com/HendryAvila/navigate/internal/config"
	"github.com/HendryAvila/navigate/internal/journal"
	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/HendryAvila/navigate/internal/prompts"
	"github.com/HendryAvila/navigate/internal/resources"
	"github.com/HendryAvila/navigate/internal/storage"
	"github.com/HendryAvila/navigate/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Runtime holds the long-lived collaborators shared by the MCP server
// and the CLI.
type Runtime struct {
	Navigator *navigator.Navigator
	// Journal is nil when the journal is disabled or failed to open.
	Journal *journal.Store
	// Docs is the document store the navigator reads and writes.
	Docs *storage.FileStore
}

// Open resolves every dependency described by cfg.
//
// The returned cleanup function closes the journal's database connection
// and must be called on shutdown (typically via defer). It is always
// non-nil and safe to call even if the journal is disabled.
func Open(cfg *config.Config) (*Runtime, func(), error) {
	docs := cfg.Documents()

	var (
		opts    []navigator.Option
		store   *journal.Store
		cleanup = noop
	)
	if cfg.Journal {
		js, err := journal.New(cfg.JournalConfig())
		if err != nil {
			// Journal failure is non-fatal: the roadmap works without history.
			log.Printf("WARNING: journal disabled: %v", err)
		} else {
			store = js
			opts = append(opts, navigator.WithRecorder(js))
			cleanup = func() {
				if err := js.Close(); err != nil {
					log.Printf("WARNING: closing journal: %v", err)
				}
			}
		}
	}

	nav, err := navigator.New(cfg.Navigator(), docs, opts...)
	if err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("opening roadmap: %w", err)
	}

	return &Runtime{Navigator: nav, Journal: store, Docs: docs}, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	rt, cleanup, err := Open(cfg)
	if err != nil {
		return nil, noop, err
	}

	s := server.NewMCPServer(
		"navigate",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(rt.Journal != nil)),
	)

	// --- Register tools ---

	navigateTool := tools.NewNavigateTool(rt.Navigator)
	s.AddTool(navigateTool.Definition(), navigateTool.Handle)

	statusTool := tools.NewStatusTool(rt.Navigator)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	if rt.Journal != nil {
		historyTool := tools.NewHistoryTool(rt.Journal)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Register prompts ---

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	planPrompt := prompts.NewPlanPrompt()
	s.AddPrompt(planPrompt.Definition(), planPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(rt.Docs)
	s.AddResource(resourceHandler.RoadmapResource(), resourceHandler.HandleRoadmap)
	s.AddResource(resourceHandler.AchievementsResource(), resourceHandler.HandleAchievements)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the journal
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use navigate effectively.
func serverInstructions(history bool) string {
	text := `You have access to navigate, a roadmap kept as two markdown documents.

## WHEN TO USE navigate

Call the navigate tool whenever the user:
- Mentions a new goal or project ("I want to learn Spanish", "Build a new website")
- Describes a piece of work that belongs to an existing goal ("Add user authentication")
- Says something is finished ("authentication is done", "Done")
- Asks to archive or put away a finished goal

Pass the user's words as the prompt. Do not rewrite them into commands;
navigate classifies plain language itself and answers with one sentence
describing what changed. Relay that sentence to the user.

## Rules navigate enforces
- Tasks nest at most three levels below a top-level task
- Completing a task completes all of its subtasks
- When every sibling is complete the parent is completed too
- Only completed top-level tasks can be archived
- A reply starting with "Which task" means navigate needs the user to be more specific

## Reading the roadmap
- roadmap_status shows open tasks, percentages and task ids
- Resources navigate://roadmap and navigate://achievements hold the raw documents
`
	if history {
		text += `- navigate_history searches prompts processed in earlier sessions
`
	}
	return text
}
