// Package prompts implements MCP prompt handlers for navigate.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the roadmap-review MCP prompt.
// It asks the AI to read the roadmap and suggest what to do next.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("roadmap-review",
		mcp.WithPromptDescription(
			"Review your roadmap: what is done, what is stuck, "+
				"and which task to pick up next.",
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional task or area to concentrate the review on"),
		),
	)
}

// Handle processes the roadmap-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := ""
	if args := req.Params.Arguments; args != nil {
		focus = args["focus"]
	}

	focusLine := ""
	if focus != "" {
		focusLine = fmt.Sprintf("Concentrate on anything related to '%s'.\n\n", focus)
	}

	return &mcp.GetPromptResult{
		Description: "Roadmap Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `roadmap_status` to load my current roadmap.\n\n" +
						focusLine +
						"Then:\n" +
						"1. Summarize overall progress and each top-level task's percentage\n" +
						"2. Point out tasks with no subtasks that look too big to start\n" +
						"3. Suggest the single next subtask I should work on\n" +
						"4. If a top-level task is complete, offer to archive it with `navigate`",
				),
			},
		},
	}, nil
}
