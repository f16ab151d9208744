package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// Processor applies one free-text prompt to the roadmap.
// *navigator.Navigator satisfies it.
type Processor interface {
	Process(prompt string) navigator.Outcome
}

// NavigateTool handles the navigate MCP tool.
type NavigateTool struct {
	nav Processor
}

// NewNavigateTool creates a NavigateTool.
func NewNavigateTool(nav Processor) *NavigateTool {
	return &NavigateTool{nav: nav}
}

// Definition returns the MCP tool definition for navigate.
func (t *NavigateTool) Definition() mcp.Tool {
	return mcp.NewTool("navigate",
		mcp.WithDescription(
			"Update the user's roadmap from a plain-language prompt. "+
				"Describe a new goal to create a main task, mention an existing task to add a subtask, "+
				"say a task is done to mark it complete, or ask to archive a completed task. "+
				"Returns one sentence describing what changed.",
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("What the user wants to do, in their own words (max 1000 characters)"),
		),
	)
}

// Handle processes the navigate tool call.
func (t *NavigateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	out := t.nav.Process(prompt)
	if errors.Is(out.Err, navigator.ErrInputTooLong) || errors.Is(out.Err, navigator.ErrEmptyInput) {
		return mcp.NewToolResultError(out.Response), nil
	}
	return mcp.NewToolResultText(out.Response), nil
}
