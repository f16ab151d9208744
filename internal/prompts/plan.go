package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlanPrompt handles the roadmap-plan MCP prompt.
// It guides the AI to turn a goal into a main task with subtasks.
type PlanPrompt struct{}

// NewPlanPrompt creates a PlanPrompt.
func NewPlanPrompt() *PlanPrompt {
	return &PlanPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *PlanPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("roadmap-plan",
		mcp.WithPromptDescription(
			"Turn a goal into a main task and a handful of concrete subtasks on your roadmap.",
		),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What you want to achieve"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the roadmap-plan prompt request.
func (p *PlanPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := ""
	if args := req.Params.Arguments; args != nil {
		goal = args["goal"]
	}
	if goal == "" {
		goal = "my next project"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Plan: %s", goal),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to plan '%s'.\n\n"+
						"Please:\n"+
						"1. Call `navigate` with prompt='%s' to create the main task\n"+
						"2. Ask me one or two questions about scope if the goal is vague\n"+
						"3. Propose three to six subtasks, each starting with a verb like Add, Build or Write\n"+
						"4. After I agree, call `navigate` once per subtask, mentioning the main task's words so each lands under it\n"+
						"5. Finish with `roadmap_status` so I can see the plan",
					goal, goal,
				)),
			},
		},
	}, nil
}
