package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/mark3labs/mcp-go/mcp"
)

// Snapshotter exposes a detached view of the roadmap.
type Snapshotter interface {
	Snapshot() navigator.Overview
}

// StatusTool handles the roadmap_status MCP tool.
type StatusTool struct {
	nav Snapshotter
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(nav Snapshotter) *StatusTool {
	return &StatusTool{nav: nav}
}

// Definition returns the MCP tool definition for roadmap_status.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("roadmap_status",
		mcp.WithDescription(
			"Show the current roadmap: every open task with its subtasks, completion percentages "+
				"and task ids, plus how many tasks have been archived.",
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'text' (default) or 'json'"),
		),
	)
}

// Handle processes the roadmap_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ov := t.nav.Snapshot()

	switch format := req.GetString("format", "text"); format {
	case "", "text":
		return mcp.NewToolResultText(ov.Format()), nil
	case "json":
		data, err := json.MarshalIndent(statusJSON(ov), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling status: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: use 'text' or 'json'", format)), nil
	}
}

type statusDoc struct {
	Percent  int        `json:"percent"`
	Open     int        `json:"open"`
	Done     int        `json:"done"`
	Archived int        `json:"archived"`
	Tasks    []taskNode `json:"tasks"`
}

type taskNode struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Percent   int        `json:"percent"`
	Subtasks  []taskNode `json:"subtasks,omitempty"`
}

func statusJSON(ov navigator.Overview) statusDoc {
	doc := statusDoc{
		Percent:  ov.Percent(),
		Open:     ov.ActiveCount,
		Done:     ov.DoneCount,
		Archived: ov.ArchivedCount,
		Tasks:    []taskNode{},
	}
	for _, r := range ov.Roots {
		doc.Tasks = append(doc.Tasks, node(r))
	}
	return doc
}

func node(v navigator.TaskView) taskNode {
	n := taskNode{ID: v.ID, Title: v.Title, Completed: v.Completed, Percent: v.Percent}
	for _, st := range v.Subtasks {
		n.Subtasks = append(n.Subtasks, node(st))
	}
	return n
}
