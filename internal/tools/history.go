package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/navigate/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// History reads the prompt journal. *journal.Store satisfies it.
type History interface {
	Recent(limit int) ([]journal.Entry, error)
	Search(query string, limit int) ([]journal.Entry, error)
	Stats() (*journal.Stats, error)
}

// HistoryTool handles the navigate_history MCP tool.
type HistoryTool struct {
	store History
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(store History) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for navigate_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("navigate_history",
		mcp.WithDescription(
			"Look back at prompts the roadmap has already processed. Without a query, lists the most "+
				"recent prompts; with a query, runs a full-text search over prompts and responses.",
		),
		mcp.WithString("query",
			mcp.Description("Words to search for in past prompts and responses"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 50)"),
		),
		mcp.WithBoolean("stats",
			mcp.Description("Include totals per action"),
		),
	)
}

// Handle processes the navigate_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	limit := clamp(intArg(req, "limit", defaultHistoryLimit), 1, maxHistoryLimit)

	var (
		entries []journal.Entry
		err     error
	)
	if query == "" {
		entries, err = t.store.Recent(limit)
	} else {
		entries, err = t.store.Search(query, limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	var b strings.Builder
	if boolArg(req, "stats", false) {
		stats, err := t.store.Stats()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history stats failed: %v", err)), nil
		}
		writeStats(&b, stats)
	}

	if len(entries) == 0 {
		if query != "" {
			fmt.Fprintf(&b, "No past prompts match %q.\n", query)
		} else {
			b.WriteString("No prompts recorded yet.\n")
		}
		return mcp.NewToolResultText(b.String()), nil
	}

	fmt.Fprintf(&b, "Found %d prompts:\n\n", len(entries))
	for i, e := range entries {
		target := ""
		if e.TargetID != "" {
			target = " -> " + e.TargetID
		}
		fmt.Fprintf(&b, "[%d] %s (%s%s, %.2f)\n    > %s\n    %s\n\n",
			i+1, e.CreatedAt, e.Action, target, e.Confidence,
			journal.Truncate(e.Prompt, 200),
			journal.Truncate(e.Response, 300),
		)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func writeStats(b *strings.Builder, s *journal.Stats) {
	fmt.Fprintf(b, "Sessions: %d, prompts: %d\n", s.TotalSessions, s.TotalEntries)
	actions := make([]string, 0, len(s.ByAction))
	for a := range s.ByAction {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		fmt.Fprintf(b, "  %s: %d\n", a, s.ByAction[a])
	}
	b.WriteString("\n")
}
