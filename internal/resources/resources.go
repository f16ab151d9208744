// Package resources implements MCP resource handlers for navigate.
//
// Resources expose the two markdown documents read-only, addressed as
// navigate://roadmap and navigate://achievements.
package resources

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	RoadmapURI      = "navigate://roadmap"
	AchievementsURI = "navigate://achievements"
	markdownMIME    = "text/markdown"
)

// Reader reads the current documents. storage.Documents satisfies it.
type Reader interface {
	ReadRoadmap() (string, error)
	ReadAchievements() (string, error)
}

// Handler manages the document resource endpoints.
type Handler struct {
	docs Reader
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(docs Reader) *Handler {
	return &Handler{docs: docs}
}

// RoadmapResource returns the MCP resource definition for the active roadmap.
func (h *Handler) RoadmapResource() mcp.Resource {
	return mcp.NewResource(
		RoadmapURI,
		"Roadmap",
		mcp.WithResourceDescription("Active tasks and subtasks with completion marks, as markdown"),
		mcp.WithMIMEType(markdownMIME),
	)
}

// AchievementsResource returns the MCP resource definition for the archive.
func (h *Handler) AchievementsResource() mcp.Resource {
	return mcp.NewResource(
		AchievementsURI,
		"Achievements",
		mcp.WithResourceDescription("Completed top-level tasks moved out of the roadmap, as markdown"),
		mcp.WithMIMEType(markdownMIME),
	)
}

// HandleRoadmap returns the roadmap document.
func (h *Handler) HandleRoadmap(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.docs.ReadRoadmap()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return markdown(req.Params.URI, doc, "_The roadmap is empty._\n"), nil
}

// HandleAchievements returns the achievements document.
func (h *Handler) HandleAchievements(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.docs.ReadAchievements()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	return markdown(req.Params.URI, doc, "_No achievements yet._\n"), nil
}

func markdown(uri, doc, placeholder string) []mcp.ResourceContents {
	if doc == "" {
		doc = placeholder
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: markdownMIME,
			Text:     doc,
		},
	}
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
