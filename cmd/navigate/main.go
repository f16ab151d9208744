// navigate: a markdown roadmap driven by plain-language prompts.
//
// Usage:
//
//	navigate "Build a new website"   # apply one prompt
//	navigate session                 # interactive session
//	navigate status                  # roadmap overview
//	navigate serve                   # MCP server (stdio transport)
package main

import (
	"os"

	"github.com/HendryAvila/navigate/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
