// Package cli implements the navigate command line.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/navigate/internal/config"
	navserver "github.com/HendryAvila/navigate/internal/server"
)

// errNoPrompt is returned when the root command runs without words.
var errNoPrompt = errors.New("no prompt given")

// options holds the persistent flags shared by every command.
type options struct {
	configPath   string
	roadmap      string
	achievements string
}

// Execute runs the root command
func Execute(version string) error {
	navserver.Version = version
	root := newRootCmd(version)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errNoPrompt) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "navigate [prompt...]",
		Short: "Keep a markdown roadmap from plain-language prompts",
		Long: `navigate turns sentences like "Build a new website", "Add user authentication"
or "authentication is done" into changes to roadmap.md, and moves finished
goals to achievements.md.

Run it with a prompt for a single change, or use the subcommands for an
interactive session, the roadmap overview, prompt history and the MCP server.`,
		Args:          cobra.ArbitraryArgs,
		RunE:          func(cmd *cobra.Command, args []string) error { return runPrompt(cmd, opts, args) },
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.navigate/config.yaml and ./.navigate/config.yaml)")
	flags.StringVar(&opts.roadmap, "roadmap", "", "Roadmap document path (default: roadmap.md)")
	flags.StringVar(&opts.achievements, "achievements", "", "Achievements document path (default: achievements.md)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd(version))
	return root
}

// runPrompt applies one prompt and prints the response sentence.
func runPrompt(cmd *cobra.Command, opts *options, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		cmd.SetOut(cmd.ErrOrStderr())
		_ = cmd.Usage()
		return errNoPrompt
	}

	rt, cleanup, err := openRuntime(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintln(cmd.OutOrStdout(), rt.Navigator.ProcessPrompt(prompt))
	return nil
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.roadmap != "" {
		cfg.Roadmap = opts.roadmap
	}
	if opts.achievements != "" {
		cfg.Achievements = opts.achievements
	}
	return cfg, nil
}

func openRuntime(opts *options) (*navserver.Runtime, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	return navserver.Open(cfg)
}
