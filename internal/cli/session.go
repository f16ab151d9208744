package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	navserver "github.com/HendryAvila/navigate/internal/server"
	"github.com/HendryAvila/navigate/internal/ui"
)

func newSessionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive prompt session",
		Long: `Open a terminal session that keeps the roadmap on screen and applies
each prompt as you type it. Type "exit" or press esc to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			rt, cleanup, err := navserver.Open(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if rt.Journal != nil {
				if _, err := rt.Journal.StartSession(); err != nil {
					return fmt.Errorf("starting journal session: %w", err)
				}
			}

			p := tea.NewProgram(ui.NewSession(rt.Navigator, cfg.MaxPromptLength), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running session: %w", err)
			}
			return nil
		},
	}
}
