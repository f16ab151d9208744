package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/navigate/internal/updater"
)

func newVersionCmd(version string) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "navigate %s\n", version)
			if !check {
				return nil
			}
			res, err := updater.Check(cmd.Context(), version)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check GitHub for a newer release")
	return cmd
}
