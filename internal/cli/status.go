package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/navigate/internal/ui"
	"github.com/HendryAvila/navigate/internal/ui/styles"
)

func newStatusCmd(opts *options) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the roadmap with completion percentages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := openRuntime(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			ov := rt.Navigator.Snapshot()
			if plain {
				fmt.Fprint(cmd.OutOrStdout(), ov.Format())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderOverview(ov, styles.NewStyles()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print without colors or progress bars")
	return cmd
}
