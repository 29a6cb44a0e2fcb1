package tools

import (
	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/appState"
)

var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show the tools offered to the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := appState.Get().Registry()
		if err != nil {
			return err
		}
		PrintTools(cmd.OutOrStdout(), registry.Specs())
		return nil
	},
}
