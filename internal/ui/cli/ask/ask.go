package ask

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/agent"
	"github.com/isaacphi/realty/internal/appState"
)

var AskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appState.Get().NewAgent()
		if err != nil {
			return err
		}

		answer, err := a.Ask(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return errors.New(agent.UserMessage(err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}
