package traces

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/appState"
	"github.com/isaacphi/realty/internal/domain"
)

var limitFlag int

var TracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Inspect locally stored trace events",
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent trace events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := appState.Get().TraceStore()
		if err != nil {
			return err
		}
		defer repo.Close()

		evs, err := repo.ListEvents(cmd.Context(), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list trace events: %w", err)
		}
		writeEvents(cmd.OutOrStdout(), evs)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show every event of one question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id: %w", err)
		}
		repo, err := appState.Get().TraceStore()
		if err != nil {
			return err
		}
		defer repo.Close()

		evs, err := repo.ListRun(cmd.Context(), runID)
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}
		if len(evs) == 0 {
			return fmt.Errorf("no events for run %s", runID)
		}
		for _, ev := range evs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s %s\n", ev.CreatedAt.Local().Format(time.TimeOnly), ev.Name, ev.Status, ev.Payload)
			if ev.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", ev.Error)
			}
		}
		return nil
	},
}

func writeEvents(w io.Writer, evs []domain.TraceEvent) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Time\tRun\tEvent\tStage\tDetail")
	for _, ev := range evs {
		detail := ev.Error
		if detail == "" {
			detail = ev.Payload
		}
		if len(detail) > 60 {
			detail = detail[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ev.CreatedAt.Local().Format(time.RFC822),
			ev.RunID.String()[:8],
			ev.Name,
			ev.Status,
			detail,
		)
	}
	tw.Flush()
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Limit the number of events to show (0 for all)")
	TracesCmd.AddCommand(listCmd, showCmd)
}
