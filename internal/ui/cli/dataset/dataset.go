package dataset

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/isaacphi/realty/internal/appState"
)

var DatasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Inspect the property dataset without involving the model",
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the dataset came from and how many rows loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := appState.Get().Dataset()
		if err != nil {
			return err
		}
		report := data.Report()
		out, err := yaml.Marshal(struct {
			Source   string   `yaml:"source"`
			Rows     int      `yaml:"rows"`
			Loaded   int      `yaml:"loaded"`
			Skipped  int      `yaml:"skipped"`
			Suburbs  int      `yaml:"suburbs"`
			Problems []string `yaml:"problems,omitempty"`
		}{
			Source:   report.Source,
			Rows:     report.Rows,
			Loaded:   report.Loaded,
			Skipped:  report.Skipped,
			Suburbs:  len(data.Suburbs()),
			Problems: describeProblems(report.Problems),
		})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var propertyCmd = &cobra.Command{
	Use:   "property [address]",
	Short: "Look up a property by address fragment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := appState.Get().Dataset()
		if err != nil {
			return err
		}
		rec, err := data.FindProperty(strings.Join(args, " "))
		if err != nil {
			return err
		}
		writeProperty(cmd.OutOrStdout(), rec)
		return nil
	},
}

var suburbCmd = &cobra.Command{
	Use:   "suburb [name]",
	Short: "Summarise sales in a suburb",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := appState.Get().Dataset()
		if err != nil {
			return err
		}
		summary, err := data.SuburbTrends(strings.Join(args, " "))
		if err != nil {
			return err
		}
		writeSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

var suburbsCmd = &cobra.Command{
	Use:   "suburbs",
	Short: "List every suburb in the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := appState.Get().Dataset()
		if err != nil {
			return err
		}
		for _, suburb := range data.Suburbs() {
			fmt.Fprintln(cmd.OutOrStdout(), suburb)
		}
		return nil
	},
}

func init() {
	DatasetCmd.AddCommand(infoCmd, propertyCmd, suburbCmd, suburbsCmd)
}
