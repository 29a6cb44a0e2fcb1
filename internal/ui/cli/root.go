package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/appState"
	"github.com/isaacphi/realty/internal/config"
	"github.com/isaacphi/realty/internal/ui/cli/ask"
	"github.com/isaacphi/realty/internal/ui/cli/chat"
	configCmd "github.com/isaacphi/realty/internal/ui/cli/config"
	"github.com/isaacphi/realty/internal/ui/cli/dataset"
	"github.com/isaacphi/realty/internal/ui/cli/mcp"
	"github.com/isaacphi/realty/internal/ui/cli/tools"
	"github.com/isaacphi/realty/internal/ui/cli/traces"
)

var (
	logLevel      string
	logFile       string
	modelName     string
	datasetPath   string
	maxIterations int
)

var rootCmd = &cobra.Command{
	Use:               "realty",
	Short:             "Ask questions about Melbourne property sales",
	Long:              `A conversational assistant over a table of Melbourne property sales. It looks up addresses and suburb statistics with tools and answers in plain language.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Set up the root command to use this context
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model preset to use (see realty config models)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Property CSV to load instead of the configured one")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 0, "Model calls allowed per question")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if modelName != "" {
			overrides.ActiveModel = &modelName
		}
		if datasetPath != "" {
			overrides.DatasetPath = &datasetPath
		}
		if cmd.Flags().Changed("max-iterations") {
			overrides.MaxIterations = &maxIterations
		}
		return appState.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		chat.ChatCmd,
		ask.AskCmd,
		configCmd.ConfigCmd,
		tools.ToolsCmd,
		dataset.DatasetCmd,
		traces.TracesCmd,
		mcp.MCPCmd,
	)
}
