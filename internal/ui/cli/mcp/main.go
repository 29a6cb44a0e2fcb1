package mcp

import (
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/spf13/cobra"

	"github.com/isaacphi/realty/internal/appState"
	"github.com/isaacphi/realty/internal/mcp"
)

var MCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the property tools over MCP on stdio",
	Long:  "Run a Model Context Protocol server on stdin/stdout exposing find_property and suburb_trends to other assistants.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()
		registry, err := app.Registry()
		if err != nil {
			return err
		}
		tracer, err := app.Tracer()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(registry, tracer, stdio.NewStdioServerTransport())
		if err != nil {
			return err
		}
		app.Logger.Info("serving MCP on stdio")
		return server.Serve(cmd.Context())
	},
}
