package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	dxmcp "github.com/abhisek/dxtutor/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server on stdio",
	Long: `Start an MCP server on stdio

Exposes case retrieval, taxonomy highlighting, assessment and the scenario
list as Model Context Protocol tools. Logs go to stderr.`,
	Example: `  # claude_desktop_config.json
  # {
  #   "mcpServers": {
  #     "dxtutor": { "command": "dxtutor", "args": ["mcp"] }
  #   }
  # }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		server := dxmcp.New(a, version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("MCP server starting on stdio", "version", version)

		serverErr := make(chan error, 1)
		go func() {
			serverErr <- mcpserver.ServeStdio(server)
		}()

		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received")
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
		}
		return nil
	},
}
