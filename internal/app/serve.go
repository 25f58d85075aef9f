package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/cover-palette-mcp/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Run the MCP server. Requests are read from stdin and responses written to
stdout, one JSON-RPC message per line. Logs go to stderr.

Configure it in your MCP client (e.g., Claude Desktop) as the command
'cover-palette serve'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sv, err := newServices()
			if err != nil {
				return err
			}
			defer sv.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Debug() {
				log.Printf("Cover Palette MCP Server v%s (built %s, commit %s)", appVersion, appBuildTime, appCommit)
			}
			return server.New(sv.resolver, sv.service, appVersion).Run(ctx)
		},
	}
}
