package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gproxy/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gproxy/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/gproxy/internal/adapters/driving/mcp"
	"github.com/custodia-labs/gproxy/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP proxy",
	Long: `Run the HTTP proxy until interrupted.

The listen address comes from --addr, then GPROXY_ADDR, then PORT, then
server.addr in config.toml (default :3001). Edits to config.toml are picked
up while running for log.level and proxy.mock_fallback.

Examples:
  gproxy serve
  gproxy serve --addr 127.0.0.1:8080
  gproxy serve --mcp-port 8090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// Flags for serve.
var (
	serveAddr    string
	serveMCPPort int
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config and environment)")
	serveCmd.Flags().IntVar(&serveMCPPort, "mcp-port", 0, "Also serve MCP over HTTP on this port (0 = off)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	settings := a.Settings.Get()
	if serveAddr != "" {
		settings.Server.Addr = serveAddr
	}

	logger.Section("gproxy " + version)
	if _, ok := a.Credentials.Resolve(); !ok && settings.Proxy.MockFallback {
		logger.Info("mock fallback enabled; Sheets and Drive reads serve demo data")
	}

	var mcpServer *mcp.Server
	if serveMCPPort > 0 {
		if mcpServer, err = newMCPServer(); err != nil {
			return err
		}
	}

	server := httpapi.NewServer(a.Router(settings), settings.Server)
	if err := server.Listen(); err != nil {
		return err
	}
	cmd.Printf("gproxy listening on %s\n", server.Addr())

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return server.Run(ctx)
	})
	g.Go(func() error {
		return a.Sweeper.Start(ctx)
	})
	g.Go(func() error {
		return file.NewWatcher(a.ConfigStore, a.Reload).Run(ctx)
	})

	if mcpServer != nil {
		addr := fmt.Sprintf(":%d", serveMCPPort)
		g.Go(func() error {
			return mcpServer.RunHTTP(ctx, addr)
		})
	}

	return g.Wait()
}
