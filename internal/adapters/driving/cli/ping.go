package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gproxy/internal/client"
)

var pingURL string

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check a running gproxy server",
	Long: `Call /health, /api/status and /api/google/health on a running server
and print what it reports. Unreachable servers are shown as down.`,
	Args: cobra.NoArgs,
	RunE: runPing,
}

func init() {
	pingCmd.Flags().StringVar(&pingURL, "url", "", "server URL (default http://localhost:<server.port>)")
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, _ []string) error {
	base := pingURL
	if base == "" {
		a, err := loadApp()
		if err != nil {
			return err
		}
		base = "http://localhost:" + portOf(a.Settings.Get().Server.Addr)
	}

	c := client.New(client.Config{BaseURL: base})
	ctx := cmd.Context()

	health := c.Health(ctx, client.Health{Status: "down"})
	cmd.Println(headingStyle.Render("gproxy at " + base))
	if health.Status == "down" {
		cmd.Println(field("Server", warnStyle.Render("down")))
		return fmt.Errorf("server at %s is not reachable", base)
	}
	cmd.Println(field("Server", okStyle.Render(health.Status)))

	status := c.Status(ctx, client.Status{Status: "unknown"})
	cmd.Println(field("Version", status.Version))
	cmd.Println(field("Uptime", fmt.Sprintf("%.0fs", status.Uptime)))

	gh := c.GoogleHealth(ctx, client.GoogleHealth{})
	cmd.Println(field("Google", onOff(gh.CredentialsConfigured)))
	return nil
}
