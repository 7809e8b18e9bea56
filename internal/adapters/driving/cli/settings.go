package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gproxy/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in config.toml.

Environment overrides (PORT, GPROXY_ADDR) are applied on top when shown.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set one key in config.toml. A running server picks up log.level and
proxy.mock_fallback immediately; other keys apply on restart.

Examples:
  gproxy settings set proxy.mock_fallback true
  gproxy settings set server.addr :8080
  gproxy settings set google.credential_paths /etc/gproxy/sa.json,./sa.json`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	s := a.Settings.Get()

	cmd.Println(headingStyle.Render("Current Settings"))
	cmd.Println(mutedStyle.Render("  " + a.ConfigStore.Path()))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Println(field("Address", s.Server.Addr))
	cmd.Println(field("Timeouts", fmt.Sprintf("read %s, write %s, shutdown %s",
		s.Server.ReadTimeout, s.Server.WriteTimeout, s.Server.ShutdownTimeout)))
	cmd.Println(field("Rate limit", fmt.Sprintf("%g/s burst %d per client", s.Server.RateLimitRPS, s.Server.RateLimitBurst)))
	cmd.Println()

	cmd.Println("[Google]")
	paths := "(none)"
	if len(s.Google.CredentialPaths) > 0 {
		paths = strings.Join(s.Google.CredentialPaths, ", ")
	}
	cmd.Println(field("Key paths", paths))
	cmd.Println(field("Sheets", fmt.Sprintf("%g/s burst %d", s.RateLimit.SheetsRPS, s.RateLimit.SheetsBurst)))
	cmd.Println(field("Drive", fmt.Sprintf("%g/s burst %d", s.RateLimit.DriveRPS, s.RateLimit.DriveBurst)))
	cmd.Println(field("Mock data", onOff(s.Proxy.MockFallback)))
	cmd.Println()

	cmd.Println("[Auth]")
	cmd.Println(field("Session TTL", s.Auth.SessionTTL.String()))
	cmd.Println(field("Sweep", s.Auth.SweepInterval.String()))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Println(field("Level", s.Log.Level))
	cmd.Println(field("Format", string(s.Log.Format)))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	if !slices.Contains(services.SettingsKeys(), key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(services.SettingsKeys(), ", "))
	}

	if err := a.ConfigStore.Set(key, parseValue(key, args[1])); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if _, err := a.Settings.Reload(); err != nil {
		return err
	}

	cmd.Printf("%s = %s\n", key, args[1])
	return nil
}

// parseValue converts a command-line value to the TOML type the key expects.
func parseValue(key, raw string) any {
	if key == "google.credential_paths" {
		return splitList(raw)
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func onOff(b bool) string {
	if b {
		return okStyle.Render("on")
	}
	return "off"
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(password), nil
	}
	// Fallback to regular input
	line := readLine(bufio.NewReader(in))
	if line == "" {
		return "", errors.New("empty password")
	}
	return line, nil
}
