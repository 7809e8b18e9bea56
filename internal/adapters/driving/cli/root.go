package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gproxy/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// application is built on first use by a command that needs it.
var application *App

var rootCmd = &cobra.Command{
	Use:   "gproxy",
	Short: "Google Sheets and Drive proxy",
	Long: `gproxy exposes Google Sheets and Drive through a small JSON API
authorised by a service account, plus dashboard login and demo data routes.

Credentials are looked up in GOOGLE_APPLICATION_CREDENTIALS,
GOOGLE_SERVICE_ACCOUNT_KEY_PATH, GOOGLE_CREDENTIALS_PATH, the paths in
config.toml, and the default locations. Without one the proxy still runs,
and Google routes answer 503.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env is normal; set variables always win.
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("loading .env: %v", err)
		}
		logger.SetVerbose(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Config directory (default $GPROXY_CONFIG_DIR or ~/.gproxy)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"Database directory (default $GPROXY_DATA_DIR or <config-dir>/data)")
}

// Execute runs the root command until it finishes or the process is signalled.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if application != nil {
			_ = application.Close()
		}
		_ = logger.Sync()
	}()
	return rootCmd.ExecuteContext(ctx)
}

// loadApp returns the shared application, building it from the flags and
// environment the first time.
func loadApp() (*App, error) {
	if application != nil {
		return application, nil
	}
	dir := configDir
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	data := dataDir
	if data == "" {
		data = os.Getenv(EnvDataDir)
	}
	a, err := NewApp(AppOptions{ConfigDir: dir, DataDir: data})
	if err != nil {
		return nil, err
	}
	application = a
	return a, nil
}
