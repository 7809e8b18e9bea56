package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Show where the Google service-account key is found",
	Long: `Show the result of credential discovery and every location checked,
in order. The first existing file wins; inline GOOGLE_SERVICE_ACCOUNT_EMAIL
and GOOGLE_PRIVATE_KEY are used when no file exists.`,
	Args: cobra.NoArgs,
	RunE: runCredentials,
}

func init() {
	rootCmd.AddCommand(credentialsCmd)
}

func runCredentials(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	printCredentials(cmd, a.Credentials)
	return nil
}

func printCredentials(cmd *cobra.Command, creds driving.CredentialService) {
	cmd.Println(headingStyle.Render("Google credentials"))

	cred, ok := creds.Resolve()
	if ok {
		cmd.Println(field("Status", okStyle.Render("configured")))
		source := string(cred.Source)
		if cred.Origin != "" {
			source = fmt.Sprintf("%s (%s)", source, cred.Origin)
		}
		cmd.Println(field("Source", source))
		cmd.Println(field("Location", cred.Describe()))
	} else {
		cmd.Println(field("Status", warnStyle.Render("not configured")))
		cmd.Println(mutedStyle.Render("  Google routes answer 503 until a key is provided."))
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Checked locations"))
	for _, c := range creds.Candidates() {
		mark := mutedStyle.Render("-")
		if c.Exists {
			mark = okStyle.Render("✓")
		}
		path := c.Path
		if path == "" {
			path = mutedStyle.Render("(unset)")
		}
		cmd.Printf("  %s %-32s %s\n", mark, c.Origin, path)
	}
}
