// Command gproxy runs the Google Sheets and Drive proxy.
package main

import (
	"os"

	"github.com/custodia-labs/gproxy/internal/adapters/driving/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
