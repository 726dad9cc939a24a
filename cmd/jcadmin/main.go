// Package main is the entry point for jcadmin, the administration server and
// command line for a jcblock call blocker. The serve command runs the HTTP API;
// the other commands run one operation against the jcblock files and print JSON.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
// Configuration may come from the environment or a YAML file instead.
func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: .env file could not be loaded: %v\n", err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		utils.LogError(err, map[string]interface{}{
			"status": utils.StatusCode(err),
		})
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
