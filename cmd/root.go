package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the integrations service
var rootCmd = &cobra.Command{
	Use:   "integrations",
	Short: "OAuth connector service for third-party SaaS accounts",
	Long: `integrations drives the popup-based OAuth flow that lets users connect
third-party accounts (HubSpot, Notion, Airtable) and lists the resources
those accounts expose.

Credentials are parked in redis (or an in-process cache when redis is
unreachable) and handed to the caller exactly once.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "integrations version %s\n" .Version}}`)

	// If no subcommand is provided, run the server by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
