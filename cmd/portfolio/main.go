package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/31Joojo/portfolio/cmd/commands"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal data-visualization portfolio dashboard",
	Long: `Portfolio serves a small personal dashboard: a home page plus data
analysis pages, rendered from declarative page instructions and styled
through a TOML configuration file.

Run without a subcommand to start the dashboard server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation behaves like "portfolio serve".
		serve := commands.NewServeCommand()
		serve.SetArgs(args)
		return serve.Execute()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("portfolio version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
