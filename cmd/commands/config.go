package commands

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/31Joojo/portfolio/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration the dashboard would run with, as TOML.

Values from the configuration file are merged over the built-in defaults,
so the output shows the effective value of every key.

Examples:
  # Show the defaults
  portfolio config

  # Show the effective config for a file
  portfolio config --config ./config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(configPath, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to the TOML configuration file")
	return cmd
}

func runConfig(configPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return toml.NewEncoder(out).Encode(cfg)
}
