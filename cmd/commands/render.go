package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/surface"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "render <page>",
		Short: "Render one page to the terminal",
		Long: `Render a single page to standard output, styled for the terminal.

Pages:
  home    - Home page
  music   - Music Data analysis
  fuel    - Government Data Analysis

Examples:
  # Render the home page
  portfolio render home

  # Render with a custom theme
  portfolio render music --config ./config.toml`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"home", "music", "fuel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(configPath, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to the TOML configuration file")
	return cmd
}

func runRender(configPath, id string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reg := page.Default()
	p, err := reg.Render(cfg, id)
	if err != nil {
		if errors.Is(err, page.ErrUnknownPage) {
			ids := make([]string, 0, len(reg.Entries()))
			for _, e := range reg.Entries() {
				ids = append(ids, e.ID)
			}
			return fmt.Errorf("unknown page %q (available: %s)", id, strings.Join(ids, ", "))
		}
		return err
	}

	term, err := surface.NewTerm(cfg)
	if err != nil {
		return err
	}

	return term.Paint(out, p)
}
