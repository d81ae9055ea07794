package cli

import (
	"fmt"

	"github.com/ariel-frischer/bumplog/internal/config"
	clierrors "github.com/ariel-frischer/bumplog/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective bumplog configuration",
		Long: `Show the effective bumplog configuration as YAML.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags (--changelog, and bump flags at run time)
  2. Environment variables (BUMPLOG_*)
  3. Project config (.bumplog.yml, or legacy .bumplog.json)
  4. Built-in defaults`,
		Example: `  # Show current configuration
  bumplog config

  # Write a commented starter config
  bumplog config --template > .bumplog.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
				return err
			}
			return runConfigShow(cmd, opts)
		},
	}
	cmd.GroupID = GroupInfo
	cmd.Flags().BoolVar(&template, "template", false, "Print a commented config template instead")

	return cmd
}

func runConfigShow(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return exitWith(ExitInvalidArguments, clierrors.WrapWithMessage(err, clierrors.Configuration, "encoding configuration"))
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
