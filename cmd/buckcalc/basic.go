package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or save the effective parameters",
		GroupID: gBasic,
		Long: `Show or save the effective parameters.

The effective parameters are the config file (--config) on top of the built-in
defaults. Save writes them to a new config file, which can be edited and passed
back with --config.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective parameters as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := config.NewFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				return printJSON(cmd.OutOrStdout(), conf.Raw())
			},
		},
		&cobra.Command{
			Use:   "save [path]",
			Short: "Write the effective parameters to a config file",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				conf, err := config.NewFile(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}

				if err := config.NewFileFromConfig(conf.Raw(), args[0]).Save(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}

				logrus.Infof("saved parameters to %s", args[0])

				return nil
			},
		},
	)

	return cmd
}
