package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/server"
	"github.com/buckcalc/buckcalc/pkg/version"
)

var (
	listenAddr     = "127.0.0.1:8421"
	unixSocketPath = ""
)

// NewServeCommand .
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the calculator over HTTP",
		GroupID: gAdvanced,
		Long: `Serve the calculator over HTTP in the foreground.

Endpoints:
  POST /calculate  evaluate the parameters in the JSON body (config file keys),
                   missing keys come from --config and the built-in defaults
  GET  /defaults   the server-side parameters
  GET  /version    the server version

Send SIGHUP to reload the config file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("buckcalc server starting")

			conf, err := config.NewFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			return server.New(conf).Run(listenAddr, unixSocketPath)
		},
	}

	f := cmd.Flags()

	f.StringVar(&listenAddr, "listen", listenAddr, "TCP address to listen on")
	f.StringVar(&unixSocketPath, "unix-socket", "", "listen on this unix socket instead of --listen")

	return cmd
}
