package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/buckcalc/buckcalc/pkg/buck"
	"github.com/buckcalc/buckcalc/pkg/client"
)

var (
	logLevel     = "info"
	configPath   = ""
	serverAddr   = ""
	outputFormat = outputText
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, buck.ErrInvalidParameter):
		fmt.Fprintln(os.Stderr, "\nThe operating point cannot be evaluated. Check the values passed with flags or set in the config file.")
	case errors.Is(err, client.ErrBadRequest):
		fmt.Fprintln(os.Stderr, "\nThe server rejected the parameters.")
	case errors.Is(err, client.ErrServerNotRunning):
		fmt.Fprintf(os.Stderr, "\nError: no buckcalc server is listening on %s\n", serverAddr)
		fmt.Fprintln(os.Stderr, "Start one with 'buckcalc serve', or drop '--server' to calculate locally.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintf(os.Stderr, "  - Check the permissions of %s\n", serverAddr)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckcalc",
		Short: "buckcalc sizes the input capacitors of a buck converter",
		Long: `buckcalc sizes the input capacitors of a buck converter.

Given one operating point, it prints the duty cycle, the minimum input ceramic
capacitance that keeps the input ripple below --v-pp-max, and the minimum input
bulk capacitance that holds the rail within --v-out-tr-max-allowed during a
load step of --i-out-tr-max. Formulas follow TI SLTA055.

Parameters come from flags, then the config file (--config), then built-in
defaults.`,
		Example: `  buckcalc
  buckcalc --v-in 12 --v-out 3.3 --i-out 3 --f-sw 1e6
  buckcalc --config board.json --output json
  buckcalc --server /tmp/buckcalc.sock --v-out 1.8`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: runCalc,
	}

	// SilenceUsage hides the usage for runtime errors, but a malformed flag
	// should still show it.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return err
	})

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", "", "config file path (JSON); a missing file means built-in defaults")

	registerParamFlags(cmd.Flags())
	cmd.Flags().StringVarP(&outputFormat, "output", "o", outputText, "output format (text, json)")
	cmd.Flags().StringVar(&serverAddr, "server", "", "evaluate on a running 'buckcalc serve' (http://host:port or unix socket path)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewConfigCommand(),
		NewServeCommand(),
	)

	return cmd
}
