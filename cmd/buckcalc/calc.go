package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/buckcalc/buckcalc/pkg/buck"
	"github.com/buckcalc/buckcalc/pkg/client"
	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/types"
	"github.com/buckcalc/buckcalc/pkg/utils/siformat"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func runCalc(cmd *cobra.Command, _ []string) error {
	if outputFormat != outputText && outputFormat != outputJSON {
		return fmt.Errorf("unknown output format %q, expected %s or %s", outputFormat, outputText, outputJSON)
	}

	conf, err := loadParams(cmd.Flags())
	if err != nil {
		return err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("parameters resolved")

	res, err := evaluate(conf)
	if err != nil {
		return err
	}

	if d := res.DutyCycle; d <= 0 || d > 1 {
		logrus.WithField("dutyCycle", d).Warn("duty cycle is outside (0, 1], a buck converter cannot reach this operating point")
	}

	if outputFormat == outputJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	printResult(cmd.OutOrStdout(), res)

	return nil
}

// evaluate runs the calculation locally, or on the server if --server is set.
func evaluate(conf *config.File) (*types.Result, error) {
	if serverAddr != "" {
		res, err := client.NewClient(serverAddr).Calculate(conf.Raw())
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate on %s: %w", serverAddr, err)
		}
		return res, nil
	}

	res, err := buck.Evaluate(conf.OperatingPoint())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate operating point: %w", err)
	}

	return types.NewResult(res, conf.Raw()), nil
}

func printResult(w io.Writer, res *types.Result) {
	fmt.Fprintf(w, "Duty Cycle: %s\n", bold("%.2f", res.DutyCycle))
	fmt.Fprintf(w, "Min ceramic capacitance: %s\n", bold("%s", siformat.Fixed(res.MinCeramicCapacitanceMicrofarads, 3, "µF")))
	fmt.Fprintf(w, "Min bulk capacitance: %s\n", bold("%s", siformat.Fixed(res.MinBulkCapacitanceMicrofarads, 1, "µF")))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
