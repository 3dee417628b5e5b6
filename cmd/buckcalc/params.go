package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/buckcalc/buckcalc/pkg/config"
	"github.com/buckcalc/buckcalc/pkg/utils/ptr"
)

// paramFlag binds a command line flag to a config field.
type paramFlag struct {
	name  string
	usage string
	field func(r *config.RawFileConfig) **float64
}

var paramFlags = []paramFlag{
	{"v-in", "input voltage in volts",
		func(r *config.RawFileConfig) **float64 { return &r.InputVoltage }},
	{"v-out", "output voltage in volts",
		func(r *config.RawFileConfig) **float64 { return &r.OutputVoltage }},
	{"i-out", "output current in amps",
		func(r *config.RawFileConfig) **float64 { return &r.OutputCurrent }},
	{"f-sw", "switching frequency in Hz",
		func(r *config.RawFileConfig) **float64 { return &r.SwitchingFrequency }},
	{"efficiency", "converter efficiency as a ratio (e.g. 0.9 for 90%)",
		func(r *config.RawFileConfig) **float64 { return &r.Efficiency }},
	{"v-pp-max", "maximum peak-to-peak input ripple in volts",
		func(r *config.RawFileConfig) **float64 { return &r.MaxRippleVoltage }},
	{"i-out-tr-max", "output load step in amps (0.1 A to 2.5 A is 2.4 A)",
		func(r *config.RawFileConfig) **float64 { return &r.MaxTransientCurrent }},
	{"v-out-tr-max-allowed", "maximum allowed voltage change during the load step, in volts",
		func(r *config.RawFileConfig) **float64 { return &r.MaxTransientDeviation }},
	{"input-inductor", "input inductor in nH, 50 nH of parasitics are always added",
		func(r *config.RawFileConfig) **float64 { return &r.InputInductanceNanohenries }},
}

func registerParamFlags(fs *pflag.FlagSet) {
	defaults := config.Default()
	for _, p := range paramFlags {
		fs.Float64(p.name, **p.field(defaults), p.usage)
	}
}

// paramOverrides returns the parameters explicitly set on the command line.
func paramOverrides(fs *pflag.FlagSet) (*config.RawFileConfig, error) {
	overrides := &config.RawFileConfig{}
	for _, p := range paramFlags {
		if !fs.Changed(p.name) {
			continue
		}
		v, err := fs.GetFloat64(p.name)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %v", p.name, err)
		}
		*p.field(overrides) = ptr.To(v)
	}

	return overrides, nil
}

// loadParams resolves the parameters: flags, then the config file, then the
// defaults.
func loadParams(fs *pflag.FlagSet) (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides, err := paramOverrides(fs)
	if err != nil {
		return nil, err
	}
	conf.Merge(overrides)

	return conf, nil
}
