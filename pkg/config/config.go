package config

import (
	"github.com/sirupsen/logrus"

	"github.com/buckcalc/buckcalc/pkg/buck"
)

// Config is the source of the operating point parameters.
type Config interface {
	// OperatingPoint returns the parameters as typed quantities.
	OperatingPoint() buck.OperatingPoint
	// Raw returns a copy with every field populated, in config file units.
	Raw() *RawFileConfig
	// Merge overrides the parameters that are set in o.
	Merge(o *RawFileConfig)
	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
