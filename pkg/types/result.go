package types

import (
	"github.com/buckcalc/buckcalc/pkg/buck"
	"github.com/buckcalc/buckcalc/pkg/config"
)

// Result is the JSON view of one evaluation. It is shared between the server,
// the client and the CLI. Capacitances are in microfarads.
type Result struct {
	DutyCycle                        float64               `json:"dutyCycle"`
	MinCeramicCapacitanceMicrofarads float64               `json:"minCeramicCapacitanceMicrofarads"`
	MinBulkCapacitanceMicrofarads    float64               `json:"minBulkCapacitanceMicrofarads"`
	Parameters                       *config.RawFileConfig `json:"parameters,omitempty"`
}

func NewResult(r buck.Result, params *config.RawFileConfig) *Result {
	return &Result{
		DutyCycle:                        float64(r.DutyCycle),
		MinCeramicCapacitanceMicrofarads: buck.Microfarads(r.MinCeramicCapacitance),
		MinBulkCapacitanceMicrofarads:    buck.Microfarads(r.MinBulkCapacitance),
		Parameters:                       params,
	}
}
