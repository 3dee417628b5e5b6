package buck

import (
	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/unit"
)

const (
	// ParasiticInductance is added to the input inductor to account for PCB
	// traces and connectors, and for boards with no input inductor at all.
	ParasiticInductance = 50 * unit.Nano * unit.Henry

	// BulkDerating is the empirical factor of the SLTA055 bulk capacitance
	// formula.
	BulkDerating unit.Dimless = 1.21
)

// DutyCycle returns the steady-state duty cycle of the high-side switch,
// vOut / (vIn * eta).
//
// The result is not clamped to (0, 1]. A zero vIn or eta gives +Inf or NaN.
func DutyCycle(vIn, vOut unit.Voltage, eta unit.Dimless) unit.Dimless {
	return unit.Dimless(float64(vOut) / (float64(vIn) * float64(eta)))
}

// MinCeramicCapacitance returns the minimum input ceramic capacitance that
// keeps the peak-to-peak input ripple below vPPMax while the converter
// delivers iOut at switching frequency fSw.
func MinCeramicCapacitance(vIn, vOut unit.Voltage, iOut unit.Current, eta unit.Dimless, fSw unit.Frequency, vPPMax unit.Voltage) unit.Capacitance {
	d := DutyCycle(vIn, vOut, eta)

	// D * (1 - D) is the shape of the pulsed input current, largest at D = 0.5.
	q := iOut.Unit().
		Mul(d * (1 - d)).
		Div(fSw).
		Div(vPPMax)

	return mustCapacitance(q)
}

// MinBulkCapacitance returns the minimum input bulk capacitance needed to
// absorb an output load step of iTrMax while the input rail deviates by no
// more than dvMax. lIn is the discrete input inductor, zero if none is fitted.
func MinBulkCapacitance(vIn, vOut unit.Voltage, eta unit.Dimless, iTrMax unit.Current, dvMax unit.Voltage, lIn unit.Inductance) unit.Capacitance {
	// Input side of the output step.
	iTr := unit.Current(float64(DutyCycle(vIn, vOut, eta)) * float64(iTrMax))
	lEff := ParasiticInductance + lIn

	q := BulkDerating.Unit().
		Mul(iTr).
		Mul(iTr).
		Mul(lEff).
		Div(dvMax).
		Div(dvMax)

	return mustCapacitance(q)
}

// mustCapacitance converts a formula result into farads. The formulas above
// are fixed, so a dimension mismatch is a programming error.
func mustCapacitance(q *unit.Unit) unit.Capacitance {
	var c unit.Capacitance
	if err := c.From(q); err != nil {
		panic(pkgerrors.Wrapf(err, "capacitance formula produced %v", q))
	}
	return c
}
