package buck

import (
	"errors"
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/unit"
)

// ErrInvalidParameter is returned by Validate and Evaluate for operating
// points the formulas cannot be evaluated on.
var ErrInvalidParameter = errors.New("invalid parameter")

// OperatingPoint is one set of converter parameters and design constraints.
type OperatingPoint struct {
	InputVoltage       unit.Voltage
	OutputVoltage      unit.Voltage
	OutputCurrent      unit.Current
	SwitchingFrequency unit.Frequency
	Efficiency         unit.Dimless

	// MaxRippleVoltage is the allowed peak-to-peak ripple on the input rail.
	MaxRippleVoltage unit.Voltage
	// MaxTransientCurrent is the size of the output load step, e.g. 2.4 A for
	// a load going from 0.1 A to 2.5 A.
	MaxTransientCurrent unit.Current
	// MaxTransientDeviation is the allowed voltage change during that step.
	MaxTransientDeviation unit.Voltage
	// InputInductance excludes ParasiticInductance, which is always added.
	InputInductance unit.Inductance
}

// Result holds the outputs of Evaluate.
type Result struct {
	DutyCycle             unit.Dimless
	MinCeramicCapacitance unit.Capacitance
	MinBulkCapacitance    unit.Capacitance
}

// DutyCycleInRange reports whether the duty cycle is physically reachable by
// a buck converter.
func (r Result) DutyCycleInRange() bool {
	return r.DutyCycle > 0 && r.DutyCycle <= 1
}

// Validate rejects operating points that would divide by zero or that carry
// negative magnitudes. All violations are reported, each wrapping
// ErrInvalidParameter.
func (op OperatingPoint) Validate() error {
	var errs []error

	positive := func(v float64, name, symbol string) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, pkgerrors.Wrapf(ErrInvalidParameter, "%s must be positive and finite, got %g %s", name, v, symbol))
		}
	}
	nonNegative := func(v float64, name, symbol string) {
		if !(v >= 0) || math.IsInf(v, 0) {
			errs = append(errs, pkgerrors.Wrapf(ErrInvalidParameter, "%s must be non-negative and finite, got %g %s", name, v, symbol))
		}
	}

	positive(float64(op.InputVoltage), "input voltage", "V")
	nonNegative(float64(op.OutputVoltage), "output voltage", "V")
	nonNegative(float64(op.OutputCurrent), "output current", "A")
	positive(float64(op.SwitchingFrequency), "switching frequency", "Hz")
	positive(float64(op.Efficiency), "efficiency", "")
	positive(float64(op.MaxRippleVoltage), "max ripple voltage", "V")
	nonNegative(float64(op.MaxTransientCurrent), "max transient current", "A")
	positive(float64(op.MaxTransientDeviation), "max transient deviation", "V")
	nonNegative(Nanohenries(op.InputInductance), "input inductance", "nH")

	return errors.Join(errs...)
}

// Evaluate validates op, then computes the duty cycle and both capacitances.
// Inputs that are valid on their own can still overflow or underflow in
// combination; a non-finite result is rejected with ErrInvalidParameter.
func Evaluate(op OperatingPoint) (Result, error) {
	if err := op.Validate(); err != nil {
		return Result{}, err
	}

	r := Result{
		DutyCycle: DutyCycle(op.InputVoltage, op.OutputVoltage, op.Efficiency),
		MinCeramicCapacitance: MinCeramicCapacitance(
			op.InputVoltage,
			op.OutputVoltage,
			op.OutputCurrent,
			op.Efficiency,
			op.SwitchingFrequency,
			op.MaxRippleVoltage,
		),
		MinBulkCapacitance: MinBulkCapacitance(
			op.InputVoltage,
			op.OutputVoltage,
			op.Efficiency,
			op.MaxTransientCurrent,
			op.MaxTransientDeviation,
			op.InputInductance,
		),
	}

	var errs []error
	finite := func(v float64, name string) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, pkgerrors.Wrapf(ErrInvalidParameter, "%s is not finite (%g), the parameters overflow in combination", name, v))
		}
	}
	finite(float64(r.DutyCycle), "duty cycle")
	finite(float64(r.MinCeramicCapacitance), "min ceramic capacitance")
	finite(float64(r.MinBulkCapacitance), "min bulk capacitance")
	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}

	return r, nil
}
