// Package buck sizes the input capacitors of a buck converter for a single
// operating point. The formulas follow TI SLTA055, "Input and Output
// Capacitor Selection":
//
//   - DutyCycle: D = Vout / (Vin * eta)
//   - MinCeramicCapacitance: C = Iout * D * (1 - D) / (fsw * Vpp)
//   - MinBulkCapacitance: C = 1.21 * (D * Itr)^2 * (50nH + Lin) / dV^2
//
// Every quantity is a gonum unit type held in its SI base unit (V, A, Hz, F,
// H). The capacitance formulas are evaluated as unit.Unit products, so a
// dimensional mistake fails loudly instead of printing a wrong number.
// Microfarads and nanohenries only appear at the display and flag boundary,
// see Microfarads and FromNanohenries.
//
// The formula functions do not guard their denominators. Use
// OperatingPoint.Validate, or Evaluate which calls it, to reject degenerate
// input before computing.
package buck
