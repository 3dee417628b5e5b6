package buck

import "gonum.org/v1/gonum/unit"

const (
	microfaradsPerFarad = 1e6
	nanohenriesPerHenry = 1e9
)

// Microfarads converts c to microfarads, the unit every result is displayed in.
func Microfarads(c unit.Capacitance) float64 {
	return float64(c) * microfaradsPerFarad
}

// FromMicrofarads is the inverse of Microfarads.
func FromMicrofarads(uf float64) unit.Capacitance {
	return unit.Capacitance(uf / microfaradsPerFarad)
}

// Nanohenries converts l to nanohenries, the unit of the input inductor flag.
func Nanohenries(l unit.Inductance) float64 {
	return float64(l) * nanohenriesPerHenry
}

// FromNanohenries is the inverse of Nanohenries.
func FromNanohenries(nh float64) unit.Inductance {
	return unit.Inductance(nh / nanohenriesPerHenry)
}
