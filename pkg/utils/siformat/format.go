package siformat

import (
	"fmt"
	"math"
	"strconv"
)

// Fixed formats value with prec decimals followed by symbol, e.g.
// Fixed(9.4879, 3, "µF") is "9.488 µF".
func Fixed(value float64, prec int, symbol string) string {
	return strconv.FormatFloat(value, 'f', prec, 64) + " " + symbol
}

// FormatValueFactor formats value in base units with the SI prefix that
// keeps the mantissa in [1, 1000), e.g. 500000 Hz is "500.000 kHz".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case value == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case math.IsNaN(value) || math.IsInf(value, 0):
		return fmt.Sprintf("%v %s", value, unit)
	case absValue >= 1e9:
		return fmt.Sprintf("%.3f G%s", value/1e9, unit)
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f M%s", value/1e6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, unit)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f µ%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}
