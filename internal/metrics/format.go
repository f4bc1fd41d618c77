package metrics

import (
	"fmt"
	"math"
	"math/big"

	"github.com/julianstephens/habitdash/internal/constants"
)

// Change is a formatted percentage change with its styling tone
type Change struct {
	Value string
	Tone  constants.Tone
}

// FormatChange renders a signed percentage with an explicit sign and one
// decimal. Zero is non-negative.
func FormatChange(change float64) Change {
	value := roundTenths(math.Abs(change))
	if change >= 0 {
		return Change{
			Value: "+" + value + "%",
			Tone:  constants.TonePositive,
		}
	}
	return Change{
		Value: "-" + value + "%",
		Tone:  constants.ToneNegative,
	}
}

// roundTenths formats a non-negative x to one decimal, rounding half up on
// the exact binary value: 5.25 is a true tie and gives 5.3, while 0.15 is
// stored just below the tie and gives 0.1.
func roundTenths(x float64) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return fmt.Sprintf("%.1f", x)
	}
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(10))
	scaled.Add(scaled, big.NewFloat(0.5))
	n, _ := scaled.Int(nil)
	tenths := new(big.Int)
	whole, _ := new(big.Int).QuoRem(n, big.NewInt(10), tenths)
	return whole.String() + "." + tenths.String()
}

// FormatHours renders an hour count with one decimal, e.g. "10.5h".
// Negative input clamps to zero.
func FormatHours(hours float64) string {
	return roundTenths(max(hours, 0)) + "h"
}

// FormatTime renders minutes as "Xh Ym", dropping a zero minutes segment and
// the hours segment below one hour.
func FormatTime(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 0 {
		total = 0
	}
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	hours := total / 60
	mins := total % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatRate renders a 0-100 completion rate without decimals
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate)
}
