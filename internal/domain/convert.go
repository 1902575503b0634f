package domain

import (
	"fmt"
	"math"
)

// Unit is a mass unit used at the display and input boundary.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lb"
)

const (
	lbsPerKg      = 2.2046
	metersPerInch = 0.0254
	cmPerInch     = 2.54
)

// Round1 rounds v to one decimal place, ties away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// KgToLbs converts kilograms to pounds, rounded to one decimal.
func KgToLbs(kg float64) float64 {
	return Round1(kg * lbsPerKg)
}

// LbsToKg converts pounds to kilograms, rounded to one decimal.
func LbsToKg(lbs float64) float64 {
	return Round1(lbs / lbsPerKg)
}

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	if from == Kilograms && to == Pounds {
		return KgToLbs(v)
	}
	if from == Pounds && to == Kilograms {
		return LbsToKg(v)
	}
	return v
}

// MetersToFeetInches splits a height into whole feet and rounded inches.
// Inches that round up to 12 are not carried into feet.
func MetersToFeetInches(m float64) (feet, inches int) {
	return splitInches(m / metersPerInch)
}

// CentimetersToFeetInches is MetersToFeetInches for a height in centimeters.
func CentimetersToFeetInches(cm float64) (feet, inches int) {
	return splitInches(cm / cmPerInch)
}

func splitInches(total float64) (int, int) {
	feet := math.Floor(total / 12)
	inches := math.Round(math.Mod(total, 12))
	return int(feet), int(inches)
}

// FormatFeetInches renders a height as 5'9".
func FormatFeetInches(feet, inches int) string {
	return fmt.Sprintf("%d'%d\"", feet, inches)
}
