// Package units converts between the storage units (kilograms, centimeters)
// and a user's display units. All functions fail soft: bad input yields 0.
package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type WeightUnit string

type HeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"

	Centimeters HeightUnit = "cm"
	FeetInches  HeightUnit = "ft"
)

const (
	PoundsPerKilogram  = 2.20462
	CentimetersPerInch = 2.54
	inchesPerFoot      = 12
)

// Valid reports whether u is a known weight unit.
func (u WeightUnit) Valid() bool {
	return u == Kilograms || u == Pounds
}

// Valid reports whether u is a known height unit.
func (u HeightUnit) Valid() bool {
	return u == Centimeters || u == FeetInches
}

// leading numeric prefix, the way form input is read ("82.5kg" -> 82.5)
var numberPrefix = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading number of s. ok is false when s does not start
// with a finite number.
func ParseNumber(s string) (float64, bool) {
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ToDisplayWeight converts kilograms to the display unit, rounded to one decimal.
func ToDisplayWeight(kg float64, unit WeightUnit) float64 {
	if kg == 0 || !finite(kg) {
		return 0
	}
	if unit == Pounds {
		return round1(kg * PoundsPerKilogram)
	}
	return round1(kg)
}

// ToStorageWeight converts a display-unit form value to kilograms.
// Non-numeric input yields 0.
func ToStorageWeight(display string, unit WeightUnit) float64 {
	v, ok := ParseNumber(display)
	if !ok {
		return 0
	}
	return ToStorageWeightValue(v, unit)
}

// ToStorageWeightValue converts an already-numeric display value to kilograms.
func ToStorageWeightValue(v float64, unit WeightUnit) float64 {
	if !finite(v) {
		return 0
	}
	if unit == Pounds {
		return v / PoundsPerKilogram
	}
	return v
}

// ToDisplayHeight renders centimeters in the display unit: "175" or `5'9"`.
// A zero height renders as the empty string.
func ToDisplayHeight(cm float64, unit HeightUnit) string {
	if cm == 0 || !finite(cm) {
		return ""
	}
	if unit != FeetInches {
		return strconv.Itoa(int(math.Round(cm)))
	}

	totalInches := cm / CentimetersPerInch
	feet := int(math.Floor(totalInches / inchesPerFoot))
	inches := int(math.Round(math.Mod(totalInches, inchesPerFoot)))
	if inches == inchesPerFoot {
		feet++
		inches = 0
	}
	return fmt.Sprintf(`%d'%d"`, feet, inches)
}

// ToStorageHeight converts form input to centimeters. For centimeters only
// value1 is read; for feet/inches value1 is feet and value2 inches, a missing
// value counting as 0.
func ToStorageHeight(value1, value2 string, unit HeightUnit) float64 {
	if unit != FeetInches {
		v, _ := ParseNumber(value1)
		return v
	}
	feet, _ := ParseNumber(value1)
	inches, _ := ParseNumber(value2)
	return (feet*inchesPerFoot + inches) * CentimetersPerInch
}

// WeightLabel is the unit suffix shown next to weights.
func WeightLabel(unit WeightUnit) string {
	if unit == Pounds {
		return "lbs"
	}
	return "kg"
}

// HeightLabel is the unit suffix shown next to heights. Feet/inches values
// carry their own marks, so the label is empty.
func HeightLabel(unit HeightUnit) string {
	if unit == FeetInches {
		return ""
	}
	return "cm"
}

// FormatWeight formats a display weight with one decimal ("220.0").
func FormatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
