// Package units converts and labels temperatures.
package units

import (
	"fmt"
	"strings"
)

// Unit is a temperature scale suffix shown next to a reading.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ConvertToF converts a Celsius reading to Fahrenheit. No rounding is applied.
func ConvertToF(celsius float64) float64 {
	return celsius*9/5 + 32
}

// ConvertToC converts a Fahrenheit reading to Celsius.
func ConvertToC(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}

// ParseUnit accepts "C"/"F" (case-insensitive) and the long names.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("unknown temperature unit %q", s)
	}
}

// UnitFor returns the suffix matching the celsius preference flag.
func UnitFor(isCelsius bool) Unit {
	if isCelsius {
		return Celsius
	}
	return Fahrenheit
}

// Display returns the reading expressed in the preferred unit.
// Stored readings are always Celsius.
func Display(celsius float64, isCelsius bool) float64 {
	if isCelsius {
		return celsius
	}
	return ConvertToF(celsius)
}
