// Package units is the single crossing point between stored (kilogram) and
// displayed (pound) mass values. No other package may apply the conversion
// factor directly.
package units

import "math"

// PoundsPerKilogram is the fixed conversion factor: 1 kg = 2.20462 lb.
const PoundsPerKilogram = 2.20462

// ToKilograms converts a display (pound) value to the canonical kilogram
// value. Canonical values are stored at full precision and never rounded.
func ToKilograms(pounds float64) float64 {
	return pounds / PoundsPerKilogram
}

// ToPounds converts a canonical kilogram value to pounds at full precision.
func ToPounds(kg float64) float64 {
	return kg * PoundsPerKilogram
}

// DisplayPounds converts a canonical kilogram value to pounds rounded to the
// nearest whole unit, the form shown to the user. Round-tripping through
// display deliberately loses sub-unit precision; storage never does.
func DisplayPounds(kg float64) int {
	return int(math.Round(ToPounds(kg)))
}

// KgPtrFromPounds converts an optional display weight to an optional
// canonical one, preserving absence.
func KgPtrFromPounds(pounds *float64) *float64 {
	if pounds == nil {
		return nil
	}
	kg := ToKilograms(*pounds)
	return &kg
}

// DisplayPoundsPtr converts an optional canonical weight to an optional
// rounded display value, preserving absence.
func DisplayPoundsPtr(kg *float64) *int {
	if kg == nil {
		return nil
	}
	lbs := DisplayPounds(*kg)
	return &lbs
}
