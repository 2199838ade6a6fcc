package calc

import "math"

// ToDecimal joins an hours field and a minutes field into decimal hours.
// Minutes are clamped to [0,59] and negative hours count as zero.
func ToDecimal(hours, minutes int) float64 {
	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 59 {
		minutes = 59
	}
	return float64(hours) + float64(minutes)/60
}

// FromDecimal splits decimal hours back into whole hours and minutes for
// editing. Rounding can land on 60 minutes, which is clamped to 59.
func FromDecimal(d float64) (hours, minutes int) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, 0
	}
	h := math.Floor(d)
	m := int(math.Round((d - h) * 60))
	if m > 59 {
		m = 59
	}
	return int(h), m
}
