// Package calc derives worked hours, overtime and pay from shift times.
package calc

import (
	"errors"
	"math"
	"strings"
)

// ErrIncomplete is returned by Daily when start or end is blank. Callers
// keep whatever they displayed before.
var ErrIncomplete = errors.New("start and end time are required")

// Shift is the outcome of a single day's calculation, in hours.
type Shift struct {
	Worked  float64
	Balance float64
}

// Daily computes worked hours and overtime balance for one shift. An end
// earlier than start is an overnight shift. When the clocked duration is
// shorter than the allocation the allocation is credited and no overtime
// accrues.
func Daily(start, end string, allocated float64) (Shift, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return Shift{}, ErrIncomplete
	}
	s, err := ParseClock(start)
	if err != nil {
		return Shift{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Shift{}, err
	}
	if math.IsNaN(allocated) || allocated < 0 {
		allocated = 0
	}

	diff := float64(e-s) / 60
	if diff < 0 {
		diff += 24
	}

	if allocated > diff {
		return Shift{Worked: allocated, Balance: 0}, nil
	}
	return Shift{Worked: diff, Balance: diff - allocated}, nil
}
