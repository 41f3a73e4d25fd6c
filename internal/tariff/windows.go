package tariff

import "time"

// Window is a half-open [Start,End) hour interval with hours in [0,24].
type Window struct {
	Start int
	End   int
}

// Set is an immutable collection of hour windows. Windows that cross
// midnight are expressed as two explicit segments (e.g. [22,24) plus [0,6));
// the set does no wraparound arithmetic.
type Set struct {
	windows []Window
}

func NewSet(windows ...Window) Set {
	ws := make([]Window, len(windows))
	copy(ws, windows)
	return Set{windows: ws}
}

// Contains reports whether the hour falls inside any window.
func (s Set) Contains(hour int) bool {
	for _, w := range s.windows {
		if w.Start <= hour && hour < w.End {
			return true
		}
	}
	return false
}

// Windows returns a copy of the underlying segments.
func (s Set) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// G12Windows returns the day and night window sets for the two-zone G12
// tariff family.
//
// Night (off-peak):
//   - winter (Oct-Mar): 13:00-15:00 and 22:00-06:00
//   - summer (Apr-Sep): 15:00-17:00 and 22:00-06:00
//
// Day is the complement within 06:00-22:00. Meters without summer/winter
// switching run the winter shape year-round.
func G12Windows(month time.Month, summerWinter bool) (day, night Set) {
	if !summerWinter {
		return NewSet(Window{6, 13}, Window{15, 22}),
			NewSet(Window{13, 15}, Window{22, 24}, Window{0, 6})
	}
	if month >= time.April && month <= time.September {
		return NewSet(Window{6, 15}, Window{17, 22}),
			NewSet(Window{15, 17}, Window{22, 24}, Window{0, 6})
	}
	return NewSet(Window{6, 13}, Window{15, 22}),
		NewSet(Window{13, 15}, Window{22, 24}, Window{0, 6})
}
