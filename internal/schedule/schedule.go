package schedule

import (
	"strconv"
	"strings"
)

// ParseClock converts a "HH:MM" wall-clock string to decimal hours
// (e.g. "09:30" -> 9.5). An empty or malformed string means "unset"
// and reports ok=false; callers treat unset endpoints as inactive
// rather than as errors.
func ParseClock(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60, true
}

// Window is an on/off pair of wall-clock times. A window is active only
// when both endpoints are set. When the off time precedes the on time
// the window spans midnight.
type Window struct {
	On  string `json:"on,omitempty" yaml:"on,omitempty"`
	Off string `json:"off,omitempty" yaml:"off,omitempty"`
}

// Contains reports whether the decimal hour t falls inside the window.
// Both boundaries count as inside.
func (w Window) Contains(t float64) bool {
	on, ok := ParseClock(w.On)
	if !ok {
		return false
	}
	off, ok := ParseClock(w.Off)
	if !ok {
		return false
	}
	if off < on {
		// Spans midnight: 22:00-02:00 covers late evening and early morning.
		return t >= on || t <= off
	}
	return t >= on && t <= off
}

// Schedule holds up to two independent on/off windows. The field names
// match the wire format used by the dashboard (on1/off1, on2/off2).
type Schedule struct {
	On1  string `json:"on1,omitempty" yaml:"on1,omitempty"`
	Off1 string `json:"off1,omitempty" yaml:"off1,omitempty"`
	On2  string `json:"on2,omitempty" yaml:"on2,omitempty"`
	Off2 string `json:"off2,omitempty" yaml:"off2,omitempty"`
}

// Windows returns the schedule's two windows. Incomplete windows are
// returned as-is; Contains treats them as never matching.
func (s Schedule) Windows() [2]Window {
	return [2]Window{
		{On: s.On1, Off: s.Off1},
		{On: s.On2, Off: s.Off2},
	}
}

// ActiveAt reports whether either window contains the decimal hour t.
// The windows are independent; overlap has no additional effect.
func (s Schedule) ActiveAt(t float64) bool {
	for _, w := range s.Windows() {
		if w.Contains(t) {
			return true
		}
	}
	return false
}
