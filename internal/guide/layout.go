// SPDX-License-Identifier: MIT

package guide

import "time"

// The timeline renders a fixed 24-hour grid of 30-minute slots, each slot
// SlotWidth pixel units wide.
const (
	SlotMinutes   = 30
	SlotWidth     = 100
	MinBlockWidth = 100
)

// Rect is the horizontal placement of one programme block, in pixel units.
type Rect struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Layout positions a programme on the timeline of the day its start falls on.
// The width is floored at MinBlockWidth so short (or inverted) programmes stay
// legible; a stop before start is not special-cased beyond that floor.
func Layout(start, stop time.Time) Rect {
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	startMinutes := start.Sub(midnight).Minutes()
	stopMinutes := stop.Sub(midnight).Minutes()
	duration := stopMinutes - startMinutes

	width := duration / SlotMinutes * SlotWidth
	if width < MinBlockWidth {
		width = MinBlockWidth
	}
	return Rect{
		Left:  startMinutes / SlotMinutes * SlotWidth,
		Width: width,
	}
}
