// SPDX-License-Identifier: MIT

package guide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2024, time.March, 15, h, m, 0, 0, time.Local)
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name        string
		start, stop time.Time
		want        Rect
	}{
		{
			name:  "morning_show",
			start: at(8, 0),
			stop:  at(9, 30),
			want:  Rect{Left: 1600, Width: 300},
		},
		{
			name:  "midnight_start",
			start: at(0, 0),
			stop:  at(0, 30),
			want:  Rect{Left: 0, Width: 100},
		},
		{
			name:  "short_programme_floored",
			start: at(12, 0),
			stop:  at(12, 10),
			want:  Rect{Left: 2400, Width: 100},
		},
		{
			name:  "zero_duration_floored",
			start: at(6, 0),
			stop:  at(6, 0),
			want:  Rect{Left: 1200, Width: 100},
		},
		{
			name:  "inverted_stop_floored",
			start: at(10, 0),
			stop:  at(9, 0),
			want:  Rect{Left: 2000, Width: 100},
		},
		{
			name:  "crosses_midnight",
			start: at(23, 30),
			stop:  at(23, 30).Add(time.Hour),
			want:  Rect{Left: 4700, Width: 200},
		},
		{
			name:  "single_minute_granularity",
			start: at(8, 1),
			stop:  at(9, 1),
			want:  Rect{Left: 1600 + 100.0/30.0, Width: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Layout(tt.start, tt.stop)
			assert.InDelta(t, tt.want.Left, got.Left, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
		})
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	start, stop := at(14, 15), at(16, 45)
	first := Layout(start, stop)
	second := Layout(start, stop)
	assert.Equal(t, first, second)
}

func TestLayoutWidthNeverBelowMinimum(t *testing.T) {
	for dur := -120; dur <= 120; dur += 7 {
		stop := at(12, 0).Add(time.Duration(dur) * time.Minute)
		got := Layout(at(12, 0), stop)
		assert.GreaterOrEqual(t, got.Width, float64(MinBlockWidth), "duration %d", dur)
	}
}
