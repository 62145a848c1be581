// SPDX-License-Identifier: MIT

package epg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		want time.Time
	}{
		{
			name: "plain_compact",
			in:   "20240315080000",
			ok:   true,
			want: time.Date(2024, time.March, 15, 8, 0, 0, 0, time.Local),
		},
		{
			name: "timezone_suffix_ignored",
			in:   "20240315093000 +0200",
			ok:   true,
			want: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local),
		},
		{
			name: "seconds_kept",
			in:   "20231231235959",
			ok:   true,
			want: time.Date(2023, time.December, 31, 23, 59, 59, 0, time.Local),
		},
		{
			name: "out_of_range_month_normalizes",
			in:   "20241301000000",
			ok:   true,
			want: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local),
		},
		{name: "empty", in: "", ok: false},
		{name: "whitespace_only", in: "   ", ok: false},
		{name: "too_short", in: "2024031508", ok: false},
		{name: "non_digit", in: "2024031508000x", ok: false},
		{name: "signed_field_rejected", in: "2024-3-15 08:00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTimeRoundTrip(t *testing.T) {
	for _, in := range []string{"20240315080000", "19991231060504", "20250601000000"} {
		got, ok := ParseTime(in)
		assert.True(t, ok)
		assert.Equal(t, in, FormatTime(got))
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "20240115203000", FormatTime(ts))
}
