// SPDX-License-Identifier: MIT

package epg

import (
	"strconv"
	"strings"
	"time"
)

// compactLen is the length of the XMLTV compact timestamp: YYYYMMDDHHMMSS.
const compactLen = 14

// ParseTime parses an XMLTV compact timestamp. Only the leading 14 characters
// are read; a trailing timezone suffix (" +0000") is ignored and the instant is
// interpreted in local time. Missing or too-short input yields ok=false.
//
// Field ranges are deliberately not validated: out-of-range components such as
// month 13 normalize through time.Date rather than failing.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < compactLen {
		return time.Time{}, false
	}
	s = s[:compactLen]
	for i := 0; i < compactLen; i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}

	num := func(from, to int) int {
		n, _ := strconv.Atoi(s[from:to])
		return n
	}
	t := time.Date(num(0, 4), time.Month(num(4, 6)), num(6, 8),
		num(8, 10), num(10, 12), num(12, 14), 0, time.Local)
	return t, true
}

// FormatTime renders t as an XMLTV compact timestamp without timezone suffix.
func FormatTime(t time.Time) string {
	return t.Format("20060102150405")
}
