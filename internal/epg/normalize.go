// SPDX-License-Identifier: MIT

package epg

import (
	"regexp"
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

var (
	suffix = regexp.MustCompile(`\s+(hd|uhd|4k)$`)
	space  = regexp.MustCompile(`\s+`)
)

// NameKey generates a normalized key from a channel name for matching: NFC
// form, lowercase, quality suffixes stripped, whitespace collapsed.
func NameKey(s string) string {
	s = unorm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	// Re-normalize after case conversion (lowercase may create new combining sequences)
	s = unorm.NFC.String(s)

	// Remove suffixes repeatedly until none remain (handles cases like "Ch HD UHD")
	for {
		before := s
		s = suffix.ReplaceAllString(s, "")
		if s == before {
			break
		}
	}

	s = space.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
