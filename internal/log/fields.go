// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Guide fields
	FieldDay       = "day"
	FieldChannel   = "channel"
	FieldSourceURL = "source_url"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
)
