// SPDX-License-Identifier: MIT

// Package epg models XMLTV guide documents and their compact timestamps.
package epg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// TV is the root element of an XMLTV document.
type TV struct {
	XMLName   xml.Name    `xml:"tv"`
	Generator string      `xml:"generator-info-name,attr,omitempty"`
	Channels  []Channel   `xml:"channel"`
	Programs  []Programme `xml:"programme"`
}

// Channel describes one channel. A channel may carry several display names;
// the first one is used for presentation.
type Channel struct {
	ID          string   `xml:"id,attr"`
	DisplayName []string `xml:"display-name"`
	Icon        *Icon    `xml:"icon,omitempty"`
}

type Icon struct {
	Src string `xml:"src,attr"`
}

// Programme is one broadcast entry. Programmes are stored flat in the document
// and associated to their channel by the Channel attribute.
type Programme struct {
	Start   string `xml:"start,attr"`
	Stop    string `xml:"stop,attr"`
	Channel string `xml:"channel,attr"`
	Title   Title  `xml:"title"`
	Desc    string `xml:"desc,omitempty"`
}

type Title struct {
	// Lang contains the language code for the title (optional).
	Lang string `xml:"lang,attr,omitempty"`
	// Value is the character data of the title element.
	Value string `xml:",chardata"`
}

// Name returns the first display name of the channel, or "" when none is set.
func (c Channel) Name() string {
	if len(c.DisplayName) == 0 {
		return ""
	}
	return c.DisplayName[0]
}

// maxDocSize caps guide documents at 50MB to prevent memory exhaustion.
const maxDocSize = 50 * 1024 * 1024

// Decode parses an XMLTV document from r.
func Decode(r io.Reader) (*TV, error) {
	var doc TV
	dec := xml.NewDecoder(io.LimitReader(r, maxDocSize))
	dec.Strict = true

	// Disable entity expansion to prevent XXE attacks
	dec.Entity = make(map[string]string)

	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode xmltv: %w", err)
	}
	return &doc, nil
}
