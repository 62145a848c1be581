// SPDX-License-Identifier: MIT

package guide

import (
	"strings"
	"time"

	"github.com/epgview/epgview/internal/epg"
)

// Fallback sentinels for absent optional fields.
const (
	FallbackChannelName = "Unnamed channel"
	FallbackTitle       = "Untitled"
	DetailNoTitle       = "No title"
	DetailNoDescription = "No description"
)

// Schedule is the renderable timeline for one day: one row per channel in
// document order.
type Schedule struct {
	Day  Day   `json:"day"`
	Rows []Row `json:"rows"`
}

// Row holds one channel and its positioned programme blocks.
type Row struct {
	ChannelID string  `json:"channel_id"`
	Channel   string  `json:"channel"`
	Blocks    []Block `json:"blocks"`
}

// Block is one programme placed on the timeline together with its projected
// detail record.
type Block struct {
	Rect
	Title       string `json:"title"`
	TimeRange   string `json:"time_range"`
	Description string `json:"description,omitempty"`
	Detail      Detail `json:"detail"`
}

// Detail is the modal projection of a programme. Pure view data, no mutation
// of the underlying document.
type Detail struct {
	Title       string `json:"title"`
	TimeRange   string `json:"time_range"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
}

// Options adjusts schedule construction.
type Options struct {
	// ChannelQuery keeps only channels whose normalized display name contains
	// the normalized query. Empty keeps every channel.
	ChannelQuery string
}

// Build walks doc and produces the schedule for day: channels in document
// order, each with the blocks of its programmes whose start instant falls on
// day. Programmes without a parseable start or stop are skipped.
func Build(doc *epg.TV, day Day, opts Options) Schedule {
	byChannel := make(map[string][]epg.Programme, len(doc.Channels))
	for _, p := range doc.Programs {
		byChannel[p.Channel] = append(byChannel[p.Channel], p)
	}

	query := epg.NameKey(opts.ChannelQuery)

	sched := Schedule{Day: day, Rows: make([]Row, 0, len(doc.Channels))}
	for _, ch := range doc.Channels {
		name := ch.Name()
		if name == "" {
			name = FallbackChannelName
		}
		if query != "" && !strings.Contains(epg.NameKey(ch.Name()), query) {
			continue
		}

		row := Row{ChannelID: ch.ID, Channel: name, Blocks: []Block{}}
		for _, p := range byChannel[ch.ID] {
			start, ok := epg.ParseTime(p.Start)
			if !ok {
				continue
			}
			stop, ok := epg.ParseTime(p.Stop)
			if !ok {
				continue
			}
			if !day.Contains(start) {
				continue
			}
			row.Blocks = append(row.Blocks, buildBlock(p, name, start, stop))
		}
		sched.Rows = append(sched.Rows, row)
	}
	return sched
}

func buildBlock(p epg.Programme, channel string, start, stop time.Time) Block {
	label := TimeRange(start, stop)

	title := p.Title.Value
	if title == "" {
		title = FallbackTitle
	}

	detailTitle := p.Title.Value
	if detailTitle == "" {
		detailTitle = DetailNoTitle
	}
	desc := p.Desc
	if desc == "" {
		desc = DetailNoDescription
	}

	return Block{
		Rect:        Layout(start, stop),
		Title:       title,
		TimeRange:   label,
		Description: p.Desc,
		Detail: Detail{
			Title:       detailTitle,
			TimeRange:   label,
			Channel:     channel,
			Description: desc,
		},
	}
}

// TimeRange renders the 24-hour HH:MM label for a programme.
func TimeRange(start, stop time.Time) string {
	return start.Format("15:04") + " - " + stop.Format("15:04")
}

// TimeSlots returns the 48 half-hour labels heading the timeline,
// "00:00" through "23:30".
func TimeSlots() []string {
	slots := make([]string, 0, 24*60/SlotMinutes)
	for hour := 0; hour < 24; hour++ {
		for min := 0; min < 60; min += SlotMinutes {
			slots = append(slots, time.Date(0, 1, 1, hour, min, 0, 0, time.UTC).Format("15:04"))
		}
	}
	return slots
}
