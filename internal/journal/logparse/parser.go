// Package logparse converts the semi-structured diary log format into
// typed events: dated sections, bare hour headers with 12-hour PM
// inference, and free-text note lines that get auto-tagged and rated.
package logparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// ErrNoEvents is returned when an entire input produces zero events.
var ErrNoEvents = errors.New("no events found in log text")

var (
	dateLine = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	hourLine = regexp.MustCompile(`^(\d{1,2})(?:[-–](\d{1,2}))?$`)
	pmMarker = regexp.MustCompile(`(?i)^---\s*PM\s*---$`)
	noon     = regexp.MustCompile(`^12(?:[-–]\d{1,2})?$`)
)

// State names the parser's position in the line state machine. A date
// header is needed before an hour header matters, and notes only emit
// once both are set. An hour survives into the next date section, same
// as the diary format has always behaved.
type State int

const (
	SeekingDate State = iota
	SeekingHour
	Accumulating
)

// machine holds the parse cursor: current date section, current hour
// slot, and the per-section PM flag.
type machine struct {
	date    string
	hour    int
	hourSet bool
	isPM    bool
}

func (m *machine) State() State {
	switch {
	case m.date == "":
		return SeekingDate
	case !m.hourSet:
		return SeekingHour
	default:
		return Accumulating
	}
}

// Parser is the log-format import parser. NewID supplies the fresh
// identifier for each emitted event.
type Parser struct {
	Tagger *Tagger
	NewID  func() string
}

func NewParser(tagger *Tagger, newID func() string) *Parser {
	return &Parser{Tagger: tagger, NewID: newID}
}

// InsertPMMarkers runs the pre-pass that encodes the source convention:
// the first bare "12" hour line in each date section begins the
// afternoon, so a PM marker line is injected right after it. A second
// "12" in the same section is left alone.
func InsertPMMarkers(raw string) string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines)+8)
	found12 := false
	for _, line := range lines {
		t := strings.TrimSpace(line)
		switch {
		case dateLine.MatchString(t):
			found12 = false
			out = append(out, line)
		case !found12 && noon.MatchString(t):
			found12 = true
			out = append(out, line, "---PM---")
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Parse runs the PM pre-pass and the line state machine over raw log
// text and returns a store holding only the parsed events. Merging into
// an existing store is the caller's business.
func (p *Parser) Parse(raw string) (model.EventStore, error) {
	store := make(model.EventStore)

	var cur machine
	imported := 0

	for _, rawLine := range strings.Split(InsertPMMarkers(raw), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if pmMarker.MatchString(line) {
			cur.isPM = true
			continue
		}

		if m := dateLine.FindStringSubmatch(line); m != nil {
			cur.date = fmt.Sprintf("%s-%s-%s", m[3], m[1], m[2])
			cur.isPM = false
			if _, ok := store[cur.date]; !ok {
				store[cur.date] = model.DayBucket{}
			}
			continue
		}

		if m := hourLine.FindStringSubmatch(line); m != nil {
			// The optional range suffix ("9-11") parses but only the
			// first number defines the slot.
			h := atoi(m[1])
			if cur.isPM && h != 12 {
				h += 12
			}
			cur.hour = h
			cur.hourSet = true
			continue
		}

		if cur.State() != Accumulating {
			continue
		}

		store[cur.date] = append(store[cur.date], p.synthesize(cur.hour, line))
		imported++
	}

	if imported == 0 {
		return nil, ErrNoEvents
	}
	return store, nil
}

// synthesize builds one event from a note line: rating heuristic first
// (the suffix it strips must not leak into the stored note or the
// keyword scan), then keyword tagging against the cleaned note.
func (p *Parser) synthesize(hour int, note string) model.Event {
	rating, cleaned := InferRating(note)
	return model.Event{
		ID:         p.NewID(),
		Hour:       hour,
		Note:       cleaned,
		Rating:     rating,
		Categories: p.Tagger.Categories(cleaned, nil),
		Purposes:   p.Tagger.Purposes(cleaned, nil),
	}
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
