// Package codec implements the tabular interchange formats: the events
// CSV, the whole-store JSON document, and the daily metrics CSV. The
// shapes are a contract with downstream tooling and are bit-exact with
// the formats the journal has always exported.
package codec

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisissin/moodmap-journal/internal/journal/model"
)

// ErrMissingColumns is returned when a CSV header lacks any of the
// required date/hour/note columns. Header failures abort the import;
// malformed data rows are skipped and counted instead.
var ErrMissingColumns = errors.New("csv header missing required date/hour/note columns")

var lineBreak = regexp.MustCompile(`\r?\n`)

var eventColumns = []string{
	"date", "hour", "note", "rating",
	"categories", "purposes",
	"weather", "location", "movement",
}

// EncodeEventsCSV flattens the store into the nine-column events CSV,
// dates ascending. Note and the pipe-joined tag lists are quoted with
// internal quotes doubled; the remaining fields are written bare.
func EncodeEventsCSV(store model.EventStore) string {
	lines := []string{strings.Join(eventColumns, ",")}

	dates := store.Dates()
	sort.Strings(dates)
	for _, date := range dates {
		for _, ev := range store[date] {
			lines = append(lines, strings.Join([]string{
				date,
				strconv.Itoa(ev.Hour),
				quote(ev.Note),
				strconv.Itoa(ev.Rating),
				quote(strings.Join(ev.Categories, "|")),
				quote(strings.Join(ev.Purposes, "|")),
				ev.Context.Weather,
				ev.Context.Location,
				ev.Context.Movement,
			}, ","))
		}
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// DecodeEventsCSV parses an events CSV into a fresh store. Column
// positions come from the header row, matched case-insensitively;
// unknown columns are ignored and missing optional columns take their
// defaults (rating 3, empty lists, empty context). Rows without a date
// are skipped silently; the skip count is returned. Each decoded event
// receives a fresh id from newID.
func DecodeEventsCSV(text string, newID func() string) (model.EventStore, int, error) {
	var lines []string
	for _, l := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, 0, ErrMissingColumns
	}

	idx := make(map[string]int)
	for i, col := range splitLine(lines[0]) {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if !hasAll(idx, "date", "hour", "note") {
		return nil, 0, ErrMissingColumns
	}

	store := make(model.EventStore)
	skipped := 0
	for _, line := range lines[1:] {
		cells := splitLine(line)
		date := cell(cells, idx, "date")
		if date == "" {
			skipped++
			continue
		}

		hour, _ := strconv.Atoi(cell(cells, idx, "hour"))
		rating, err := strconv.Atoi(cell(cells, idx, "rating"))
		if err != nil || rating == 0 {
			rating = 3
		}

		store[date] = append(store[date], model.Event{
			ID:         newID(),
			Hour:       hour,
			Note:       cell(cells, idx, "note"),
			Rating:     rating,
			Categories: splitTags(cell(cells, idx, "categories")),
			Purposes:   splitTags(cell(cells, idx, "purposes")),
			Context: model.Context{
				Weather:  cell(cells, idx, "weather"),
				Location: cell(cells, idx, "location"),
				Movement: cell(cells, idx, "movement"),
			},
		})
	}
	return store, skipped, nil
}

func hasAll(idx map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := idx[n]; !ok {
			return false
		}
	}
	return true
}

func cell(cells []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func splitTags(s string) []string {
	tags := make([]string, 0, 4)
	for _, t := range strings.Split(s, "|") {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// splitLine tokenizes one CSV line. A cell that opens with a quote may
// contain literal commas, and doubled quotes collapse to one. Whitespace
// between a comma and an opening quote is discarded, so hand-edited
// files with padded cells still unquote.
func splitLine(line string) []string {
	var cells []string
	var b strings.Builder
	inQuotes := false
	fieldStart := true

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					b.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				b.WriteByte(c)
			}
		case fieldStart && (c == ' ' || c == '\t'):
			// still at the field start
		case c == '"' && fieldStart:
			inQuotes = true
			fieldStart = false
		case c == ',':
			cells = append(cells, b.String())
			b.Reset()
			fieldStart = true
		default:
			b.WriteByte(c)
			fieldStart = false
		}
	}
	return append(cells, b.String())
}

// EncodeMetricsCSV writes one row per date in the metrics store, dates
// ascending, with one column per catalog category in catalog order.
func EncodeMetricsCSV(m model.MetricsStore, categoryIDs []string) string {
	header := "date," + strings.Join(categoryIDs, ",") + ",avgRating"
	lines := []string{header}

	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		dm := m[date]
		row := make([]string, 0, len(categoryIDs)+2)
		row = append(row, date)
		for _, id := range categoryIDs {
			row = append(row, strconv.Itoa(dm.CatCounts[id]))
		}
		row = append(row, formatRating(dm.AvgRating))
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// formatRating renders without trailing zeros: 4 not 4.00, 4.33 as-is.
func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
