package logparse

import (
	"regexp"
	"strings"

	"github.com/chrisissin/moodmap-journal/internal/config"
)

type keywordRule struct {
	id string
	re *regexp.Regexp
}

// Tagger runs the data-driven keyword tables over note text. Matching is
// case-insensitive on word boundaries; group order controls the order
// matched ids are appended in.
type Tagger struct {
	categories []keywordRule
	purposes   []keywordRule
}

func NewTagger(tables config.KeywordTables) *Tagger {
	return &Tagger{
		categories: compileRules(tables.Categories),
		purposes:   compileRules(tables.Purposes),
	}
}

func compileRules(groups []config.KeywordGroup) []keywordRule {
	rules := make([]keywordRule, 0, len(groups))
	for _, g := range groups {
		if len(g.Match) == 0 {
			continue
		}
		escaped := make([]string, len(g.Match))
		for i, kw := range g.Match {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		re := regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
		rules = append(rules, keywordRule{id: g.ID, re: re})
	}
	return rules
}

// Categories appends every matched category id not already present in
// existing. The existing slice is not modified.
func (t *Tagger) Categories(note string, existing []string) []string {
	return applyRules(t.categories, note, existing)
}

func (t *Tagger) Purposes(note string, existing []string) []string {
	return applyRules(t.purposes, note, existing)
}

func applyRules(rules []keywordRule, note string, existing []string) []string {
	out := make([]string, 0, len(existing)+2)
	out = append(out, existing...)
	seen := make(map[string]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, r := range rules {
		if seen[r.id] || !r.re.MatchString(note) {
			continue
		}
		out = append(out, r.id)
		seen[r.id] = true
	}
	return out
}

var (
	positiveWords = regexp.MustCompile(`(?i)grateful|happy|good`)
	negativeWords = regexp.MustCompile(`(?i)regret|ego|bad|hurt`)
	plusSuffix    = regexp.MustCompile(`\s\+$`)
	minusSuffix   = regexp.MustCompile(`\s-$`)
)

// InferRating applies the rating heuristic to a note and returns the
// rating together with the note stripped of any trailing +/- suffix.
// The keyword pass runs first, then the suffix nudge, clamped to [1,5].
func InferRating(note string) (int, string) {
	rating := 3
	if strings.Contains(note, "+") || positiveWords.MatchString(note) {
		rating = 5
	} else if negativeWords.MatchString(note) {
		rating = 2
	}
	if plusSuffix.MatchString(note) {
		rating = min(5, rating+1)
		note = strings.TrimSpace(plusSuffix.ReplaceAllString(note, ""))
	}
	if minusSuffix.MatchString(note) {
		rating = max(1, rating-1)
		note = strings.TrimSpace(minusSuffix.ReplaceAllString(note, ""))
	}
	return rating, note
}
