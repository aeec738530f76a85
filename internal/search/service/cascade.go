package service

import (
	"strings"

	"parts-finder/internal/search/model"
)

type query struct {
	raw   string
	norm  string
	words []string // normalized words longer than 2 runes
	multi bool     // more than one word was typed
}

func newQuery(term string) query {
	raw := strings.TrimSpace(term)
	n := Normalize(raw)
	all := splitWords(n)
	q := query{raw: raw, norm: n, multi: len(all) > 1}
	for _, w := range all {
		if runeLen(w) > 2 {
			q.words = append(q.words, w)
		}
	}
	return q
}

// tier is one step of the cascade. Tiers are tried in order and the first
// one that matches any row decides the result for the term.
type tier struct {
	name  string
	match func(idx *columnIndex, q query, c cell) bool
}

var cascadeTiers = []tier{
	{name: "exact", match: func(_ *columnIndex, q query, c cell) bool {
		return c.norm == q.norm
	}},
	{name: "prefix", match: func(_ *columnIndex, q query, c cell) bool {
		return strings.HasPrefix(c.norm, q.norm)
	}},
	{name: "contains", match: func(_ *columnIndex, q query, c cell) bool {
		if strings.Contains(c.norm, q.norm) {
			return true
		}
		// a 1-2 rune cell would be inside almost any term
		return runeLen(c.norm) > 2 && strings.Contains(q.norm, c.norm)
	}},
	{name: "similar", match: matchSimilar},
}

var strictTiers = []tier{
	{name: "strict", match: func(_ *columnIndex, q query, c cell) bool {
		return c.raw == q.raw
	}},
}

func tiersFor(m model.Mode) []tier {
	if m == model.ModeStrict {
		return strictTiers
	}
	return cascadeTiers
}

// matchSimilar: for a multi-word term, any significant term word contained in
// the cell or similar to one of its words; for a single word, similarity with
// any cell word.
func matchSimilar(idx *columnIndex, q query, c cell) bool {
	if !q.multi {
		for _, cw := range c.words {
			if idx.similar(cw, q.norm) {
				return true
			}
		}
		return false
	}
	for _, w := range q.words {
		if strings.Contains(c.norm, w) {
			return true
		}
		for _, cw := range c.words {
			if idx.similar(cw, w) {
				return true
			}
		}
	}
	return false
}

// run returns the name of the deciding tier and the matching row positions,
// or "" and nil when no tier matches.
func run(idx *columnIndex, tiers []tier, q query) (string, []int) {
	if q.norm == "" {
		return "", nil
	}
	for _, t := range tiers {
		var hits []int
		for i, c := range idx.cells {
			if c.norm == "" {
				continue
			}
			if t.match(idx, q, c) {
				hits = append(hits, i)
			}
		}
		if len(hits) > 0 {
			return t.name, hits
		}
	}
	return "", nil
}

// MatchTerm runs the cascade for one term against one column and returns the
// matching rows in dataset order. It never fails; no match is an empty slice.
func MatchTerm(term string, col model.Column, ds *model.Dataset, opt model.Options) []model.Row {
	if ds == nil {
		return nil
	}
	_, hits := run(buildColumnIndex(ds, col), tiersFor(opt.Mode), newQuery(term))
	out := make([]model.Row, 0, len(hits))
	for _, i := range hits {
		out = append(out, ds.Rows[i])
	}
	return out
}
