package service

import (
	"strings"

	"parts-finder/internal/search/model"
)

type cell struct {
	raw   string // trimmed, case kept (strict mode)
	norm  string
	words []string
}

// columnIndex precomputes one column of a dataset for a search call.
// It is owned by a single call and never shared.
type columnIndex struct {
	col   model.Column
	cells []cell
	grams map[string]gramSet // word -> trigrams, filled lazily
}

func buildColumnIndex(ds *model.Dataset, col model.Column) *columnIndex {
	idx := &columnIndex{
		col:   col,
		cells: make([]cell, len(ds.Rows)),
		grams: make(map[string]gramSet),
	}
	for i, r := range ds.Rows {
		raw := strings.TrimSpace(r.Get(col.Index))
		if raw == "" {
			continue
		}
		n := Normalize(raw)
		idx.cells[i] = cell{raw: raw, norm: n, words: splitWords(n)}
	}
	return idx
}

func (idx *columnIndex) trigrams(w string) gramSet {
	if g, ok := idx.grams[w]; ok {
		return g
	}
	g := trigrams(w)
	idx.grams[w] = g
	return g
}

// similar picks the word similarity that suits the column: edit distance for
// reference codes, trigrams for designations, either one otherwise.
func (idx *columnIndex) similar(a, b string) bool {
	switch idx.col.Kind {
	case model.KindReference:
		return editSimilar(a, b)
	case model.KindDesignation:
		return trigramSimilar(a, b, idx.trigrams)
	default:
		return editSimilar(a, b) || trigramSimilar(a, b, idx.trigrams)
	}
}
