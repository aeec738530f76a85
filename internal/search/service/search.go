package service

import (
	"strconv"
	"strings"

	"parts-finder/internal/search/model"
)

// CleanTerms trims every term, drops blanks and repeated terms.
// Input order is kept.
func CleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Search resolves field once, runs the cascade for every term and splits the
// terms into matched and unmatched. Matched rows are merged without duplicates
// (full-row comparison) in the order they were first found.
//
// Errors: ErrDatasetUnavailable for a nil dataset, ErrEmptyInput when no term
// survives CleanTerms, ErrFieldNotFound from Resolve.
func Search(ds *model.Dataset, field string, terms []string, opt model.Options) (*model.Outcome, error) {
	if ds == nil {
		return nil, model.ErrDatasetUnavailable
	}
	clean := CleanTerms(terms)
	if len(clean) == 0 {
		return nil, model.ErrEmptyInput
	}
	col, err := Resolve(field, ds.Columns)
	if err != nil {
		return nil, err
	}

	idx := buildColumnIndex(ds, col)
	tiers := tiersFor(opt.Mode)

	out := &model.Outcome{
		MatchedResults:   []map[string]string{},
		MatchedQueries:   []string{},
		UnmatchedQueries: []string{},
		Headers:          ds.Columns.Headers(),
		Tiers:            make(map[string]string),
	}
	seen := make(map[string]struct{})
	for _, t := range clean {
		name, hits := run(idx, tiers, newQuery(t))
		if len(hits) == 0 {
			out.UnmatchedQueries = append(out.UnmatchedQueries, t)
			continue
		}
		out.MatchedQueries = append(out.MatchedQueries, t)
		out.Tiers[t] = name
		for _, i := range hits {
			r := ds.Rows[i]
			k := rowKey(r)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out.Rows = append(out.Rows, r)
			out.MatchedResults = append(out.MatchedResults, ds.Record(r))
		}
	}
	return out, nil
}

// rowKey serializes every cell, quoted, so distinct rows never collide.
func rowKey(r model.Row) string {
	var b strings.Builder
	for _, v := range r {
		b.WriteString(strconv.Quote(v))
		b.WriteByte(',')
	}
	return b.String()
}
