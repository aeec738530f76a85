package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parts-finder/internal/search/model"
)

func dataset(header []string, rows ...[]string) *model.Dataset {
	ds := &model.Dataset{Columns: BuildMapping(header, len(header), HeaderClassifier{})}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, model.Row(r))
	}
	return ds
}

func partsDataset() *model.Dataset {
	return dataset([]string{"ref", "des"},
		[]string{"XLSPH1104", "Fusible 4S transparent"},
		[]string{"XLSPH2200", "Disjoncteur"},
		[]string{"XLSPH11045", "Fusible 4S rouge"},
		[]string{"AB", "Câble"},
		[]string{"", "Sans référence"},
	)
}

func refs(rows []model.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get(0)
	}
	return out
}

func tierOf(t *testing.T, ds *model.Dataset, field, term string, mode model.Mode) (string, []string) {
	t.Helper()
	col, err := Resolve(field, ds.Columns)
	require.NoError(t, err)
	name, hits := run(buildColumnIndex(ds, col), tiersFor(mode), newQuery(term))
	var got []string
	for _, i := range hits {
		got = append(got, ds.Rows[i].Get(0))
	}
	return name, got
}

func TestCascadeTiers(t *testing.T) {
	ds := partsDataset()

	tests := []struct {
		name     string
		field    string
		term     string
		wantTier string
		wantRefs []string
	}{
		{"exact beats prefix", "ref", "xlsph1104", "exact", []string{"XLSPH1104"}},
		{"prefix", "ref", "XLSPH22", "prefix", []string{"XLSPH2200"}},
		{"contains", "ref", "1104", "contains", []string{"XLSPH1104", "XLSPH11045"}},
		{"term contains cell", "ref", "xlsph2200-b", "contains", []string{"XLSPH2200"}},
		{"edit distance typo", "ref", "XLSPH1140", "similar", []string{"XLSPH1104", "XLSPH11045"}},
		{"trigram typo", "des", "disjoncter", "similar", []string{"XLSPH2200"}},
		{"word order", "des", "fusible transparent", "similar", []string{"XLSPH1104", "XLSPH11045"}},
		{"accents", "des", "cable", "exact", []string{"AB"}},
		{"no match", "ref", "9999", "", nil},
		{"short cell not inside term", "ref", "zab", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, got := tierOf(t, ds, tt.field, tt.term, model.ModeCascade)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantRefs, got)
		})
	}
}

func TestCascadeExactPrecedence(t *testing.T) {
	ds := partsDataset()
	col, err := Resolve("ref", ds.Columns)
	require.NoError(t, err)

	rows := MatchTerm("XLSPH1104", col, ds, model.Options{})
	assert.Equal(t, []string{"XLSPH1104"}, refs(rows), "looser tiers must not add rows once exact matched")
}

func TestCascadeBlankCellsNeverMatch(t *testing.T) {
	ds := dataset([]string{"ref"}, []string{""}, []string{"   "})
	col, err := Resolve("ref", ds.Columns)
	require.NoError(t, err)

	for _, term := range []string{"a", "abc", "abc def"} {
		assert.Empty(t, MatchTerm(term, col, ds, model.Options{}), "term %q", term)
	}
}

func TestStrictMode(t *testing.T) {
	ds := partsDataset()

	tier, got := tierOf(t, ds, "ref", "XLSPH1104", model.ModeStrict)
	assert.Equal(t, "strict", tier)
	assert.Equal(t, []string{"XLSPH1104"}, got)

	tier, got = tierOf(t, ds, "ref", "xlsph1104", model.ModeStrict)
	assert.Empty(t, tier)
	assert.Empty(t, got)

	tier, got = tierOf(t, ds, "ref", "XLSPH", model.ModeStrict)
	assert.Empty(t, tier, "strict mode has no prefix tier")
	assert.Empty(t, got)
}

func TestMatchTermNilDataset(t *testing.T) {
	assert.Empty(t, MatchTerm("x", model.Column{}, nil, model.Options{}))
}

func TestNewQuery(t *testing.T) {
	q := newQuery("  Fusible de 4S ")
	assert.Equal(t, "Fusible de 4S", q.raw)
	assert.Equal(t, "fusible de 4s", q.norm)
	assert.True(t, q.multi)
	assert.Equal(t, []string{"fusible"}, q.words)

	q = newQuery("XLSPH1104")
	assert.False(t, q.multi)

	q = newQuery("ABC-9999")
	assert.False(t, q.multi, "punctuation does not split a reference")
	assert.Equal(t, []string{"abc-9999"}, q.words)
}

func TestCascadeHyphenatedReferences(t *testing.T) {
	ds := dataset([]string{"Ref Article", "Désignation"},
		[]string{"XLSPH-1104", "Fusible"},
		[]string{"ABC-2200", "Disjoncteur"},
		[]string{"ABC-3300", "Relais"},
	)
	require.Equal(t, model.KindReference, ds.Columns[0].Kind)

	tier, got := tierOf(t, ds, "ref article", "XLSPH1104", model.ModeCascade)
	assert.Equal(t, "similar", tier)
	assert.Equal(t, []string{"XLSPH-1104"}, got)

	tier, got = tierOf(t, ds, "ref article", "ABC-9999", model.ModeCascade)
	assert.Empty(t, tier, "a shared code prefix is not a match")
	assert.Empty(t, got)

	out, err := Search(ds, "ref article", []string{"XLSPH1104", "ABC-9999"}, model.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"XLSPH1104"}, out.MatchedQueries)
	assert.Equal(t, []string{"ABC-9999"}, out.UnmatchedQueries)
}
