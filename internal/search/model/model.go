package model

import "strconv"

// FieldKind is what a column holds, as guessed from its header.
type FieldKind int

const (
	KindOther       FieldKind = iota
	KindReference             // part codes: typo tolerance by edit distance
	KindDesignation           // free text: word-level trigram similarity
)

func (k FieldKind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindDesignation:
		return "designation"
	default:
		return "other"
	}
}

// Mode selects how terms are compared with cell values.
type Mode string

const (
	ModeCascade Mode = "cascade" // exact -> prefix -> contains -> similarity
	ModeStrict  Mode = "strict"  // byte-exact, case-sensitive
)

// ParseMode falls back to def on anything unknown.
func ParseMode(s string, def Mode) Mode {
	switch Mode(s) {
	case ModeCascade, ModeStrict:
		return Mode(s)
	default:
		return def
	}
}

type Options struct {
	Mode Mode
}

// Column is one entry of the header mapping.
type Column struct {
	Index  int       // position in the row
	Key    string    // internal key, col_N
	Header string    // original header text (or Key when blank)
	Kind   FieldKind // classifier verdict
}

// HeaderMapping lists columns in sheet order.
type HeaderMapping []Column

// Headers returns the original header titles in column order.
func (m HeaderMapping) Headers() []string {
	out := make([]string, len(m))
	for i, c := range m {
		out[i] = c.Header
	}
	return out
}

// ColumnKey returns the internal key of the i-th column.
func ColumnKey(i int) string { return "col_" + strconv.Itoa(i) }

// Row holds cell values indexed like the HeaderMapping. Blank cells are "".
type Row []string

// Get returns the cell at idx or "" when the row is shorter.
func (r Row) Get(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Dataset is immutable once built. A new upload builds a new one.
type Dataset struct {
	Rows    []Row
	Columns HeaderMapping
}

// Record turns a row into a header-keyed object for the response payload.
func (d *Dataset) Record(r Row) map[string]string {
	rec := make(map[string]string, len(d.Columns))
	for _, c := range d.Columns {
		rec[c.Header] = r.Get(c.Index)
	}
	return rec
}

// Outcome is the result of one search call.
type Outcome struct {
	MatchedResults   []map[string]string `json:"matchedResults"`
	MatchedQueries   []string            `json:"matchedQueries"`
	UnmatchedQueries []string            `json:"unmatchedQueries"`
	Headers          []string            `json:"headers"`

	// rows behind MatchedResults, same order; used for export
	Rows []Row `json:"-"`
	// tier that matched each matched query, keyed by the query
	Tiers map[string]string `json:"-"`
}
