package service

import (
	"fmt"
	"strings"

	"parts-finder/internal/search/model"
)

// Classifier guesses what a column holds from its header text.
type Classifier interface {
	Classify(header string) model.FieldKind
}

// ClassifierFunc adapts a plain function.
type ClassifierFunc func(header string) model.FieldKind

func (f ClassifierFunc) Classify(header string) model.FieldKind { return f(header) }

// HeaderClassifier is the substring heuristic used on parts lists:
// "Ref Article", "Code" -> reference; "Désignation", "Libellé" -> designation.
type HeaderClassifier struct{}

var (
	referenceHints   = []string{"ref", "article", "code", "sku"}
	designationHints = []string{"des", "libelle", "label", "nom"}
)

func (HeaderClassifier) Classify(header string) model.FieldKind {
	k := fieldKey(header)
	switch {
	case k == "":
		return model.KindOther
	case containsAny(k, referenceHints):
		return model.KindReference
	case containsAny(k, designationHints):
		return model.KindDesignation
	default:
		return model.KindOther
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// BuildMapping turns a header row into a HeaderMapping of the given width.
// Blank or missing titles fall back to the internal key; repeated titles
// get a " (n)" suffix so header-keyed records stay lossless.
func BuildMapping(header []string, width int, c Classifier) model.HeaderMapping {
	if c == nil {
		c = HeaderClassifier{}
	}
	width = max(width, len(header))
	out := make(model.HeaderMapping, width)
	used := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		key := model.ColumnKey(i)
		title := ""
		if i < len(header) {
			title = strings.TrimSpace(header[i])
		}
		if title == "" {
			title = key
		}
		if used[title] {
			base := title
			for n := 2; used[title]; n++ {
				title = fmt.Sprintf("%s (%d)", base, n)
			}
		}
		used[title] = true
		out[i] = model.Column{Index: i, Key: key, Header: title, Kind: c.Classify(title)}
	}
	return out
}
