package service

import (
	"fmt"
	"strings"

	"parts-finder/internal/search/model"
)

// Resolve finds the column a user-supplied field name refers to.
// Alternatives may be given as "a|b|c". First tier: case-insensitive equality
// with a header. Second tier: normalized containment in either direction.
// Within a tier the first column in sheet order wins.
func Resolve(field string, cols model.HeaderMapping) (model.Column, error) {
	var alts []string
	for _, a := range strings.Split(field, "|") {
		if a = strings.TrimSpace(a); a != "" {
			alts = append(alts, a)
		}
	}
	if len(alts) == 0 {
		return model.Column{}, fmt.Errorf("%w: empty field name", model.ErrFieldNotFound)
	}

	for _, a := range alts {
		for _, c := range cols {
			if strings.EqualFold(strings.TrimSpace(c.Header), a) {
				return c, nil
			}
		}
	}

	for _, a := range alts {
		want := fieldKey(a)
		if want == "" {
			continue
		}
		for _, c := range cols {
			have := fieldKey(c.Header)
			if have == "" {
				continue
			}
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return c, nil
			}
		}
	}
	return model.Column{}, fmt.Errorf("%w: %q", model.ErrFieldNotFound, field)
}
