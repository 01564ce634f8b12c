// Package catalog loads the pokemon working set and derives the filtered,
// paged views the front-ends render.
//
// Data flows one way: working set -> Filter -> Page. The working set is
// read-only once published; filtering and paging are pure functions of
// (working set, criteria, page index).
package catalog

import (
	"strings"

	"github.com/Veraticus/dex/internal/model"
)

// WeightOptions are the minimum weights offered by the front-ends.
// The empty option means any weight.
var WeightOptions = []string{"", "50", "100", "150"}

// Filter returns the records of working that satisfy every active criterion,
// in working-set order.
//
// An unparsable MinWeight counts as unset: the weight criterion passes for
// every record instead of failing the whole filter.
func Filter(working []model.Pokemon, c model.Criteria) []model.Pokemon {
	m := newMatcher(c)

	out := make([]model.Pokemon, 0, len(working))
	for _, p := range working {
		if m.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies c.
func Matches(p model.Pokemon, c model.Criteria) bool {
	return newMatcher(c).matches(p)
}

// matcher holds criteria normalized once per Filter call.
type matcher struct {
	name      string
	typ       string
	minWeight float64
	hasWeight bool
}

func newMatcher(c model.Criteria) matcher {
	minWeight, hasWeight := c.MinWeightValue()
	return matcher{
		name:      strings.ToLower(c.Name),
		typ:       c.Type,
		minWeight: minWeight,
		hasWeight: hasWeight,
	}
}

func (m matcher) matches(p model.Pokemon) bool {
	if m.name != "" && !strings.Contains(strings.ToLower(p.Name), m.name) {
		return false
	}
	if m.typ != "" && !p.HasType(m.typ) {
		return false
	}
	if m.hasWeight && float64(p.Weight) < m.minWeight {
		return false
	}
	return true
}
