package feature

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/omniscale/changemonger/element"
)

// ErrNoMatch is returned if an element matches no feature at all. This
// indicates a catalog without fallback features.
var ErrNoMatch = errors.New("no matching feature")

// Matches returns whether f matches e.
func Matches(f *Feature, e *element.Element) bool {
	switch f.Kind {
	case Category:
		for _, m := range f.Members {
			if Matches(m, e) {
				return true
			}
		}
		return false
	case Magic:
		return f.Types.Has(e.Type()) && f.Magic.Match(e)
	default:
		if !f.Types.Has(e.Type()) {
			return false
		}
		tags := e.Tags()
		for _, r := range f.Tags {
			if !r.Match(tags) {
				return false
			}
		}
		return true
	}
}

// A Matcher classifies elements with the features of a catalog.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(c *Catalog) *Matcher {
	return &Matcher{catalog: c}
}

func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

// Best returns the most precise ordinary or magic feature for e.
// Categories do not compete. Features with equal precision are ordered by
// name. Returns nil if nothing matches.
func (m *Matcher) Best(e *element.Element) *Feature {
	var best *Feature
	for _, f := range m.catalog.ForType(e.Type()) {
		if best != nil {
			if f.Precision() < best.Precision() {
				continue
			}
			if f.Precision() == best.Precision() && f.Name >= best.Name {
				continue
			}
		}
		if Matches(f, e) {
			best = f
		}
	}
	return best
}

// All returns all matching features, categories and magic features of e,
// sorted by descending precision. Matches with equal precision keep their
// catalog order: features, then categories, then magic features.
func (m *Matcher) All(e *element.Element) ([]*Feature, error) {
	t := e.Type()
	var result []*Feature
	matchedCats := make(map[*Feature]struct{})
	for _, f := range m.catalog.ordinaryByType[t] {
		if Matches(f, e) {
			result = append(result, f)
			for _, cat := range f.Categories {
				matchedCats[cat] = struct{}{}
			}
		}
	}
	for _, cat := range m.catalog.categories {
		if _, ok := matchedCats[cat]; ok {
			result = append(result, cat)
		}
	}
	for _, f := range m.catalog.magicByType[t] {
		if Matches(f, e) {
			result = append(result, f)
		}
	}
	if len(result) == 0 {
		return nil, errors.Wrapf(ErrNoMatch, "%s", e.Key())
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Precision() > result[j].Precision()
	})
	return result, nil
}

// Each returns the matches of all elems.
func (m *Matcher) Each(elems []*element.Element) ([][]*Feature, error) {
	result := make([][]*Feature, len(elems))
	for i, e := range elems {
		matches, err := m.All(e)
		if err != nil {
			return nil, err
		}
		result[i] = matches
	}
	return result, nil
}
