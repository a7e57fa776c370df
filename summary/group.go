package summary

import (
	"sort"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/feature"
)

// A Pair is an element with all its matches, most precise first.
type Pair struct {
	Element *element.Element
	Matches []*feature.Feature
}

func (p Pair) has(f *feature.Feature) bool {
	for _, m := range p.Matches {
		if m == f {
			return true
		}
	}
	return false
}

// A Group is a set of elements that share a feature.
type Group struct {
	Feature  *feature.Feature
	Elements []*element.Element
}

// Pairs matches all elems.
func Pairs(elems []*element.Element, m *feature.Matcher) ([]Pair, error) {
	matches, err := m.Each(elems)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(elems))
	for i, e := range elems {
		pairs[i] = Pair{Element: e, Matches: matches[i]}
	}
	return pairs, nil
}

// SortPairs sorts pairs by descending number of matches. Elements with
// equal number of matches keep their order.
func SortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].Matches) > len(pairs[j].Matches)
	})
}

// GroupPairs partitions pairs by feature. The most precise match of the
// first remaining pair becomes the next group feature and claims all
// remaining pairs that match it as well.
func GroupPairs(pairs []Pair) []Group {
	var groups []Group
	remaining := pairs
	for len(remaining) > 0 {
		f := remaining[0].Matches[0]
		g := Group{Feature: f}
		var rest []Pair
		for _, p := range remaining {
			if p.has(f) {
				g.Elements = append(g.Elements, p.Element)
			} else {
				rest = append(rest, p)
			}
		}
		groups = append(groups, g)
		remaining = rest
	}
	return groups
}

// SortGroups sorts groups by descending size, then by descending
// precision of the group feature.
func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if ni, nj := len(groups[i].Elements), len(groups[j].Elements); ni != nj {
			return ni > nj
		}
		return groups[i].Feature.Precision() > groups[j].Feature.Precision()
	})
}

// Grouped matches, groups and sorts elems.
func Grouped(elems []*element.Element, m *feature.Matcher) ([]Group, error) {
	pairs, err := Pairs(elems, m)
	if err != nil {
		return nil, err
	}
	SortPairs(pairs)
	groups := GroupPairs(pairs)
	SortGroups(groups)
	return groups, nil
}
