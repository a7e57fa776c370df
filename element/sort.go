package element

import "sort"

// Less orders elements nodes first, then ways, then relations. Within
// each type by ascending ID, then by ascending version.
func Less(a, b *Element) bool {
	if ta, tb := a.Type(), b.Type(); ta != tb {
		return ta < tb
	}
	if ia, ib := a.ID(), b.ID(); ia != ib {
		return ia < ib
	}
	return a.Version() < b.Version()
}

// Sort sorts elems in place into canonical order (see Less).
func Sort(elems []*Element) {
	sort.SliceStable(elems, func(i, j int) bool {
		return Less(elems[i], elems[j])
	})
}

// Dedupe removes all but the latest version of each element. elems
// needs to be sorted with Sort.
func Dedupe(elems []*Element) []*Element {
	result := make([]*Element, 0, len(elems))
	for _, e := range elems {
		if n := len(result); n > 0 && result[n-1].Key() == e.Key() {
			result[n-1] = e
			continue
		}
		result = append(result, e)
	}
	return result
}
