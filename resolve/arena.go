package resolve

import (
	"github.com/omniscale/changemonger/element"
)

// arena owns the copies of all elements of one resolution. All
// back-references are added here, the input elements are never touched.
type arena struct {
	elems []*element.Element
	// all versions of an element
	index map[element.Key][]*element.Element
	// relations that list a key as member, for elements added later
	memberOf map[element.Key][]int64
}

func newArena(elems []*element.Element) *arena {
	a := &arena{
		elems:    make([]*element.Element, 0, len(elems)),
		index:    make(map[element.Key][]*element.Element, len(elems)),
		memberOf: make(map[element.Key][]int64),
	}
	for _, e := range elems {
		a.insert(e.Clone())
	}
	return a
}

func (a *arena) insert(e *element.Element) {
	a.elems = append(a.elems, e)
	k := e.Key()
	a.index[k] = append(a.index[k], e)
}

// linkLocal adds back-references for all ways and relations already in
// the collection.
func (a *arena) linkLocal() {
	n := len(a.elems)
	for i := 0; i < n; i++ {
		if a.elems[i].Type() == element.Way {
			a.linkWay(a.elems[i])
		}
	}
	for i := 0; i < n; i++ {
		if a.elems[i].Type() == element.Relation {
			a.linkRelation(a.elems[i])
		}
	}
}

func (a *arena) linkWay(w *element.Element) {
	for _, ref := range w.Refs() {
		for _, n := range a.index[element.Key{Type: element.Node, ID: ref}] {
			n.Ways = element.InsertRef(n.Ways, w.ID())
		}
	}
}

func (a *arena) linkRelation(r *element.Element) {
	for _, m := range r.Members() {
		k := element.MemberKey(m)
		a.memberOf[k] = element.InsertRef(a.memberOf[k], r.ID())
		for _, e := range a.index[k] {
			e.Relations = element.InsertRef(e.Relations, r.ID())
		}
	}
}

// add inserts a fetched parent and links it to its children. Returns false
// if the element is already part of the collection.
func (a *arena) add(e *element.Element) bool {
	k := e.Key()
	if _, ok := a.index[k]; ok {
		return false
	}
	for _, id := range a.memberOf[k] {
		e.Relations = element.InsertRef(e.Relations, id)
	}
	a.insert(e)
	switch e.Type() {
	case element.Way:
		a.linkWay(e)
	case element.Relation:
		a.linkRelation(e)
	}
	return true
}

// candidates returns the keys of all elements matching pred, each key
// once, in collection order.
func (a *arena) candidates(pred func(*element.Element) bool) []element.Key {
	var result []element.Key
	seen := make(map[element.Key]struct{})
	for _, e := range a.elems {
		k := e.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		if pred(e) {
			seen[k] = struct{}{}
			result = append(result, k)
		}
	}
	return result
}

// prune returns all elements except untagged elements with a parent.
func (a *arena) prune() ([]*element.Element, int) {
	result := make([]*element.Element, 0, len(a.elems))
	for _, e := range a.elems {
		if e.Tagless() && e.Referenced() {
			continue
		}
		result = append(result, e)
	}
	return result, len(a.elems) - len(result)
}
