package element

import "sort"

// InsertRef inserts ref into the sorted refs, if not already present.
func InsertRef(refs []int64, ref int64) []int64 {
	i := sort.Search(len(refs), func(i int) bool {
		return refs[i] >= ref
	})
	if i < len(refs) && refs[i] >= ref {
		if refs[i] > ref {
			refs = append(refs, 0)
			copy(refs[i+1:], refs[i:])
			refs[i] = ref
		} // else already inserted
	} else {
		refs = append(refs, ref)
	}
	return refs
}

// DeleteRef removes ref from the sorted refs.
func DeleteRef(refs []int64, ref int64) []int64 {
	i := sort.Search(len(refs), func(i int) bool {
		return refs[i] >= ref
	})
	if i < len(refs) && refs[i] == ref {
		refs = append(refs[:i], refs[i+1:]...)
	}
	return refs
}

// ContainsRef returns whether the sorted refs contain ref.
func ContainsRef(refs []int64, ref int64) bool {
	i := sort.Search(len(refs), func(i int) bool {
		return refs[i] >= ref
	})
	return i < len(refs) && refs[i] == ref
}
