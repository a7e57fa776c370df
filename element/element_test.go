package element

import (
	"testing"

	osm "github.com/omniscale/go-osm"
)

func node(id int64, version int32, tags osm.Tags) *Element {
	return NewNode(&osm.Node{Element: osm.Element{ID: id, Tags: tags, Metadata: &osm.Metadata{Version: version}}})
}

func way(id int64, version int32, refs ...int64) *Element {
	return NewWay(&osm.Way{Element: osm.Element{ID: id, Metadata: &osm.Metadata{Version: version}}, Refs: refs})
}

func rel(id int64, version int32) *Element {
	return NewRelation(&osm.Relation{Element: osm.Element{ID: id, Metadata: &osm.Metadata{Version: version}}})
}

func TestRefs(t *testing.T) {
	var refs []int64

	refs = InsertRef(refs, 1)
	if refs[0] != 1 {
		t.Fatal(refs)
	}

	refs = InsertRef(refs, 10)
	if refs[0] != 1 || refs[1] != 10 {
		t.Fatal(refs)
	}

	// insert twice
	refs = InsertRef(refs, 10)
	if refs[0] != 1 || refs[1] != 10 || len(refs) != 2 {
		t.Fatal(refs)
	}

	// insert before
	refs = InsertRef(refs, 0)
	if refs[0] != 0 || refs[1] != 1 || refs[2] != 10 {
		t.Fatal(refs)
	}

	// insert between
	refs = InsertRef(refs, 5)
	if refs[0] != 0 || refs[1] != 1 || refs[2] != 5 || refs[3] != 10 {
		t.Fatal(refs)
	}

	if !ContainsRef(refs, 5) || ContainsRef(refs, 6) {
		t.Fatal(refs)
	}

	// delete between
	refs = DeleteRef(refs, 5)
	if refs[0] != 0 || refs[1] != 1 || refs[2] != 10 || len(refs) != 3 {
		t.Fatal(refs)
	}

	// delete missing
	refs = DeleteRef(refs, 42)
	if len(refs) != 3 {
		t.Fatal(refs)
	}
}

func TestType(t *testing.T) {
	for _, e := range []struct {
		elem *Element
		typ  Type
	}{
		{node(1, 1, nil), Node},
		{way(1, 1), Way},
		{rel(1, 1), Relation},
	} {
		if e.elem.Type() != e.typ {
			t.Errorf("%v: expected %s, got %s", e.elem, e.typ, e.elem.Type())
		}
		typ, err := ParseType(e.typ.String())
		if err != nil || typ != e.typ {
			t.Errorf("ParseType(%s) = %v, %v", e.typ, typ, err)
		}
	}
	if _, err := ParseType("area"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestTagsNeverNil(t *testing.T) {
	e := node(1, 1, nil)
	if e.Tags() == nil {
		t.Fatal("nil tags")
	}
	if !e.Tagless() {
		t.Fatal("expected tagless")
	}
}

func TestVersionWithoutMetadata(t *testing.T) {
	e := NewNode(&osm.Node{Element: osm.Element{ID: 1}})
	if e.Version() != 0 {
		t.Fatal(e.Version())
	}
}

func TestIsClosed(t *testing.T) {
	if !way(1, 1, 1, 2, 3, 1).IsClosed() {
		t.Error("expected closed way")
	}
	if way(1, 1, 1, 2, 3).IsClosed() {
		t.Error("expected open way")
	}
	if node(1, 1, nil).IsClosed() {
		t.Error("node can't be closed")
	}
}

func TestMemberKey(t *testing.T) {
	if k := MemberKey(osm.Member{ID: 3, Type: osm.WayMember}); k != (Key{Way, 3}) {
		t.Error(k)
	}
	if k := MemberKey(osm.Member{ID: 3, Type: osm.RelationMember}); k != (Key{Relation, 3}) {
		t.Error(k)
	}
	if k := MemberKey(osm.Member{ID: 3, Type: osm.NodeMember}); k != (Key{Node, 3}) {
		t.Error(k)
	}
}

func TestClone(t *testing.T) {
	e := node(1, 1, nil)
	e.Ways = []int64{4}
	c := e.Clone()
	c.Ways = InsertRef(c.Ways, 5)
	c.Relations = InsertRef(c.Relations, 6)
	if len(e.Ways) != 1 || len(e.Relations) != 0 {
		t.Fatal("clone modified original", e)
	}
	if c.Node != e.Node {
		t.Fatal("payload not shared")
	}
}

func TestSortAndDedupe(t *testing.T) {
	elems := []*Element{
		rel(1, 1),
		way(5, 2),
		node(7, 1, nil),
		way(5, 1),
		node(2, 3, nil),
		node(2, 1, nil),
		way(3, 1),
	}
	Sort(elems)
	expected := []struct {
		key     Key
		version int32
	}{
		{Key{Node, 2}, 1},
		{Key{Node, 2}, 3},
		{Key{Node, 7}, 1},
		{Key{Way, 3}, 1},
		{Key{Way, 5}, 1},
		{Key{Way, 5}, 2},
		{Key{Relation, 1}, 1},
	}
	for i, e := range expected {
		if elems[i].Key() != e.key || elems[i].Version() != e.version {
			t.Errorf("%d: expected %s v%d, got %s", i, e.key, e.version, elems[i])
		}
	}

	deduped := Dedupe(elems)
	if len(deduped) != 5 {
		t.Fatal(deduped)
	}
	if deduped[0].Version() != 3 || deduped[2].Key() != (Key{Way, 3}) || deduped[3].Version() != 2 {
		t.Fatal(deduped)
	}
}

func TestChangesetAdd(t *testing.T) {
	cs := Changeset{}
	cs.UserID = 42
	cs.Add(Create, node(1, 1, nil))
	cs.Add(Create, node(2, 1, nil))
	cs.Add(Modify, way(3, 2))
	cs.Add(Create, node(4, 1, nil))

	if len(cs.Actions) != 3 {
		t.Fatal(cs.Actions)
	}
	if cs.Actions[0].Kind != Create || len(cs.Actions[0].Elements) != 2 {
		t.Error(cs.Actions[0])
	}
	if cs.Actions[1].Elements[0].Action != Modify {
		t.Error(cs.Actions[1])
	}
	if len(cs.Elements()) != 4 {
		t.Error(cs.Elements())
	}
	if cs.User() != "User 42" {
		t.Error(cs.User())
	}
	cs.UserName = "Alice"
	if cs.User() != "Alice" {
		t.Error(cs.User())
	}
}

func TestFromDiff(t *testing.T) {
	e := FromDiff(osm.Diff{Modify: true, Way: &osm.Way{Element: osm.Element{ID: 9}}})
	if e == nil || e.Type() != Way || e.Action != Modify {
		t.Fatal(e)
	}
	if FromDiff(osm.Diff{Create: true}) != nil {
		t.Fatal("expected nil for empty diff")
	}
}
