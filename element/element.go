package element

import (
	"fmt"

	osm "github.com/omniscale/go-osm"
)

type Type int

const (
	Node Type = iota
	Way
	Relation
)

var TypeValues = map[string]Type{
	"node":     Node,
	"way":      Way,
	"relation": Relation,
}

func (t Type) String() string {
	switch t {
	case Node:
		return "node"
	case Way:
		return "way"
	case Relation:
		return "relation"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType returns the Type for node, way or relation.
func ParseType(s string) (Type, error) {
	t, ok := TypeValues[s]
	if !ok {
		return 0, fmt.Errorf("unknown element type '%s'", s)
	}
	return t, nil
}

// Key identifies an element. Nodes, ways and relations have separate ID
// spaces, so the type is part of the identity.
type Key struct {
	Type Type
	ID   int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}

// MemberKey returns the Key of a relation member.
func MemberKey(m osm.Member) Key {
	switch m.Type {
	case osm.NodeMember:
		return Key{Node, m.ID}
	case osm.WayMember:
		return Key{Way, m.ID}
	default:
		return Key{Relation, m.ID}
	}
}

// An Element is a single node, way or relation. Exactly one of Node, Way
// or Rel is set.
//
// Elements are treated as immutable once fetched. Ways and Relations hold
// the IDs of the ways and relations that reference this element. They are
// only filled by the reference resolver, which works on copies.
type Element struct {
	Node *osm.Node
	Way  *osm.Way
	Rel  *osm.Relation

	// Action is the change operation this element was part of. NoAction
	// for elements fetched as context.
	Action ActionKind

	Ways      []int64
	Relations []int64
}

func NewNode(n *osm.Node) *Element {
	return &Element{Node: n}
}

func NewWay(w *osm.Way) *Element {
	return &Element{Way: w}
}

func NewRelation(r *osm.Relation) *Element {
	return &Element{Rel: r}
}

func (e *Element) Type() Type {
	switch {
	case e.Node != nil:
		return Node
	case e.Way != nil:
		return Way
	case e.Rel != nil:
		return Relation
	}
	panic("element: neither node, way nor relation set")
}

func (e *Element) osmElement() *osm.Element {
	switch e.Type() {
	case Node:
		return &e.Node.Element
	case Way:
		return &e.Way.Element
	default:
		return &e.Rel.Element
	}
}

func (e *Element) ID() int64 { return e.osmElement().ID }

func (e *Element) Key() Key { return Key{e.Type(), e.ID()} }

// Tags returns the tags of the element. The result is never nil.
func (e *Element) Tags() osm.Tags {
	tags := e.osmElement().Tags
	if tags == nil {
		return osm.Tags{}
	}
	return tags
}

func (e *Element) Tagless() bool {
	return len(e.osmElement().Tags) == 0
}

// Version returns the version of the element, or 0 if the element was
// parsed without metadata.
func (e *Element) Version() int32 {
	if md := e.osmElement().Metadata; md != nil {
		return md.Version
	}
	return 0
}

// Metadata returns the OSM metadata of the element. Can be nil.
func (e *Element) Metadata() *osm.Metadata {
	return e.osmElement().Metadata
}

// Refs returns the node IDs of a way, nil for nodes and relations.
func (e *Element) Refs() []int64 {
	if e.Way == nil {
		return nil
	}
	return e.Way.Refs
}

// Members returns the members of a relation, nil for nodes and ways.
func (e *Element) Members() []osm.Member {
	if e.Rel == nil {
		return nil
	}
	return e.Rel.Members
}

// IsClosed returns whether the element is a way with identical first and
// last node.
func (e *Element) IsClosed() bool {
	return e.Way != nil && e.Way.IsClosed()
}

// Referenced returns whether any way or relation references this element.
func (e *Element) Referenced() bool {
	return len(e.Ways) > 0 || len(e.Relations) > 0
}

// Clone returns a copy with its own back-reference slices. The OSM payload
// is shared.
func (e *Element) Clone() *Element {
	c := *e
	c.Ways = append([]int64(nil), e.Ways...)
	c.Relations = append([]int64(nil), e.Relations...)
	return &c
}

func (e *Element) String() string {
	return fmt.Sprintf("%s v%d %v", e.Key(), e.Version(), map[string]string(e.Tags()))
}
