package element

import (
	"fmt"

	osm "github.com/omniscale/go-osm"
)

type ActionKind int

const (
	NoAction ActionKind = iota
	Create
	Modify
	Delete
)

func (a ActionKind) String() string {
	switch a {
	case Create:
		return "create"
	case Modify:
		return "modify"
	case Delete:
		return "delete"
	}
	return "none"
}

// DiffAction returns the ActionKind of a parsed osmChange diff.
func DiffAction(d osm.Diff) ActionKind {
	switch {
	case d.Create:
		return Create
	case d.Modify:
		return Modify
	case d.Delete:
		return Delete
	}
	return NoAction
}

// FromDiff returns the changed element of a parsed osmChange diff, or nil
// if the diff contains no element.
func FromDiff(d osm.Diff) *Element {
	var e *Element
	switch {
	case d.Node != nil:
		e = NewNode(d.Node)
	case d.Way != nil:
		e = NewWay(d.Way)
	case d.Rel != nil:
		e = NewRelation(d.Rel)
	default:
		return nil
	}
	e.Action = DiffAction(d)
	return e
}

// An Action is a block of elements with the same change operation, as
// found in an osmChange document.
type Action struct {
	Kind     ActionKind
	Elements []*Element
}

// A Changeset contains the metadata of an OSM changeset and its changes
// in document order.
type Changeset struct {
	osm.Changeset
	Actions []Action
}

// Add appends e to the last action block if it has the same kind, or
// starts a new block.
func (c *Changeset) Add(kind ActionKind, e *Element) {
	e.Action = kind
	if n := len(c.Actions); n > 0 && c.Actions[n-1].Kind == kind {
		c.Actions[n-1].Elements = append(c.Actions[n-1].Elements, e)
		return
	}
	c.Actions = append(c.Actions, Action{Kind: kind, Elements: []*Element{e}})
}

// Elements returns all changed elements in action order.
func (c *Changeset) Elements() []*Element {
	var result []*Element
	for _, a := range c.Actions {
		result = append(result, a.Elements...)
	}
	return result
}

// User returns a displayable user name.
func (c *Changeset) User() string {
	if c.UserName != "" {
		return c.UserName
	}
	return fmt.Sprintf("User %d", c.UserID)
}
