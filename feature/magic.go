package feature

import (
	"fmt"

	"github.com/omniscale/changemonger/element"
)

type MagicKind int

const (
	// UntaggedOfType matches elements without any tags.
	UntaggedOfType MagicKind = iota
	// UnidentifiedOfType matches every element.
	UnidentifiedOfType
	// ClosedPolygon matches closed ways.
	ClosedPolygon
	// HasTagKey matches elements with the tag key of the rule.
	HasTagKey
)

type MagicRule struct {
	Kind MagicKind
	Key  string
}

func (r MagicRule) Match(e *element.Element) bool {
	switch r.Kind {
	case UntaggedOfType:
		return e.Tagless()
	case UnidentifiedOfType:
		return true
	case ClosedPolygon:
		return e.IsClosed()
	case HasTagKey:
		_, ok := e.Tags()[r.Key]
		return ok
	}
	return false
}

func (r MagicRule) String() string {
	switch r.Kind {
	case UntaggedOfType:
		return "untagged"
	case UnidentifiedOfType:
		return "always"
	case ClosedPolygon:
		return "closed way"
	case HasTagKey:
		return "has key " + r.Key
	}
	return fmt.Sprintf("MagicKind(%d)", int(r.Kind))
}

func intp(i int) *int { return &i }

// magicFeatures returns the built-in fallback features. Every element
// matches at least the unidentified features.
func magicFeatures() []*Feature {
	features := []*Feature{
		{
			Name:      "unidentified object",
			Plural:    "assorted objects",
			Types:     AllTypes,
			Magic:     MagicRule{Kind: UnidentifiedOfType},
			precision: intp(0),
		},
	}
	for _, t := range []element.Type{element.Node, element.Way, element.Relation} {
		features = append(features, &Feature{
			Name:      "unidentified " + t.String(),
			Types:     TypesOf(t),
			Magic:     MagicRule{Kind: UnidentifiedOfType},
			precision: intp(1),
		})
	}
	for _, t := range []element.Type{element.Node, element.Way, element.Relation} {
		features = append(features, &Feature{
			Name:  "untagged " + t.String(),
			Types: TypesOf(t),
			Magic: MagicRule{Kind: UntaggedOfType},
		})
	}
	features = append(features,
		&Feature{
			Name:      "unidentified polygon",
			Types:     TypesOf(element.Way),
			Magic:     MagicRule{Kind: ClosedPolygon},
			precision: intp(3),
		},
		&Feature{
			Name:      "building",
			Types:     TypesOf(element.Way, element.Relation),
			Magic:     MagicRule{Kind: HasTagKey, Key: "building"},
			precision: intp(5),
		},
		&Feature{
			Name:      "man made feature",
			Types:     AllTypes,
			Magic:     MagicRule{Kind: HasTagKey, Key: "man_made"},
			precision: intp(5),
		},
		&Feature{
			Name:      "shop",
			Types:     AllTypes,
			Magic:     MagicRule{Kind: HasTagKey, Key: "shop"},
			precision: intp(6),
		},
	)
	for _, f := range features {
		f.Kind = Magic
	}
	return features
}
