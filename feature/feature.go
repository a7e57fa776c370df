package feature

import (
	"fmt"
	"strings"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"

	"github.com/omniscale/changemonger/element"
)

type Kind int

const (
	// Ordinary features match by their required tags.
	Ordinary Kind = iota
	// Category features match if any of their members match.
	Category
	// Magic features are built in and match by a fixed rule.
	Magic
)

func (k Kind) String() string {
	switch k {
	case Ordinary:
		return "feature"
	case Category:
		return "category"
	case Magic:
		return "magic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Default precisions. Ordinary features without explicit precision get
// OrdinaryPrecisionBase plus the number of their required tags.
const (
	OrdinaryPrecisionBase = 10
	CategoryPrecision     = 3
	MagicPrecision        = 2
)

// TypeSet is a set of element types.
type TypeSet uint8

const AllTypes = TypeSet(1<<element.Node | 1<<element.Way | 1<<element.Relation)

func TypesOf(types ...element.Type) TypeSet {
	var s TypeSet
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

func (s TypeSet) Has(t element.Type) bool {
	return s&(1<<t) != 0
}

func (s TypeSet) String() string {
	if s == AllTypes {
		return "all"
	}
	var names []string
	for _, t := range []element.Type{element.Node, element.Way, element.Relation} {
		if s.Has(t) {
			names = append(names, t.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseTypes parses a list of type names. An empty list and "all" stand
// for all types.
func ParseTypes(names []string) (TypeSet, error) {
	if len(names) == 0 {
		return AllTypes, nil
	}
	var s TypeSet
	for _, name := range names {
		if name == "all" {
			return AllTypes, nil
		}
		t, err := element.ParseType(name)
		if err != nil {
			return 0, err
		}
		s |= TypesOf(t)
	}
	return s, nil
}

// A TagRule is a single required tag. Rules without a value, or with the
// value "*", only require the key.
type TagRule struct {
	Key   string
	Value string
}

func ParseTagRule(s string) (TagRule, error) {
	k, v := s, "*"
	if i := strings.IndexByte(s, '='); i >= 0 {
		k, v = s[:i], s[i+1:]
	}
	k = strings.TrimSpace(k)
	v = strings.TrimSpace(v)
	if k == "" {
		return TagRule{}, errors.Errorf("missing key in tag '%s'", s)
	}
	if v == "" {
		v = "*"
	}
	return TagRule{Key: k, Value: v}, nil
}

func (r TagRule) AnyValue() bool {
	return r.Value == "*"
}

func (r TagRule) Match(tags osm.Tags) bool {
	v, ok := tags[r.Key]
	if !ok {
		return false
	}
	return r.AnyValue() || v == r.Value
}

func (r TagRule) String() string {
	return r.Key + "=" + r.Value
}

// A Feature is a named classification rule. Features are immutable after
// the catalog is loaded.
type Feature struct {
	Name  string
	Kind  Kind
	Tags  []TagRule
	Types TypeSet
	// Plural is the plural form of Name.
	Plural string
	// Named features display the name of single elements instead of the
	// feature name.
	Named bool
	// Categories of an ordinary feature.
	Categories []*Feature
	// Members of a category.
	Members []*Feature
	// Magic is the match rule of a magic feature.
	Magic MagicRule

	precision *int
	order     int
}

// Precision returns the specificity of the feature. Higher is more
// specific.
func (f *Feature) Precision() int {
	if f.precision != nil {
		return *f.precision
	}
	switch f.Kind {
	case Category:
		return CategoryPrecision
	case Magic:
		return MagicPrecision
	default:
		return OrdinaryPrecisionBase + len(f.Tags)
	}
}

// Order returns the position of the feature within the catalog.
func (f *Feature) Order() int {
	return f.order
}

func (f *Feature) String() string {
	return fmt.Sprintf("%s %q (precision %d)", f.Kind, f.Name, f.Precision())
}

func (f *Feature) hasCategory(cat *Feature) bool {
	for _, c := range f.Categories {
		if c == cat {
			return true
		}
	}
	return false
}
