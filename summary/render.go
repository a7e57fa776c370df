// Package summary describes a set of classified elements as an English
// sentence.
package summary

import (
	"strings"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/english"
	"github.com/omniscale/changemonger/feature"
)

// Nothing is the clause for an empty element list.
const Nothing = "nothing"

// ActionWord returns the verb for the changes in cs. Changesets with a
// single kind of action get a specific verb, all others are "edited".
func ActionWord(cs *element.Changeset) string {
	kind := element.NoAction
	for _, a := range cs.Actions {
		if len(a.Elements) == 0 {
			continue
		}
		if kind != element.NoAction && a.Kind != kind {
			return "edited"
		}
		kind = a.Kind
	}
	switch kind {
	case element.Create:
		return "created"
	case element.Modify:
		return "modified"
	case element.Delete:
		return "deleted"
	}
	return "edited"
}

// CommonName returns the brand, operator or name of e, in this order of
// preference. Brands and operators get an article: "a Starbucks".
func CommonName(e *element.Element) (string, bool) {
	tags := e.Tags()
	if v := tags["brand"]; v != "" {
		return english.A(v), true
	}
	if v := tags["operator"]; v != "" {
		return english.A(v), true
	}
	if v := tags["name"]; v != "" {
		return v, true
	}
	return "", false
}

// DisplayName returns the name of a single element e matched as f.
func DisplayName(e *element.Element, f *feature.Feature) string {
	if e.Tagless() || !f.Named {
		return english.A(f.Name)
	}
	if name, ok := CommonName(e); ok {
		return name
	}
	return "an unnamed " + f.Name
}

// Clause describes a group: "three roads" or the display name of a single
// element.
func (g Group) Clause() string {
	if len(g.Elements) > 1 {
		return english.NumberToWords(int64(len(g.Elements))) + " " + g.Feature.Plural
	}
	return DisplayName(g.Elements[0], g.Feature)
}

// Clauses returns the clauses of all groups.
func Clauses(groups []Group) []string {
	clauses := make([]string, len(groups))
	for i, g := range groups {
		clauses[i] = g.Clause()
	}
	return clauses
}

// Sentence joins actor, action and clauses: "Alice created a bakery and
// two roads".
func Sentence(actor, action string, clauses []string) string {
	list := english.Join(clauses)
	if list == "" {
		list = Nothing
	}
	return strings.Join([]string{actor, action, list}, " ")
}

// Render classifies and groups elems and returns the sentence.
func Render(actor, action string, elems []*element.Element, m *feature.Matcher) (string, error) {
	groups, err := Grouped(elems, m)
	if err != nil {
		return "", err
	}
	return Sentence(actor, action, Clauses(groups)), nil
}
