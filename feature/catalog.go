package feature

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/english"
	"github.com/omniscale/changemonger/feature/config"
)

// A Catalog is an indexed, read-only set of features, categories and magic
// features. It is safe for concurrent use.
type Catalog struct {
	features   []*Feature
	categories []*Feature
	magic      []*Feature

	byName     map[string]*Feature
	categoryBy map[string]*Feature

	// per element type, in catalog order
	ordinaryByType [3][]*Feature
	magicByType    [3][]*Feature
}

// Stats contains the number of loaded features.
type Stats struct {
	Features   int
	Categories int
	Magic      int
}

// FromFile loads a catalog from a single YAML file.
func FromFile(filename string) (*Catalog, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", filename)
	}
	c, err := New(b)
	if err != nil {
		return nil, errors.Wrapf(err, "loading catalog %s", filename)
	}
	return c, nil
}

// FromDir loads all .yml and .yaml files from dir into a single catalog.
// Files are read in lexical order, hidden files are skipped.
func FromDir(dir string) (*Catalog, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog dir %s", dir)
	}
	var records []config.Feature
	for _, fi := range files {
		name := fi.Name()
		if fi.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if ext := filepath.Ext(name); ext != ".yml" && ext != ".yaml" {
			continue
		}
		b, err := ioutil.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "reading catalog %s", name)
		}
		r, err := config.Parse(b)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing catalog %s", name)
		}
		records = append(records, r...)
	}
	return FromRecords(records)
}

// New loads a catalog from YAML.
func New(b []byte) (*Catalog, error) {
	records, err := config.Parse(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing catalog")
	}
	return FromRecords(records)
}

// FromRecords builds a catalog from parsed records. Any invalid record
// fails the whole load.
func FromRecords(records []config.Feature) (*Catalog, error) {
	c := &Catalog{
		byName:     make(map[string]*Feature),
		categoryBy: make(map[string]*Feature),
	}
	for i, r := range records {
		if err := c.add(r); err != nil {
			if r.Name != "" {
				return nil, errors.Wrapf(err, "feature #%d '%s'", i+1, r.Name)
			}
			return nil, errors.Wrapf(err, "feature #%d", i+1)
		}
	}
	for _, f := range magicFeatures() {
		c.addMagic(f)
	}
	return c, nil
}

func (c *Catalog) add(r config.Feature) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("missing name")
	}
	if _, ok := c.byName[name]; ok {
		return errors.Errorf("duplicate feature '%s'", name)
	}
	if len(r.Tags) == 0 {
		return errors.New("missing tags")
	}
	f := &Feature{
		Name:      name,
		Kind:      Ordinary,
		Plural:    r.Plural,
		Named:     r.Named || r.UseName,
		precision: r.Precision,
		order:     len(c.features),
	}
	for _, t := range r.Tags {
		rule, err := ParseTagRule(t)
		if err != nil {
			return err
		}
		f.Tags = append(f.Tags, rule)
	}
	types, err := ParseTypes(r.Types)
	if err != nil {
		return err
	}
	f.Types = types
	if f.Plural == "" {
		f.Plural = english.Plural(f.Name)
	}

	for _, catName := range r.Categories {
		catName = strings.TrimSpace(catName)
		if catName == "" {
			return errors.New("empty category name")
		}
		cat := c.category(catName)
		if f.hasCategory(cat) {
			continue
		}
		f.Categories = append(f.Categories, cat)
		cat.Members = append(cat.Members, f)
	}

	c.features = append(c.features, f)
	c.byName[name] = f
	for _, t := range []element.Type{element.Node, element.Way, element.Relation} {
		if f.Types.Has(t) {
			c.ordinaryByType[t] = append(c.ordinaryByType[t], f)
		}
	}
	return nil
}

// category returns the category with name, creating it on first use.
func (c *Catalog) category(name string) *Feature {
	if cat, ok := c.categoryBy[name]; ok {
		return cat
	}
	cat := &Feature{
		Name:   name,
		Kind:   Category,
		Types:  AllTypes,
		Plural: english.Plural(name),
		order:  len(c.categories),
	}
	c.categories = append(c.categories, cat)
	c.categoryBy[name] = cat
	return cat
}

func (c *Catalog) addMagic(f *Feature) {
	f.order = len(c.magic)
	if f.Plural == "" {
		f.Plural = english.Plural(f.Name)
	}
	c.magic = append(c.magic, f)
	for _, t := range []element.Type{element.Node, element.Way, element.Relation} {
		if f.Types.Has(t) {
			c.magicByType[t] = append(c.magicByType[t], f)
		}
	}
}

// Feature returns the ordinary feature with name.
func (c *Catalog) Feature(name string) (*Feature, bool) {
	f, ok := c.byName[name]
	return f, ok
}

// Category returns the category with name.
func (c *Catalog) Category(name string) (*Feature, bool) {
	f, ok := c.categoryBy[name]
	return f, ok
}

// Features returns all ordinary features in catalog order.
func (c *Catalog) Features() []*Feature {
	return append([]*Feature(nil), c.features...)
}

// Categories returns all categories sorted by name.
func (c *Catalog) Categories() []*Feature {
	cats := append([]*Feature(nil), c.categories...)
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats
}

// Magic returns all magic features.
func (c *Catalog) Magic() []*Feature {
	return append([]*Feature(nil), c.magic...)
}

// ForType returns the ordinary and magic features that apply to elements
// of type t.
func (c *Catalog) ForType(t element.Type) []*Feature {
	result := make([]*Feature, 0, len(c.ordinaryByType[t])+len(c.magicByType[t]))
	result = append(result, c.ordinaryByType[t]...)
	return append(result, c.magicByType[t]...)
}

func (c *Catalog) Stats() Stats {
	return Stats{
		Features:   len(c.features),
		Categories: len(c.categories),
		Magic:      len(c.magic),
	}
}
