package osmapi

import (
	"encoding/xml"
	"time"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"

	"github.com/omniscale/changemonger/element"
)

// osmFile is an <osm> document as returned for element requests.
type osmFile struct {
	XMLName   xml.Name   `xml:"osm"`
	Nodes     []node     `xml:"node"`
	Ways      []way      `xml:"way"`
	Relations []relation `xml:"relation"`
}

type elem struct {
	ID        int64     `xml:"id,attr"`
	Version   int32     `xml:"version,attr"`
	Changeset int64     `xml:"changeset,attr"`
	Timestamp time.Time `xml:"timestamp,attr"`
	UserName  string    `xml:"user,attr"`
	UserID    int32     `xml:"uid,attr"`
	Tags      []tag     `xml:"tag"`
}

type tag struct {
	Key   string `xml:"k,attr"`
	Value string `xml:"v,attr"`
}

type node struct {
	elem
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

type way struct {
	elem
	Nds []struct {
		Ref int64 `xml:"ref,attr"`
	} `xml:"nd"`
}

type relation struct {
	elem
	Members []struct {
		Type string `xml:"type,attr"`
		Ref  int64  `xml:"ref,attr"`
		Role string `xml:"role,attr"`
	} `xml:"member"`
}

func (e elem) osmElement() osm.Element {
	result := osm.Element{
		ID: e.ID,
		Metadata: &osm.Metadata{
			UserID:    e.UserID,
			UserName:  e.UserName,
			Version:   e.Version,
			Timestamp: e.Timestamp,
			Changeset: e.Changeset,
		},
	}
	if len(e.Tags) > 0 {
		result.Tags = make(osm.Tags, len(e.Tags))
		for _, t := range e.Tags {
			result.Tags[t.Key] = t.Value
		}
	}
	return result
}

var memberTypes = map[string]osm.MemberType{
	"node":     osm.NodeMember,
	"way":      osm.WayMember,
	"relation": osm.RelationMember,
}

// document contains all elements of an <osm> document.
type document struct {
	Nodes     []*osm.Node
	Ways      []*osm.Way
	Relations []*osm.Relation
}

func parseDocument(b []byte) (*document, error) {
	f := osmFile{}
	if err := xml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "decoding osm document")
	}
	doc := &document{}
	for _, n := range f.Nodes {
		doc.Nodes = append(doc.Nodes, &osm.Node{
			Element: n.osmElement(),
			Lat:     n.Lat,
			Long:    n.Lon,
		})
	}
	for _, w := range f.Ways {
		ow := &osm.Way{Element: w.osmElement()}
		for _, nd := range w.Nds {
			ow.Refs = append(ow.Refs, nd.Ref)
		}
		doc.Ways = append(doc.Ways, ow)
	}
	for _, r := range f.Relations {
		rel := &osm.Relation{Element: r.osmElement()}
		for _, m := range r.Members {
			t, ok := memberTypes[m.Type]
			if !ok {
				continue
			}
			rel.Members = append(rel.Members, osm.Member{ID: m.Ref, Type: t, Role: m.Role})
		}
		doc.Relations = append(doc.Relations, rel)
	}
	return doc, nil
}

// first returns the first element of type t.
func (d *document) first(t element.Type) *element.Element {
	switch t {
	case element.Node:
		if len(d.Nodes) > 0 {
			return element.NewNode(d.Nodes[0])
		}
	case element.Way:
		if len(d.Ways) > 0 {
			return element.NewWay(d.Ways[0])
		}
	case element.Relation:
		if len(d.Relations) > 0 {
			return element.NewRelation(d.Relations[0])
		}
	}
	return nil
}
