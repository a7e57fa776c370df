package osmapi

import (
	"context"
	"fmt"

	osm "github.com/omniscale/go-osm"
	"github.com/pkg/errors"

	"github.com/omniscale/changemonger/element"
)

// Element fetches a single node, way or relation. version 0 fetches the
// current version.
func (c *Client) Element(ctx context.Context, t element.Type, id int64, version int32) (*element.Element, error) {
	path := fmt.Sprintf("/%s/%d", t, id)
	if version > 0 {
		path = fmt.Sprintf("%s/%d", path, version)
	}
	body, err := c.get(ctx, t.String(), path)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s/%d", t, id)
	}
	e := doc.first(t)
	if e == nil {
		return nil, errors.Errorf("%s/%d missing in response", t, id)
	}
	return e, nil
}

func (c *Client) Node(ctx context.Context, id int64, version int32) (*element.Element, error) {
	return c.Element(ctx, element.Node, id, version)
}

func (c *Client) Way(ctx context.Context, id int64, version int32) (*element.Element, error) {
	return c.Element(ctx, element.Way, id, version)
}

func (c *Client) Relation(ctx context.Context, id int64, version int32) (*element.Element, error) {
	return c.Element(ctx, element.Relation, id, version)
}

// WaysForNode returns the current ways that reference node id.
func (c *Client) WaysForNode(ctx context.Context, id int64) ([]*osm.Way, error) {
	body, err := c.get(ctx, "node_ways", fmt.Sprintf("/node/%d/ways", id))
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching ways of node/%d", id)
	}
	return doc.Ways, nil
}

// RelationsForElement returns the current relations that have the
// element as a member.
func (c *Client) RelationsForElement(ctx context.Context, t element.Type, id int64) ([]*osm.Relation, error) {
	body, err := c.get(ctx, t.String()+"_relations", fmt.Sprintf("/%s/%d/relations", t, id))
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching relations of %s/%d", t, id)
	}
	return doc.Relations, nil
}
