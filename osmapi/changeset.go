package osmapi

import (
	"bytes"
	"context"
	"fmt"
	"io"

	osm "github.com/omniscale/go-osm"
	"github.com/omniscale/go-osm/parser/changeset"
	"github.com/omniscale/go-osm/parser/diff"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/tracing"
)

// Changeset fetches the metadata and all changes of changeset id.
func (c *Client) Changeset(ctx context.Context, id int64) (*element.Changeset, error) {
	ctx, span := tracing.StartSpan(ctx, "osmapi.Changeset")
	defer span.End()
	span.SetAttributes(attribute.Int64(tracing.AttrChangesetID, id))

	meta, err := c.ChangesetMetadata(ctx, id)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	body, err := c.get(ctx, "changeset_download", fmt.Sprintf("/changeset/%d/download", id))
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	cs := &element.Changeset{Changeset: *meta}
	if err := ParseChange(ctx, bytes.NewReader(body), cs); err != nil {
		tracing.RecordError(ctx, err)
		return nil, errors.Wrapf(err, "changeset %d", id)
	}
	span.SetAttributes(attribute.Int(tracing.AttrElements, len(cs.Elements())))
	return cs, nil
}

// ChangesetMetadata fetches the metadata of changeset id, including the
// discussion.
func (c *Client) ChangesetMetadata(ctx context.Context, id int64) (*osm.Changeset, error) {
	body, err := c.get(ctx, "changeset", fmt.Sprintf("/changeset/%d?include_discussion=true", id))
	if err != nil {
		return nil, err
	}

	changesets := make(chan osm.Changeset)
	p := changeset.New(bytes.NewReader(body), changeset.Config{Changesets: changesets})

	var result []osm.Changeset
	done := make(chan struct{})
	go func() {
		for cs := range changesets {
			result = append(result, cs)
		}
		close(done)
	}()
	err = p.Parse(ctx)
	<-done
	if err != nil {
		return nil, errors.Wrapf(err, "parsing changeset %d", id)
	}
	for _, cs := range result {
		if cs.ID == id {
			return &cs, nil
		}
	}
	return nil, errors.Errorf("changeset %d missing in response", id)
}

// ParseChange reads an osmChange document and adds all changes to cs.
func ParseChange(ctx context.Context, r io.Reader, cs *element.Changeset) error {
	diffs := make(chan osm.Diff)
	p := diff.New(r, diff.Config{IncludeMetadata: true, Diffs: diffs})

	done := make(chan struct{})
	go func() {
		for d := range diffs {
			if e := element.FromDiff(d); e != nil {
				cs.Add(e.Action, e)
			}
		}
		close(done)
	}()
	err := p.Parse(ctx)
	<-done
	if err != nil {
		return errors.Wrap(err, "parsing osmChange")
	}
	return ctx.Err()
}
