// Package changemonger describes OpenStreetMap changesets in plain
// English: "alice created Joe's Bakery and two roads".
//
// An Engine resolves the parent ways and relations of the changed
// elements, classifies them with a feature catalog, groups them by feature
// and renders a sentence.
package changemonger

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/feature"
	"github.com/omniscale/changemonger/log"
	"github.com/omniscale/changemonger/resolve"
	"github.com/omniscale/changemonger/stats"
	"github.com/omniscale/changemonger/summary"
	"github.com/omniscale/changemonger/tracing"
)

// ChangesetSource fetches changesets with all their changes.
type ChangesetSource interface {
	Changeset(ctx context.Context, id int64) (*element.Changeset, error)
}

// Source fetches changesets and the parents of elements, like
// osmapi.Client.
type Source interface {
	ChangesetSource
	resolve.Fetcher
}

var ErrNoChangesetSource = errors.New("no changeset source configured")

type Engine struct {
	matcher  *feature.Matcher
	resolver *resolve.Resolver
	source   ChangesetSource
}

type Option func(*engineOptions)

type engineOptions struct {
	concurrency int
	source      ChangesetSource
}

// Concurrency limits the number of parallel parent lookups.
func Concurrency(n int) Option {
	return func(o *engineOptions) { o.concurrency = n }
}

// WithChangesetSource sets the source for SummarizeChangeset. Defaults to
// the fetcher if it implements ChangesetSource.
func WithChangesetSource(s ChangesetSource) Option {
	return func(o *engineOptions) { o.source = s }
}

// New returns an Engine for catalog. Parent lookups are skipped if f is
// nil.
func New(catalog *feature.Catalog, f resolve.Fetcher, opts ...Option) *Engine {
	o := engineOptions{concurrency: resolve.DefaultConcurrency}
	if s, ok := f.(ChangesetSource); ok {
		o.source = s
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		matcher:  feature.NewMatcher(catalog),
		resolver: resolve.New(f, resolve.Concurrency(o.concurrency)),
		source:   o.source,
	}
}

func (e *Engine) Catalog() *feature.Catalog {
	return e.matcher.Catalog()
}

// Classify returns the most precise feature of elem.
func (e *Engine) Classify(elem *element.Element) *feature.Feature {
	return e.matcher.Best(elem)
}

// ClassifyAll returns all features of elem, most precise first.
func (e *Engine) ClassifyAll(elem *element.Element) ([]*feature.Feature, error) {
	return e.matcher.All(elem)
}

// A Summary is the description of a single changeset.
type Summary struct {
	Changeset *element.Changeset
	Actor     string
	Action    string
	// Elements after parent resolution.
	Elements []*element.Element
	Groups   []summary.Group
	Sentence string
}

// Describe resolves, classifies and groups all changes of cs.
func (e *Engine) Describe(ctx context.Context, cs *element.Changeset) (*Summary, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "changemonger.Describe")
	defer span.End()
	span.SetAttributes(attribute.Int64(tracing.AttrChangesetID, cs.ID))

	s, err := e.describe(ctx, cs)
	stats.RecordSummary(time.Since(start), err == nil)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrSummaryGroup, len(s.Groups)))
	log.Printf("[debug] changeset %d: %d elements in %d groups in %s", cs.ID, len(s.Elements), len(s.Groups), time.Since(start))
	return s, nil
}

func (e *Engine) describe(ctx context.Context, cs *element.Changeset) (*Summary, error) {
	elems, err := e.resolver.Resolve(ctx, cs.Elements())
	if err != nil {
		return nil, errors.Wrapf(err, "resolving changeset %d", cs.ID)
	}
	groups, err := summary.Grouped(elems, e.matcher)
	if err != nil {
		return nil, errors.Wrapf(err, "classifying changeset %d", cs.ID)
	}
	s := &Summary{
		Changeset: cs,
		Actor:     cs.User(),
		Action:    summary.ActionWord(cs),
		Elements:  elems,
		Groups:    groups,
	}
	s.Sentence = summary.Sentence(s.Actor, s.Action, summary.Clauses(groups))
	return s, nil
}

// Summarize returns the sentence for cs.
func (e *Engine) Summarize(ctx context.Context, cs *element.Changeset) (string, error) {
	s, err := e.Describe(ctx, cs)
	if err != nil {
		return "", err
	}
	return s.Sentence, nil
}

// SummarizeChangeset fetches changeset id and returns its sentence.
func (e *Engine) SummarizeChangeset(ctx context.Context, id int64) (string, error) {
	s, err := e.DescribeChangeset(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Sentence, nil
}

// DescribeChangeset fetches changeset id and describes it.
func (e *Engine) DescribeChangeset(ctx context.Context, id int64) (*Summary, error) {
	if e.source == nil {
		return nil, ErrNoChangesetSource
	}
	cs, err := e.source.Changeset(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching changeset %d", id)
	}
	return e.Describe(ctx, cs)
}
