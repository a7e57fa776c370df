// Package resolve links the elements of a changeset to the ways and
// relations that reference them, and removes untagged elements that are
// represented by their parents.
package resolve

import (
	"context"
	"time"

	osm "github.com/omniscale/go-osm"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/omniscale/changemonger/element"
	"github.com/omniscale/changemonger/log"
	"github.com/omniscale/changemonger/stats"
	"github.com/omniscale/changemonger/tracing"
)

// Fetcher looks up the current parents of an element.
type Fetcher interface {
	WaysForNode(ctx context.Context, id int64) ([]*osm.Way, error)
	RelationsForElement(ctx context.Context, t element.Type, id int64) ([]*osm.Relation, error)
}

const DefaultConcurrency = 4

type Resolver struct {
	fetcher     Fetcher
	concurrency int
}

type Option func(*Resolver)

// Concurrency limits the number of parallel fetches.
func Concurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New returns a Resolver. Remote lookups are skipped if f is nil.
func New(f Fetcher, opts ...Option) *Resolver {
	r := &Resolver{fetcher: f, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a copy of elems with back-references to all local and
// remote parents. Untagged elements with a parent are removed, fetched
// parents are added. The result is sorted with element.Sort and only
// contains the latest version of each element. elems is not modified.
//
// Failed lookups only leave the element without remote parents. Resolve
// only fails if ctx is canceled.
func (r *Resolver) Resolve(ctx context.Context, elems []*element.Element) ([]*element.Element, error) {
	ctx, span := tracing.StartSpan(ctx, "resolve.Resolve")
	defer span.End()
	start := time.Now()

	a := newArena(elems)
	a.linkLocal()

	var fetched int
	if r.fetcher != nil {
		n, err := r.remoteWays(ctx, a)
		if err != nil {
			tracing.RecordError(ctx, err)
			return nil, err
		}
		fetched += n
		n, err = r.remoteRelations(ctx, a)
		if err != nil {
			tracing.RecordError(ctx, err)
			return nil, err
		}
		fetched += n
	}

	result, pruned := a.prune()
	element.Sort(result)
	deduped := element.Dedupe(result)

	stats.RecordResolved(fetched, pruned, len(result)-len(deduped))
	tracing.SetAttributes(ctx,
		attribute.Int(tracing.AttrElements, len(deduped)),
		attribute.Int(tracing.AttrFetched, fetched),
		attribute.Int(tracing.AttrPruned, pruned),
	)
	log.Printf("[debug] resolved %d elements: %d fetched, %d pruned, %d duplicates in %s",
		len(elems), fetched, pruned, len(result)-len(deduped), time.Since(start))
	return deduped, nil
}

// remoteWays fetches the ways of all untagged nodes without local ways.
func (r *Resolver) remoteWays(ctx context.Context, a *arena) (int, error) {
	candidates := a.candidates(func(e *element.Element) bool {
		return e.Type() == element.Node && e.Tagless() && len(e.Ways) == 0
	})
	if len(candidates) == 0 {
		return 0, nil
	}
	tracing.AddEvent(ctx, "remote ways", attribute.Int(tracing.AttrCandidates, len(candidates)))

	results := make([][]*osm.Way, len(candidates))
	err := r.parallel(ctx, len(candidates), func(ctx context.Context, i int) {
		ways, err := r.fetcher.WaysForNode(ctx, candidates[i].ID)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[warn] fetching ways of %s: %s", candidates[i], err)
				stats.RecordFetchError("ways")
			}
			return
		}
		results[i] = ways
	})
	if err != nil {
		return 0, err
	}

	var added int
	for _, ways := range results {
		for _, w := range ways {
			if a.add(element.NewWay(w)) {
				added++
			}
		}
	}
	return added, nil
}

// remoteRelations fetches the relations of all untagged elements without
// any local or remote parent.
func (r *Resolver) remoteRelations(ctx context.Context, a *arena) (int, error) {
	candidates := a.candidates(func(e *element.Element) bool {
		return e.Tagless() && !e.Referenced()
	})
	if len(candidates) == 0 {
		return 0, nil
	}
	tracing.AddEvent(ctx, "remote relations", attribute.Int(tracing.AttrCandidates, len(candidates)))

	results := make([][]*osm.Relation, len(candidates))
	err := r.parallel(ctx, len(candidates), func(ctx context.Context, i int) {
		c := candidates[i]
		rels, err := r.fetcher.RelationsForElement(ctx, c.Type, c.ID)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[warn] fetching relations of %s: %s", c, err)
				stats.RecordFetchError("relations")
			}
			return
		}
		results[i] = rels
	})
	if err != nil {
		return 0, err
	}

	var added int
	for _, rels := range results {
		for _, rel := range rels {
			if a.add(element.NewRelation(rel)) {
				added++
			}
		}
	}
	return added, nil
}

// parallel calls fn for 0..n-1 with at most r.concurrency calls at a
// time. Returns the context error if ctx was canceled.
func (r *Resolver) parallel(ctx context.Context, n int, fn func(context.Context, int)) error {
	g := errgroup.Group{}
	g.SetLimit(r.concurrency)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	g.Wait()
	return ctx.Err()
}
