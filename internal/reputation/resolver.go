// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reputation

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/paper-radar/pkg/types"
)

const (
	// defaultMaxConcurrent caps outbound reputation queries process-wide.
	defaultMaxConcurrent = 10

	// teamSize is how many leading authors the team variant resolves.
	teamSize = 5

	// teamConcurrency bounds the per-paper team fan-out.
	teamConcurrency = 5
)

// knownAuthor is one precompiled entry from the known-reputable table.
type knownAuthor struct {
	name   string
	lower  string
	hIndex int
}

// Resolver resolves author names to reputation records. Resolution order,
// first match wins: known-author table, persistent cache, network lookup.
// A failed lookup yields a zero-valued default record; resolution never
// propagates an error into the paper pipeline.
type Resolver struct {
	client *Client
	cache  *Cache
	known  []knownAuthor
	sem    *semaphore.Weighted
	log    zerolog.Logger
}

// NewResolver builds a Resolver. maxConcurrent bounds in-flight network
// lookups across the whole process; zero or negative means the default
// of 10. The known table is matched case-insensitively by substring.
func NewResolver(client *Client, cache *Cache, known map[string]int, maxConcurrent int64, log zerolog.Logger) *Resolver {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	entries := make([]knownAuthor, 0, len(known))
	for name, h := range known {
		entries = append(entries, knownAuthor{name: name, lower: strings.ToLower(name), hIndex: h})
	}
	// Sorted so substring matching is deterministic across runs.
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	return &Resolver{
		client: client,
		cache:  cache,
		known:  entries,
		sem:    semaphore.NewWeighted(maxConcurrent),
		log:    log,
	}
}

// defaultRecord is the zero-valued fallback after a failed or empty lookup.
func defaultRecord(name string) types.AuthorReputation {
	return types.AuthorReputation{Name: name, Provenance: types.ProvenanceDefault}
}

// Resolve returns the reputation record for one author name.
func (r *Resolver) Resolve(ctx context.Context, name string) types.AuthorReputation {
	if name == "" {
		return defaultRecord(name)
	}

	lower := strings.ToLower(name)
	for _, k := range r.known {
		if strings.Contains(lower, k.lower) {
			return types.AuthorReputation{
				Name:       name,
				HIndex:     k.hIndex,
				PaperCount: 100,
				Provenance: types.ProvenanceKnownList,
			}
		}
	}

	if rep, ok := r.cache.Get(name); ok {
		rep.Provenance = types.ProvenanceCacheHit
		return rep
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		r.log.Debug().Err(err).Str("author", name).Msg("reputation lookup cancelled")
		return defaultRecord(name)
	}
	defer r.sem.Release(1)

	rep, err := r.client.Lookup(ctx, name)
	switch {
	case err == nil:
		r.cache.Put(name, rep)
		return rep
	case errors.Is(err, ErrAuthorNotFound):
		// Permanent miss: cache the default so the name is not re-queried.
		d := defaultRecord(name)
		r.cache.Put(name, d)
		r.log.Debug().Str("author", name).Msg("no reputation data for author")
		return d
	default:
		r.log.Warn().Err(err).Str("author", name).Msg("reputation lookup failed")
		return defaultRecord(name)
	}
}

// ResolveFirst resolves only the paper's first author, the primary
// cost-controlled path.
func (r *Resolver) ResolveFirst(ctx context.Context, authors []string) types.AuthorReputation {
	if len(authors) == 0 {
		return defaultRecord("")
	}
	return r.Resolve(ctx, authors[0])
}

// ResolveTeam resolves up to the first five authors concurrently and
// returns the first author's record together with the summed h-index for
// log-scaled team scoring.
func (r *Resolver) ResolveTeam(ctx context.Context, authors []string) (types.AuthorReputation, int) {
	if len(authors) == 0 {
		return defaultRecord(""), 0
	}
	if len(authors) > teamSize {
		authors = authors[:teamSize]
	}

	reps := make([]types.AuthorReputation, len(authors))
	var g errgroup.Group
	g.SetLimit(teamConcurrency)
	for i, name := range authors {
		i, name := i, name // per-iteration copies; required under a pre-1.22 go directive
		g.Go(func() error {
			reps[i] = r.Resolve(ctx, name)
			return nil
		})
	}
	g.Wait()

	total := 0
	for _, rep := range reps {
		total += rep.HIndex
	}
	return reps[0], total
}
