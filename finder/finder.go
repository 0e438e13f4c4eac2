/*
DESCRIPTION
  finder.go implements Finder, the orchestrator tying file projection,
  the persistent hash cache and similarity search into a single duplicate
  video detection run.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package finder orchestrates a duplicate video detection run: it
// projects a set of candidate files, refreshes their hashes through a
// worker pool backed by a persistent cache, and searches the result for
// duplicate groups.
package finder

import (
	"fmt"
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/cache"
	"github.com/ausocean/vidhash/search"
	"github.com/ausocean/vidhash/vdconfig"
	"github.com/ausocean/vidhash/vhash"
)

// Finder runs a duplicate-video search over a file projection, using a
// cache to avoid re-hashing unchanged files.
type Finder struct {
	cfg   *vdconfig.Config
	cache *cache.Cache
	log   logging.Logger
}

// New validates cfg and opens its configured cache, wiring build into
// the cache so unseen or stale files are hashed on demand.
func New(cfg *vdconfig.Config, build cache.BuildFunc) (*Finder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := cache.Open(cfg.CachePath, cfg.CacheMetadata(), cfg.SaveThreshold, build, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("finder: could not open cache: %w", err)
	}

	return &Finder{cfg: cfg, cache: c, log: cfg.Logger}, nil
}

// Cache returns the finder's underlying cache, for callers that need
// direct introspection (CachedPaths, ErrorPaths) or an explicit Save.
func (f *Finder) Cache() *cache.Cache { return f.cache }

// Run projects the configured file set, refreshes every candidate's hash
// across f.cfg.Workers concurrent workers, then searches the resulting
// hashes for duplicate groups at f.cfg.Tolerance. It returns the match
// groups found, along with any per-file hashing errors encountered
// (hashing errors do not abort the run: a file that fails to hash is
// simply excluded from the search).
// force, when true, recomputes every candidate's hash regardless of
// whether a fresh cached entry already exists (spec's ForceUpdate cache
// operation).
func (f *Finder) Run(force bool) ([]search.MatchGroup, []error, error) {
	proj, err := f.cfg.Projection()
	if err != nil {
		return nil, nil, fmt.Errorf("finder: bad projection config: %w", err)
	}

	paths, walkErrs, err := proj.FromFilesystem()
	if err != nil {
		return nil, nil, fmt.Errorf("finder: could not enumerate files: %w", err)
	}

	hashErrs := f.refresh(paths, force)

	hashes := make([]vhash.VideoHash, 0, len(paths))
	for _, p := range paths {
		h, err := f.cache.Fetch(p)
		if err != nil {
			continue
		}
		hashes = append(hashes, h)
	}

	groups, err := search.Search(hashes, f.cfg.Tolerance)
	if err != nil {
		return nil, nil, fmt.Errorf("finder: search failed: %w", err)
	}

	return groups, append(walkErrs, hashErrs...), nil
}

// refresh hashes every path in paths across f.cfg.Workers goroutines,
// each pulling from a shared work queue, and returns the hashing errors
// collected along the way. If force is true, FetchOrUpdate's staleness
// check is bypassed and every path is rebuilt.
func (f *Finder) refresh(paths []string, force bool) []error {
	work := make(chan string, len(paths))
	for _, p := range paths {
		work <- p
	}
	close(work)

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)

	workers := f.cfg.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for path := range work {
				var entry cache.Entry
				if force {
					_, entry, _ = f.cache.ForceUpdate(path)
				} else {
					_, entry, _ = f.cache.FetchOrUpdate(path)
				}
				if entry.Err != nil {
					mu.Lock()
					errs = append(errs, entry.Err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return errs
}

// RunAgainstReferences searches candidatePaths for duplicates of
// refPaths, after refreshing both sets through the same cache. Both path
// lists are used as given; the configured projection is not applied to
// them. consume controls whether a candidate already matched to one
// reference is removed from consideration for the next (spec §7.4).
func (f *Finder) RunAgainstReferences(refPaths, candidatePaths []string, consume, force bool) ([]search.MatchGroup, []error, error) {
	var errs []error
	errs = append(errs, f.refresh(refPaths, force)...)
	errs = append(errs, f.refresh(candidatePaths, force)...)

	refs := make([]vhash.VideoHash, 0, len(refPaths))
	for _, p := range refPaths {
		h, err := f.cache.Fetch(p)
		if err != nil {
			continue
		}
		refs = append(refs, h)
	}

	cands := make([]vhash.VideoHash, 0, len(candidatePaths))
	for _, p := range candidatePaths {
		h, err := f.cache.Fetch(p)
		if err != nil {
			continue
		}
		cands = append(cands, h)
	}

	groups, err := search.SearchWithReferences(refs, cands, f.cfg.Tolerance, consume)
	if err != nil {
		return nil, nil, fmt.Errorf("finder: reference search failed: %w", err)
	}
	return groups, errs, nil
}
