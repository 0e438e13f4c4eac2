/*
DESCRIPTION
  cache.go implements Cache, a disk-backed, mtime-indexed map from video
  path to hash result, safe for concurrent readers and writers, with an
  atomic two-phase save and a metadata-gated reopen.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidhash/herrors"
	"github.com/ausocean/vidhash/vhash"
)

// BuildFunc computes a fresh VideoHash for path. It is the injected
// hashing pipeline (components C1 through C7); the cache never embeds a
// decoder directly.
type BuildFunc func(path string) (vhash.VideoHash, error)

// Cache is a disk-backed map of path to Entry. The zero value is not
// valid; use Open. All methods are safe for concurrent use.
type Cache struct {
	mu            sync.RWMutex
	entries       map[string]Entry
	dirty         atomic.Int64
	saveThreshold int64

	cachePath    string
	metadataPath string
	metadata     Metadata

	build BuildFunc
	log   logging.Logger
}

// metadataSuffix is appended (after stripping the cache file's
// extension) to derive the sidecar's path, per spec §6.2.
const metadataSuffix = ".metadata.txt"

func metadataPathFor(cachePath string) string {
	ext := filepath.Ext(cachePath)
	stem := cachePath[:len(cachePath)-len(ext)]
	return stem + metadataSuffix
}

// Open loads a Cache from cachePath, creating the containing directory
// and an empty cache if none exists yet. If a cache file exists, its
// metadata sidecar must exist and parse to a value equal to metadata, or
// Open fails with a MetadataValidation error: the caller then chooses to
// delete the cache or adjust its options, rather than have it silently
// rebuilt.
func Open(cachePath string, metadata Metadata, saveThreshold int, build BuildFunc, log logging.Logger) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, herrors.NewCacheFileIO(cachePath, err)
	}

	mdPath := metadataPathFor(cachePath)

	c := &Cache{
		entries:       make(map[string]Entry),
		saveThreshold: int64(saveThreshold),
		cachePath:     cachePath,
		metadataPath:  mdPath,
		metadata:      metadata,
		build:         build,
		log:           log,
	}

	cacheExists := fileExists(cachePath)
	mdExists := fileExists(mdPath)

	switch {
	case !cacheExists && !mdExists:
		if err := c.writeMetadata(); err != nil {
			return nil, err
		}
	case cacheExists && !mdExists:
		return nil, herrors.NewMetadataValidation(fmt.Sprintf("cache file %q exists but metadata sidecar %q is missing", cachePath, mdPath))
	default:
		if err := c.validateMetadata(); err != nil {
			return nil, err
		}
	}

	if cacheExists {
		if err := c.load(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (c *Cache) writeMetadata() error {
	if err := os.WriteFile(c.metadataPath, []byte(c.metadata.toLine()+"\n"), 0o644); err != nil {
		return herrors.NewCacheFileIO(c.metadataPath, err)
	}
	return nil
}

func (c *Cache) validateMetadata() error {
	content, err := os.ReadFile(c.metadataPath)
	if err != nil {
		return herrors.NewCacheFileIO(c.metadataPath, err)
	}

	onDisk, err := parseMetadata(string(content))
	if err != nil {
		return err
	}

	if !onDisk.matches(c.metadata) {
		return herrors.NewMetadataValidation(fmt.Sprintf("cache metadata mismatch: on disk %+v, requested %+v", onDisk, c.metadata))
	}
	return nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return herrors.NewCacheFileIO(c.cachePath, err)
	}

	var dtos map[string]entryDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dtos); err != nil {
		return herrors.NewDeserialization(err)
	}

	entries := make(map[string]Entry, len(dtos))
	for path, dto := range dtos {
		entries[path] = fromDTO(dto)
	}
	c.entries = entries
	return nil
}

// Fetch returns the cached result for path without touching the
// filesystem. It fails with a KeyMissing error if path has no entry.
func (c *Cache) Fetch(path string) (vhash.VideoHash, error) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok {
		return vhash.VideoHash{}, herrors.NewKeyMissing(path)
	}
	if entry.Err != nil {
		return vhash.VideoHash{}, entry.Err
	}
	return entry.Value, nil
}

// FetchOrUpdate returns the cached result for path, recomputing it if the
// file's current mtime differs from the stored one by more than the
// stale window, or if there is no cached entry yet. If path no longer
// exists on disk, any cached entry is removed and (false, Entry{}, nil)
// is returned. The lock is never held across the (potentially slow) hash
// build: a read lock checks staleness, is dropped, the hash is built,
// then a write lock installs the result.
func (c *Cache) FetchOrUpdate(path string) (found bool, result Entry, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		c.remove(path)
		return false, Entry{}, nil
	}
	mtime := info.ModTime()

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok && !entry.isStale(mtime) {
		return true, entry, nil
	}

	return true, c.rebuild(path, mtime), nil
}

// ForceUpdate unconditionally recomputes path's hash, regardless of
// whether a fresh cached entry exists.
func (c *Cache) ForceUpdate(path string) (found bool, result Entry, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		c.remove(path)
		return false, Entry{}, nil
	}
	return true, c.rebuild(path, info.ModTime()), nil
}

// rebuild invokes the hashing pipeline outside any lock and installs the
// resulting entry (success or failure) under a write lock.
func (c *Cache) rebuild(path string, mtime time.Time) Entry {
	value, buildErr := c.build(path)
	if buildErr != nil && c.log != nil {
		c.log.Warning("failed to hash video", "path", path, "error", buildErr.Error())
	}

	entry := Entry{ModTime: mtime, Value: value, Err: buildErr}

	c.mu.Lock()
	c.entries[path] = entry
	c.mu.Unlock()

	c.bumpDirty()
	return entry
}

func (c *Cache) remove(path string) {
	c.mu.Lock()
	_, existed := c.entries[path]
	delete(c.entries, path)
	c.mu.Unlock()

	if existed {
		c.bumpDirty()
	}
}

// bumpDirty increments the dirty counter and triggers an auto-save once
// it reaches saveThreshold. Occasional spurious extra saves from racing
// goroutines are acceptable; losing dirty state is not, so the counter
// uses ordinary atomic arithmetic rather than a lock.
func (c *Cache) bumpDirty() {
	if c.saveThreshold <= 0 {
		return
	}
	if c.dirty.Add(1) >= c.saveThreshold {
		if err := c.Save(); err == nil {
			c.dirty.Store(0)
		}
	}
}

// Refresh calls FetchOrUpdate (or ForceUpdate, if force) for every path,
// collecting and returning non-fatal hash-build errors; it does not abort
// on the first error.
func (c *Cache) Refresh(paths []string, force bool) []error {
	var errs []error
	for _, p := range paths {
		var entry Entry
		var found bool
		if force {
			found, entry, _ = c.ForceUpdate(p)
		} else {
			found, entry, _ = c.FetchOrUpdate(p)
		}
		if found && entry.Err != nil {
			errs = append(errs, entry.Err)
		}
	}
	return errs
}

// Save atomically writes the entire cache to disk: it serializes a
// snapshot of the map to a sibling temp file, fsyncs it, then renames it
// over the real cache file. A failure at any step leaves the previous
// on-disk cache untouched.
func (c *Cache) Save() error {
	c.mu.RLock()
	dtos := make(map[string]entryDTO, len(c.entries))
	for path, e := range c.entries {
		dtos[path] = toDTO(e)
	}
	c.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dtos); err != nil {
		return herrors.NewSerialization(err)
	}

	tmpPath := c.cachePath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return herrors.NewCacheFileIO(tmpPath, err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return herrors.NewCacheFileIO(tmpPath, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return herrors.NewCacheFileIO(tmpPath, err)
	}
	if err := f.Close(); err != nil {
		return herrors.NewCacheFileIO(tmpPath, err)
	}

	if err := os.Rename(tmpPath, c.cachePath); err != nil {
		return herrors.NewCacheFileIO(c.cachePath, err)
	}
	return nil
}

// CachedPaths returns every path with a successful cached hash.
func (c *Cache) CachedPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0, len(c.entries))
	for path, e := range c.entries {
		if e.Err == nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// ErrorPaths returns every path whose cached entry recorded a hash
// failure.
func (c *Cache) ErrorPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	paths := make([]string, 0)
	for path, e := range c.entries {
		if e.Err != nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
