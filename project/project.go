/*
DESCRIPTION
  project.go implements FileProjection: enumerating candidate video paths
  under a set of include directories, minus a set of exclude directories
  and excluded file extensions.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package project enumerates candidate files under a set of include
// paths, filtering out files under exclude paths and files whose
// extension is in an exclude list.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Projection holds the include/exclude configuration for file
// enumeration. The zero value is not valid; use New.
type Projection struct {
	include     []string
	exclude     []string
	excludeExts map[string]struct{}
}

// ErrSrcPathExcluded is returned by New when an include path is equal to
// an exclude path within the same projection.
type ErrSrcPathExcluded struct {
	SrcPath, ExclPath string
}

func (e *ErrSrcPathExcluded) Error() string {
	return fmt.Sprintf("project: include path %q is also an exclude path", e.SrcPath)
}

// New builds a Projection from include, exclude and excludeExts (matched
// case-insensitively, with or without a leading dot). It rejects any
// include path that equals an exclude path.
func New(include, exclude, excludeExts []string) (*Projection, error) {
	for _, inc := range include {
		for _, exc := range exclude {
			if filepath.Clean(inc) == filepath.Clean(exc) {
				return nil, &ErrSrcPathExcluded{SrcPath: inc, ExclPath: exc}
			}
		}
	}

	exts := make(map[string]struct{}, len(excludeExts))
	for _, e := range excludeExts {
		exts[normalizeExt(e)] = struct{}{}
	}

	return &Projection{include: append([]string(nil), include...), exclude: append([]string(nil), exclude...), excludeExts: exts}, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Contains reports whether path is beneath any include path, not beneath
// any exclude path, and does not carry an excluded extension.
func (p *Projection) Contains(path string) bool {
	return p.underAny(path, p.include) && !p.underAny(path, p.exclude) && !p.hasExcludedExt(path)
}

func (p *Projection) underAny(path string, roots []string) bool {
	for _, root := range roots {
		if isUnder(root, path) {
			return true
		}
	}
	return false
}

func isUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

func (p *Projection) hasExcludedExt(path string) bool {
	_, ok := p.excludeExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// FromFilesystem walks every include path and returns the set of regular
// files that pass Contains, sorted for determinism. It fails fatally if
// any include or exclude path does not exist on disk; per-entry walk
// errors (e.g. a permission-denied subdirectory) are collected and
// returned alongside a successful partial result rather than aborting
// the whole walk.
func (p *Projection) FromFilesystem() ([]string, []error, error) {
	for _, root := range append(append([]string(nil), p.include...), p.exclude...) {
		if _, err := os.Stat(root); err != nil {
			return nil, nil, fmt.Errorf("project: path %q does not exist: %w", root, err)
		}
	}

	var files []string
	var walkErrs []error

	for _, root := range p.include {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				walkErrs = append(walkErrs, err)
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if p.Contains(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			walkErrs = append(walkErrs, err)
		}
	}

	sort.Strings(files)
	return files, walkErrs, nil
}

// FromList filters an in-memory list of paths the same way
// FromFilesystem filters the filesystem, without touching disk.
func (p *Projection) FromList(paths []string) []string {
	var out []string
	for _, path := range paths {
		if p.Contains(path) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out
}
