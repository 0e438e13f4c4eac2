/*
DESCRIPTION
  matchgroup.go defines MatchGroup, the result of a duplicate search: a
  set of paths found to be duplicates of one another, optionally anchored
  to a reference path.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package search

// MatchGroup is a set of paths found to be duplicates. In self-mode
// (Search) HasReference is false and Duplicates holds every member,
// len(Duplicates) >= 2. In reference mode (SearchWithReferences)
// HasReference is true, Reference names the driving video, and
// Duplicates holds at least one matched candidate.
type MatchGroup struct {
	Reference    string
	HasReference bool
	Duplicates   []string
}

// Len returns the number of paths in the group, including the reference
// if present.
func (g MatchGroup) Len() int {
	n := len(g.Duplicates)
	if g.HasReference {
		n++
	}
	return n
}

// AllPaths returns every path in the group, reference first if present.
func (g MatchGroup) AllPaths() []string {
	if !g.HasReference {
		out := make([]string, len(g.Duplicates))
		copy(out, g.Duplicates)
		return out
	}
	out := make([]string, 0, len(g.Duplicates)+1)
	out = append(out, g.Reference)
	out = append(out, g.Duplicates...)
	return out
}

// Pairs expands g into every 2-element sub-group it implies: every
// distinct pair of paths within the group. For a reference group each
// pair is (Reference, duplicate); for a self-mode group every combination
// of two distinct members is returned. This is useful to callers (such as
// a match database, outside this module's scope) that record decisions
// about individual pairs rather than whole groups.
func (g MatchGroup) Pairs() []MatchGroup {
	all := g.AllPaths()
	if len(all) < 2 {
		return nil
	}

	if g.HasReference {
		pairs := make([]MatchGroup, 0, len(g.Duplicates))
		for _, d := range g.Duplicates {
			pairs = append(pairs, MatchGroup{Reference: g.Reference, HasReference: true, Duplicates: []string{d}})
		}
		return pairs
	}

	var pairs []MatchGroup
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			pairs = append(pairs, MatchGroup{Duplicates: []string{all[i], all[j]}})
		}
	}
	return pairs
}
