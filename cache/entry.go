/*
DESCRIPTION
  entry.go defines Entry, the (mtime, result) tuple stored per cached
  path, and its gob-serializable wire representation.

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
	"time"

	"github.com/ausocean/vidhash/herrors"
	"github.com/ausocean/vidhash/vhash"
)

// Entry pairs the filesystem mtime observed at hash time with either a
// successful VideoHash or the error encountered while building one.
// Storing failed hashes is intentional: a failed entry is not retried
// until the underlying file's mtime changes.
type Entry struct {
	ModTime time.Time
	Value   vhash.VideoHash
	Err     error
}

// staleWindow is the mtime tolerance: filesystems round modification
// times differently, so entries are only considered stale when the
// observed mtime differs from the stored one by more than this.
const staleWindow = 2 * time.Second

// isStale reports whether observed differs from e.ModTime by more than
// staleWindow, ignoring the sign of the difference.
func (e Entry) isStale(observed time.Time) bool {
	delta := observed.Sub(e.ModTime)
	if delta < 0 {
		delta = -delta
	}
	return delta > staleWindow
}

// entryDTO is the gob wire format for an Entry. error is not itself
// gob-encodable, so failed hashes are flattened into kind/path/reason
// fields and reconstructed through herrors on load.
type entryDTO struct {
	ModTimeUnixNano int64
	Value           vhash.VideoHash
	HasErr          bool
	ErrKind         herrors.Kind
	ErrPath         string
	ErrReason       string
}

func toDTO(e Entry) entryDTO {
	dto := entryDTO{
		ModTimeUnixNano: e.ModTime.UnixNano(),
		Value:           e.Value,
	}
	if e.Err != nil {
		dto.HasErr = true
		if he, ok := e.Err.(*herrors.Error); ok {
			dto.ErrKind = he.Kind
			dto.ErrPath = he.Path
			dto.ErrReason = he.Reason
		} else {
			dto.ErrKind = herrors.VideoProcessing
			dto.ErrReason = e.Err.Error()
		}
	}
	return dto
}

func fromDTO(dto entryDTO) Entry {
	e := Entry{
		ModTime: time.Unix(0, dto.ModTimeUnixNano),
		Value:   dto.Value,
	}
	if dto.HasErr {
		e.Err = &herrors.Error{Kind: dto.ErrKind, Path: dto.ErrPath, Reason: dto.ErrReason}
	}
	return e
}
