/*
DESCRIPTION
  wiring.go derives the cache metadata gate and file projection that a
  finder run needs from a validated Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vdconfig

import (
	"github.com/ausocean/vidhash/cache"
	"github.com/ausocean/vidhash/project"
	"github.com/ausocean/vidhash/vhash/sampling"
)

// CacheMetadata derives the cache metadata gate (spec §6.2) from c. It
// must be called after Validate, since it reads defaulted fields.
func (c *Config) CacheMetadata() cache.Metadata {
	return cache.Metadata{
		OSFamily:           c.OSFamily,
		DecoderBackend:     c.DecoderBackend,
		CropPolicy:         c.CropPolicy.String(),
		SkipForwardSeconds: sampling.Default(c.DCTSize).SkipSeconds,
		CacheVersion:       cache.CurrentCacheVersion,
	}
}

// Projection builds the file projection (spec §4.10) from c's Include,
// Exclude and ExcludeExts fields.
func (c *Config) Projection() (*project.Projection, error) {
	return project.New(c.Include, c.Exclude, c.ExcludeExts)
}
