/*
DESCRIPTION
  errors.go defines the sentinel validation errors Config.Validate can
  return.

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

import "errors"

var (
	// errNoLogger is returned by Validate when Logger is nil: unlike
	// every other field, there is no safe default to log the
	// substitution with.
	errNoLogger = errors.New("vdconfig: Logger must be set")

	// errNoInclude is returned by Validate when Include is empty: a
	// finder run with nothing to search is almost certainly a
	// misconfiguration, not an intentional no-op.
	errNoInclude = errors.New("vdconfig: Include must name at least one path")
)
