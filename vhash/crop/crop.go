/*
DESCRIPTION
  crop.go provides Crop, a rectangle describing letterbox bars to remove
  from a decoded video frame before resampling.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package crop implements letterbox detection: finding and removing
// uniform-color bars framing the active picture of a video frame.
package crop

import "image"

// Crop describes the rectangle of a frame that survives letterboxing
// removal, in terms of offsets in from each edge of a frame of size
// OrigW x OrigH.
type Crop struct {
	OrigW, OrigH          uint32
	Left, Right, Top, Bot uint32
}

// None returns the zero crop: the whole frame, no bars removed.
func None(origW, origH uint32) Crop {
	return Crop{OrigW: origW, OrigH: origH}
}

// FromEdgeOffsets builds a Crop from explicit offsets. It is the caller's
// responsibility to ensure left+right < origW and top+bottom < origH;
// Union and the letterbox detector both maintain this invariant.
func FromEdgeOffsets(origW, origH, left, right, top, bottom uint32) Crop {
	return Crop{OrigW: origW, OrigH: origH, Left: left, Right: right, Top: top, Bot: bottom}
}

// Width is the width of the cropped region.
func (c Crop) Width() uint32 { return c.OrigW - (c.Left + c.Right) }

// Height is the height of the cropped region.
func (c Crop) Height() uint32 { return c.OrigH - (c.Top + c.Bot) }

// Area is Width*Height.
func (c Crop) Area() uint32 { return c.Width() * c.Height() }

// IsUncropped reports whether c removes nothing.
func (c Crop) IsUncropped() bool {
	return c.Left == 0 && c.Right == 0 && c.Top == 0 && c.Bot == 0
}

// Union returns the tightest crop containing both c and other: the minimum
// offset on each side. Unioning a sequence of per-frame crops yields the
// crop that keeps content present in every frame.
func (c Crop) Union(other Crop) Crop {
	return Crop{
		OrigW: c.OrigW, OrigH: c.OrigH,
		Left:  min(c.Left, other.Left),
		Right: min(c.Right, other.Right),
		Top:   min(c.Top, other.Top),
		Bot:   min(c.Bot, other.Bot),
	}
}

// Rectangle returns c as an image.Rectangle suitable for use as a crop view
// into a decoded frame, clamped so that width and height are never less
// than 1 pixel.
func (c Crop) Rectangle() image.Rectangle {
	left, right, top, bot := c.Left, c.Right, c.Top, c.Bot

	if left+right >= c.OrigW {
		left, right = 0, 0
	}
	if top+bot >= c.OrigH {
		top, bot = 0, 0
	}

	return image.Rect(int(left), int(top), int(c.OrigW-right), int(c.OrigH-bot))
}

func min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
