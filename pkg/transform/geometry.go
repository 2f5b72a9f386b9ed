package transform

import (
	"image"
	"math"
)

// ResizeDimensions returns the size of a w x h image scaled to targetWidth
// pixels wide. The height is floor(h * targetWidth / w).
func ResizeDimensions(w, h, targetWidth int) (int, int) {
	if w <= 0 {
		return targetWidth, 0
	}
	return targetWidth, int(int64(h) * int64(targetWidth) / int64(w))
}

// ZoomRect returns the centred crop rectangle for zooming a w x h image by
// scale, relative to an origin at (0, 0).
//
// The crop is floor(w/scale) x floor(h/scale) placed around (w/2, h/2) with
// integer halving on each side. The rectangle is clamped to the image and
// each axis is kept at least one pixel wide.
func ZoomRect(w, h int, scale float64) image.Rectangle {
	if scale < 1 {
		scale = 1
	}
	x1, x2 := zoomSpan(w, scale)
	y1, y2 := zoomSpan(h, scale)
	return image.Rect(x1, y1, x2, y2)
}

func zoomSpan(size int, scale float64) (int, int) {
	if size <= 0 {
		return 0, 0
	}
	crop := int(math.Floor(float64(size) / scale))
	center := size / 2
	lo := center - crop/2
	hi := center + crop/2

	if lo < 0 {
		lo = 0
	}
	if hi > size {
		hi = size
	}
	if hi <= lo {
		if lo >= size {
			lo = size - 1
		}
		hi = lo + 1
	}
	return lo, hi
}
