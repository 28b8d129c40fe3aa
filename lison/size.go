package lison

import (
	"errors"
	"math"
)

// ErrBadDimension is returned when an image does not map
// to a usable device size.
var ErrBadDimension = errors.New("lison: bad image dimension")

// DeviceSize returns the size, in device units (usually pixels), of the canvas
// needed to render `img` at the given resolution and scale.
func DeviceSize(img *Image, resolution, scale float64) (width, height int, err error) {
	k := newTransformer(img, resolution, scale)
	w, h := math.Round(k.length(img.Width)), math.Round(k.length(img.Height))
	// also rejects NaN
	if !(w > 0 && w <= math.MaxInt32 && h > 0 && h <= math.MaxInt32) {
		return 0, 0, ErrBadDimension
	}
	return int(w), int(h), nil
}
