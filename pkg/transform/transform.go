// Package transform applies a single geometric operation to a decoded image.
//
// Operations are a closed set of value types (Resize, Zoom, Rotate, Convert)
// produced by Parse. An Engine applies them, delegating any rescaling to a
// resample.Resampler so the interpolation backend can be swapped.
//
// Rotations are clockwise: a 90 degree turn maps the source pixel (x, y) of
// a W x H image to (H-1-y, x) in the H x W result.
package transform

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/menta2k/image-transform/pkg/resample"
)

// Engine applies operations using a fixed resampler
type Engine struct {
	resampler resample.Resampler
}

// New creates an Engine with the default imaging resampler
func New() *Engine {
	r, _ := resample.New("imaging", resample.DefaultFilter)
	return &Engine{resampler: r}
}

// NewWithResampler creates an Engine that rescales with r
func NewWithResampler(r resample.Resampler) *Engine {
	return &Engine{resampler: r}
}

// Resampler returns the resampler used for resize and zoom
func (e *Engine) Resampler() resample.Resampler {
	return e.resampler
}

// Apply runs op on img and returns the transformed image. img is never modified.
func (e *Engine) Apply(img image.Image, op Operation) (image.Image, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, errors.Wrap(ErrEmptyResult, "input image has no pixels")
	}

	switch o := op.(type) {
	case Resize:
		return e.resize(img, o)
	case Zoom:
		return e.zoom(img, o)
	case Rotate:
		return e.rotate(img, o)
	case Convert:
		return img, nil
	case nil:
		return nil, errors.Wrap(ErrUnknownOperation, "nil operation")
	default:
		return nil, errors.Wrapf(ErrUnknownOperation, "%T", op)
	}
}

func (e *Engine) resize(img image.Image, o Resize) (image.Image, error) {
	if o.Width < 1 {
		return nil, errors.Wrapf(ErrInvalidParam, "resize width %d", o.Width)
	}
	bounds := img.Bounds()
	w, h := ResizeDimensions(bounds.Dx(), bounds.Dy(), o.Width)
	if h < 1 {
		return nil, errors.Wrapf(ErrEmptyResult, "resizing %dx%d to width %d gives height 0",
			bounds.Dx(), bounds.Dy(), o.Width)
	}
	return e.resampler.Resize(img, w, h), nil
}

func (e *Engine) zoom(img image.Image, o Zoom) (image.Image, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// No magnification keeps every pixel, including the last row and column
	// that integer halving would drop for odd sizes.
	if o.Scale <= 1 {
		return imaging.Clone(img), nil
	}

	rect := ZoomRect(w, h, o.Scale).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)
	return e.resampler.Resize(cropped, w, h), nil
}

func (e *Engine) rotate(img image.Image, o Rotate) (image.Image, error) {
	switch o.Degrees {
	case 0:
		return imaging.Clone(img), nil
	case 90:
		// imaging rotates counter-clockwise
		return imaging.Rotate270(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate90(img), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAngle, "%d", o.Degrees)
	}
}
