// Package resample scales rasters to exact pixel sizes using one of two
// engines: disintegration/imaging filters or nfnt/resize interpolation
// functions. Both engines accept the same filter names.
package resample

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownEngine is returned for an engine name other than imaging or nfnt
	ErrUnknownEngine = errors.New("unknown resample engine")
	// ErrUnknownFilter is returned for a filter name the engine does not provide
	ErrUnknownFilter = errors.New("unknown resample filter")
)

// DefaultFilter is the filter used when none is given
const DefaultFilter = "linear"

// Resampler resizes an image to exactly w x h pixels
type Resampler interface {
	Resize(img image.Image, w, h int) image.Image
	Name() string
}

var imagingFilters = map[string]imaging.ResampleFilter{
	"nearest":  imaging.NearestNeighbor,
	"linear":   imaging.Linear,
	"cubic":    imaging.CatmullRom,
	"mitchell": imaging.MitchellNetravali,
	"lanczos":  imaging.Lanczos,
}

var nfntFilters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"linear":   resize.Bilinear,
	"cubic":    resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos":  resize.Lanczos3,
}

// New returns the resampler for engine using the named filter. An empty
// filter selects DefaultFilter.
func New(engine, filter string) (Resampler, error) {
	if filter == "" {
		filter = DefaultFilter
	}

	switch engine {
	case "imaging", "":
		f, ok := imagingFilters[filter]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFilter, "%q for engine imaging", filter)
		}
		return &imagingResampler{filter: f, name: filter}, nil
	case "nfnt":
		f, ok := nfntFilters[filter]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownFilter, "%q for engine nfnt", filter)
		}
		return &nfntResampler{interp: f, name: filter}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", engine)
	}
}

// Filters lists the filter names accepted by New
func Filters() []string {
	names := make([]string, 0, len(imagingFilters))
	for name := range imagingFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type imagingResampler struct {
	filter imaging.ResampleFilter
	name   string
}

func (r *imagingResampler) Resize(img image.Image, w, h int) image.Image {
	return imaging.Resize(img, w, h, r.filter)
}

func (r *imagingResampler) Name() string {
	return "imaging/" + r.name
}

type nfntResampler struct {
	interp resize.InterpolationFunction
	name   string
}

func (r *nfntResampler) Resize(img image.Image, w, h int) image.Image {
	return resize.Resize(uint(w), uint(h), img, r.interp)
}

func (r *nfntResampler) Name() string {
	return "nfnt/" + r.name
}
