package transform

import (
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownOperation is returned by Parse for an unrecognized operation name
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidParam is returned when the numeric parameter is malformed or out of range
	ErrInvalidParam = errors.New("invalid parameter")
	// ErrUnsupportedAngle is returned for rotations that are not a multiple of 90 degrees
	ErrUnsupportedAngle = errors.New("unsupported rotation angle")
	// ErrEmptyResult is returned when a transform would produce a zero-sized image
	ErrEmptyResult = errors.New("transform produces an empty image")
)

// Kind names an operation variant
type Kind string

const (
	KindResize  Kind = "resize"
	KindZoom    Kind = "zoom"
	KindRotate  Kind = "rotate"
	KindConvert Kind = "convert"
)

// Operation is one of Resize, Zoom, Rotate or Convert
type Operation interface {
	Kind() Kind
	String() string
	isOperation()
}

// Resize scales to Width pixels wide, keeping the aspect ratio
type Resize struct {
	Width int
}

// Zoom crops the centre 1/Scale of the image and scales it back to the
// original size. Scale is always >= 1.
type Zoom struct {
	Scale float64
}

// Rotate turns the image clockwise by Degrees, one of 0, 90, 180 or 270
type Rotate struct {
	Degrees int
}

// Convert leaves the raster untouched; only the output encoding changes
type Convert struct{}

func (Resize) Kind() Kind  { return KindResize }
func (Zoom) Kind() Kind    { return KindZoom }
func (Rotate) Kind() Kind  { return KindRotate }
func (Convert) Kind() Kind { return KindConvert }

func (o Resize) String() string { return "resize width=" + strconv.Itoa(o.Width) }
func (o Zoom) String() string   { return "zoom scale=" + strconv.FormatFloat(o.Scale, 'g', -1, 64) }
func (o Rotate) String() string { return "rotate degrees=" + strconv.Itoa(o.Degrees) }
func (Convert) String() string  { return "convert" }

func (Resize) isOperation()  {}
func (Zoom) isOperation()    {}
func (Rotate) isOperation()  {}
func (Convert) isOperation() {}

// Kinds lists the supported operation names
func Kinds() []string {
	names := []string{string(KindResize), string(KindZoom), string(KindRotate), string(KindConvert)}
	sort.Strings(names)
	return names
}

// Parse builds the operation named name from its textual parameter.
//
// The parameter is always parsed as a float, even for convert which ignores
// it. resize takes floor(param) as the target width; zoom clamps scales
// below 1 to 1; rotate accepts integral multiples of 90, negative values
// meaning counter-clockwise.
func Parse(name, param string) (Operation, error) {
	v, err := parseParam(param)
	if err != nil {
		return nil, err
	}

	switch Kind(name) {
	case KindResize:
		w := math.Floor(v)
		if w < 1 || w > math.MaxInt32 {
			return nil, errors.Wrapf(ErrInvalidParam, "resize width must be at least 1, got %s", param)
		}
		return Resize{Width: int(w)}, nil

	case KindZoom:
		return Zoom{Scale: math.Max(v, 1.0)}, nil

	case KindRotate:
		if v != math.Trunc(v) || math.Mod(v, 90) != 0 {
			return nil, errors.Wrapf(ErrUnsupportedAngle, "%s (must be a multiple of 90)", param)
		}
		deg := int(math.Mod(v, 360))
		if deg < 0 {
			deg += 360
		}
		return Rotate{Degrees: deg}, nil

	case KindConvert:
		return Convert{}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownOperation, "%q", name)
	}
}

func parseParam(param string) (float64, error) {
	v, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidParam, "%q is not a number", param)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidParam, "%q is not a finite number", param)
	}
	return v, nil
}
