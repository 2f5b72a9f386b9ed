// Package codec decodes images from disk and encodes them back, choosing
// the output format from the file extension.
//
// Writes are atomic: the encoded bytes go to a hidden sibling file that is
// renamed over the destination only after encoding succeeded, so a failed
// save never leaves a partial or empty output file behind.
package codec

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/image-transform/internal/utils"
)

var (
	// ErrDecode is returned when the input cannot be read or decoded
	ErrDecode = errors.New("decode failed")
	// ErrUnsupportedFormat is returned for output extensions with no encoder
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrEncode is returned when the encoder rejects the image
	ErrEncode = errors.New("encode failed")
	// ErrWrite is returned when the output file cannot be created or moved into place
	ErrWrite = errors.New("write failed")
)

// Options controls decoding and encoding
type Options struct {
	Quality        int
	Lossless       bool
	PNGCompression png.CompressionLevel
	AutoOrient     bool
	CreateDirs     bool
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Quality:        90,
		PNGCompression: png.DefaultCompression,
	}
}

// Codec loads and saves images
type Codec struct {
	opts Options
}

// New creates a Codec with default options
func New() *Codec {
	return &Codec{opts: DefaultOptions()}
}

// NewWithOptions creates a Codec with custom options
func NewWithOptions(opts Options) *Codec {
	return &Codec{opts: opts}
}

// Options returns the codec options
func (c *Codec) Options() Options {
	return c.opts
}

// Load decodes the image at path
func (c *Codec) Load(path string) (image.Image, error) {
	img, openErr := imaging.Open(path, imaging.AutoOrientation(c.opts.AutoOrient))
	if openErr == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode for files the registered decoder rejects
	if utils.GetFileExtension(path) == "webp" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "%s: %v", path, err)
		}
		defer f.Close()

		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}

	return nil, errors.Wrapf(ErrDecode, "%s: %v", path, openErr)
}

// LoadFromReader decodes an image from r
func (c *Codec) LoadFromReader(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(c.opts.AutoOrient))
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	return img, nil
}

// Encode writes img to w in format f
func (c *Codec) Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	if f == FormatWebP {
		err = webp.Encode(w, img, &webp.Options{Lossless: c.opts.Lossless, Quality: float32(c.opts.Quality)})
	} else {
		format, ok := imagingFormats[f]
		if !ok {
			return errors.Wrapf(ErrUnsupportedFormat, "%q", f)
		}
		err = imaging.Encode(w, img, format,
			imaging.JPEGQuality(c.opts.Quality),
			imaging.PNGCompressionLevel(c.opts.PNGCompression))
	}
	if err != nil {
		return errors.Wrapf(ErrEncode, "%s: %v", f, err)
	}
	return nil
}

// Save encodes img into path, picking the format from the extension, and
// returns the number of bytes written.
func (c *Codec) Save(img image.Image, path string) (int64, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return 0, err
	}

	if c.opts.CreateDirs {
		if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
			return 0, errors.Wrapf(ErrWrite, "create output directory: %v", err)
		}
	}

	tmp := utils.TempSibling(path)
	f, err := os.Create(tmp)
	if err != nil {
		return 0, errors.Wrapf(ErrWrite, "%v", err)
	}

	if err := c.Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, errors.Wrapf(ErrWrite, "%v", err)
	}

	info, err := os.Stat(tmp)
	if err != nil {
		os.Remove(tmp)
		return 0, errors.Wrapf(ErrWrite, "%v", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, errors.Wrapf(ErrWrite, "%v", err)
	}

	return info.Size(), nil
}
