package codec

import (
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/menta2k/image-transform/internal/utils"
)

// Format represents supported output formats
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

var extensions = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"webp": FormatWebP,
}

var imagingFormats = map[Format]imaging.Format{
	FormatJPEG: imaging.JPEG,
	FormatPNG:  imaging.PNG,
	FormatGIF:  imaging.GIF,
	FormatBMP:  imaging.BMP,
	FormatTIFF: imaging.TIFF,
}

// FormatFromPath infers the output format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := utils.GetFileExtension(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s has no extension", path)
	}
	f, ok := extensions[ext]
	if !ok {
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	return f, nil
}

// ParsePNGCompression maps a preset name to a png.CompressionLevel
func ParsePNGCompression(name string) (png.CompressionLevel, error) {
	switch name {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "fast":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	default:
		return 0, errors.Errorf("unknown png compression %q", name)
	}
}
