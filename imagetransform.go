// Package imagetransform applies one geometric transform to one image file.
//
// It ties together decoding, the transform engine and encoding behind a
// single Run call that always returns a typed result instead of panicking or
// silently dropping failures.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//		"os"
//
//		imagetransform "github.com/menta2k/image-transform"
//		"github.com/menta2k/image-transform/pkg/types"
//	)
//
//	func main() {
//		t := imagetransform.New()
//
//		res := t.Run(types.Request{
//			Operation:  "zoom",
//			InputPath:  "photo.jpg",
//			OutputPath: "photo_zoom.png",
//			Param:      "2.0",
//		})
//		if !res.OK() {
//			log.Printf("%s: %v", res.Status, res.Err)
//			os.Exit(res.Status.ExitCode())
//		}
//		log.Printf("%s -> %s", res.Before, res.After)
//	}
//
// The package consists of three components:
//
// 1. Codec (pkg/codec): loads images and saves them atomically, choosing the format by extension
// 2. Transform (pkg/transform): parses and applies resize, zoom, rotate and convert
// 3. Resample (pkg/resample): interchangeable imaging and nfnt/resize scaling engines
//
// Operations:
//
//   - resize <width>: scale to width pixels, height follows the aspect ratio
//   - zoom <scale>: crop the centre 1/scale and scale it back to the original size
//   - rotate <degrees>: clockwise rotation by a multiple of 90
//   - convert <any number>: re-encode only, the format follows the output extension
package imagetransform

import (
	"image"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/menta2k/image-transform/internal/config"
	"github.com/menta2k/image-transform/internal/utils"
	"github.com/menta2k/image-transform/pkg/codec"
	"github.com/menta2k/image-transform/pkg/resample"
	"github.com/menta2k/image-transform/pkg/transform"
	"github.com/menta2k/image-transform/pkg/types"
)

// Version of the image transform library
const Version = "1.0.0"

// Config is the transformer configuration
type Config = config.Config

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return config.Default()
}

// Transformer runs single-operation image transforms
type Transformer struct {
	codec  *codec.Codec
	engine *transform.Engine
	log    logrus.FieldLogger
}

// New creates a Transformer with default configuration, logging to the
// logrus standard logger
func New() *Transformer {
	return &Transformer{
		codec:  codec.New(),
		engine: transform.New(),
		log:    logrus.StandardLogger(),
	}
}

// NewWithConfig creates a Transformer from cfg. A nil logger uses the logrus
// standard logger.
func NewWithConfig(cfg Config, log logrus.FieldLogger) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	level, err := codec.ParsePNGCompression(cfg.Codec.PNGCompression)
	if err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r, err := resample.New(cfg.Resample.Engine, cfg.Resample.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Transformer{
		codec: codec.NewWithOptions(codec.Options{
			Quality:        cfg.Codec.Quality,
			Lossless:       cfg.Codec.Lossless,
			PNGCompression: level,
			AutoOrient:     cfg.Codec.AutoOrient,
			CreateDirs:     cfg.Output.CreateDirs,
		}),
		engine: transform.NewWithResampler(r),
		log:    log,
	}, nil
}

// LoadImage loads an image from file
func (t *Transformer) LoadImage(path string) (image.Image, error) {
	return t.codec.Load(path)
}

// SaveImage saves an image to file and returns the bytes written
func (t *Transformer) SaveImage(img image.Image, path string) (int64, error) {
	return t.codec.Save(img, path)
}

// Apply runs a parsed operation on an in-memory image
func (t *Transformer) Apply(img image.Image, op transform.Operation) (image.Image, error) {
	return t.engine.Apply(img, op)
}

// Run parses the request, decodes the input, applies the operation and
// writes the output. Every failure is reported through the returned Result.
func (t *Transformer) Run(req types.Request) types.Result {
	res := types.Result{
		Operation:  req.Operation,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
	}
	log := t.log.WithFields(logrus.Fields{
		"op":     req.Operation,
		"input":  req.InputPath,
		"output": req.OutputPath,
	})

	fail := func(status types.Status, err error, msg string) types.Result {
		res.Status = status
		res.Err = err
		log.WithField("status", status).WithError(err).Error(msg)
		return res
	}

	op, err := transform.Parse(req.Operation, req.Param)
	if err != nil {
		return fail(parseStatus(err), err, "invalid request")
	}
	log.Debugf("parsed %s", op)

	img, err := t.codec.Load(req.InputPath)
	if err != nil {
		return fail(types.StatusDecodeFailed, err, "read failed")
	}
	res.Before = types.DimensionsOf(img)
	log.Debugf("decoded %s", res.Before)

	out, err := t.engine.Apply(img, op)
	if err != nil {
		return fail(types.StatusTransformFailed, err, "transform failed")
	}
	res.After = types.DimensionsOf(out)
	log.Debugf("applied %s with %s: %s -> %s", op, t.engine.Resampler().Name(), res.Before, res.After)

	n, err := t.codec.Save(out, req.OutputPath)
	if err != nil {
		return fail(types.StatusWriteFailed, err, "write failed")
	}
	res.BytesWritten = n
	res.Status = types.StatusOK

	log.WithFields(logrus.Fields{
		"size":  res.Before.String() + "->" + res.After.String(),
		"bytes": n,
	}).Infof("wrote %s (%s)", req.OutputPath, utils.FormatFileSize(n))

	return res
}

func parseStatus(err error) types.Status {
	if errors.Is(err, transform.ErrUnknownOperation) {
		return types.StatusUsageError
	}
	return types.StatusInvalidParam
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
