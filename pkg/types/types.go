package types

import (
	"fmt"
	"image"
)

// Dimensions is the pixel size of a raster
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DimensionsOf returns the size of img
func DimensionsOf(img image.Image) Dimensions {
	if img == nil {
		return Dimensions{}
	}
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Request describes a single transform invocation
type Request struct {
	Operation  string
	InputPath  string
	OutputPath string
	Param      string
}

// Status classifies the outcome of a run
type Status int

const (
	StatusOK Status = iota
	StatusUsageError
	StatusInvalidParam
	StatusDecodeFailed
	StatusTransformFailed
	StatusWriteFailed
)

var statusNames = map[Status]string{
	StatusOK:              "ok",
	StatusUsageError:      "usage_error",
	StatusInvalidParam:    "invalid_param",
	StatusDecodeFailed:    "decode_failed",
	StatusTransformFailed: "transform_failed",
	StatusWriteFailed:     "write_failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ExitCode maps a status to the process exit code used by the CLI
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWriteFailed:
		return 1
	case StatusUsageError, StatusInvalidParam:
		return 2
	case StatusDecodeFailed:
		return 3
	default:
		return 4
	}
}

// Result is the outcome of a run. Err is nil only when Status is StatusOK.
type Result struct {
	Status       Status     `json:"status"`
	Operation    string     `json:"operation"`
	InputPath    string     `json:"input"`
	OutputPath   string     `json:"output"`
	Before       Dimensions `json:"before"`
	After        Dimensions `json:"after"`
	BytesWritten int64      `json:"bytes_written"`
	Err          error      `json:"-"`
}

// OK reports whether the transform was applied and the output written
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Transformed reports whether the transform step completed, regardless of the write
func (r Result) Transformed() bool {
	return r.Status == StatusOK || r.Status == StatusWriteFailed
}
