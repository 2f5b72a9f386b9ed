package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	imagetransform "github.com/menta2k/image-transform"
	"github.com/menta2k/image-transform/pkg/resample"
	"github.com/menta2k/image-transform/pkg/transform"
	"github.com/menta2k/image-transform/pkg/types"
)

// exitError carries a non-zero exit code for a run that already reported itself
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func newRootCmd(stderr io.Writer) *cobra.Command {
	cfg := imagetransform.DefaultConfig()
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:   "image-transform <operation> <input> <output> <param>",
		Short: "Resize, zoom, rotate or convert a single image",
		Long: `image-transform applies one operation to an image file and writes the result.

Operations:
  resize <width>     scale to width pixels, height keeps the aspect ratio
  zoom <scale>       crop the centre 1/scale and scale it back up; scales below 1 are treated as 1
  rotate <degrees>   rotate clockwise by a multiple of 90
  convert <number>   re-encode only; the parameter is ignored

The output format follows the output file extension (jpg, png, gif, bmp, tiff, webp).
Use -- before a negative parameter, e.g. "rotate in.png out.png -- -90".`,
		Version:       imagetransform.Version,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel, logFormat, stderr)
			if err != nil {
				return err
			}

			t, err := imagetransform.NewWithConfig(cfg, logger)
			if err != nil {
				return err
			}

			res := t.Run(types.Request{
				Operation:  args[0],
				InputPath:  args[1],
				OutputPath: args[2],
				Param:      args[3],
			})
			if !res.OK() {
				return &exitError{code: res.Status.ExitCode(), err: res.Err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Codec.Quality, "quality", cfg.Codec.Quality, "JPEG/WebP output quality (1-100)")
	flags.BoolVar(&cfg.Codec.Lossless, "lossless", cfg.Codec.Lossless, "WebP lossless mode")
	flags.StringVar(&cfg.Codec.PNGCompression, "png-compression", cfg.Codec.PNGCompression, "PNG compression: default|none|fast|best")
	flags.BoolVar(&cfg.Codec.AutoOrient, "auto-orient", cfg.Codec.AutoOrient, "apply EXIF orientation when decoding")
	flags.StringVar(&cfg.Resample.Engine, "engine", cfg.Resample.Engine, "resampling engine: imaging|nfnt")
	flags.StringVar(&cfg.Resample.Filter, "filter", cfg.Resample.Filter, "resampling filter: "+strings.Join(resample.Filters(), "|"))
	flags.BoolVar(&cfg.Output.CreateDirs, "parents", cfg.Output.CreateDirs, "create missing output directories")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.StringVar(&logFormat, "log-format", "text", "log format: text|json")

	return cmd
}

func newLogger(level, format string, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --log-level")
	}
	logger.SetLevel(lvl)

	switch format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("invalid --log-format %q (use text or json)", format)
	}
	return logger, nil
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Usage: %s\n", cmd.UseLine())
	fmt.Fprintf(stderr, "Operations: %s\n", strings.Join(transform.Kinds(), ", "))
	return types.StatusUsageError.ExitCode()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
