package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a simple gradient test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}
	return img
}

// dirEntries lists the names in dir
func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.jpg", FormatJPEG},
		{"out.JPEG", FormatJPEG},
		{"dir/out.png", FormatPNG},
		{"out.gif", FormatGIF},
		{"out.bmp", FormatBMP},
		{"out.tif", FormatTIFF},
		{"out.tiff", FormatTIFF},
		{"out.webp", FormatWebP},
	}

	for _, tt := range tests {
		f, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, f, tt.path)
	}

	for _, path := range []string{"out", "out.txt", "out.heic"} {
		_, err := FormatFromPath(path)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), "%s: got %v", path, err)
	}
}

func TestParsePNGCompression(t *testing.T) {
	level, err := ParsePNGCompression("best")
	require.NoError(t, err)
	assert.Equal(t, png.BestCompression, level)

	level, err = ParsePNGCompression("")
	require.NoError(t, err)
	assert.Equal(t, png.DefaultCompression, level)

	_, err = ParsePNGCompression("ultra")
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	c := New()
	img := createTestImage(64, 48)

	for _, ext := range []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "out."+ext)

			n, err := c.Save(img, path)
			require.NoError(t, err)
			assert.Greater(t, n, int64(0))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, n, info.Size())

			loaded, err := c.Load(path)
			require.NoError(t, err)
			assert.Equal(t, 64, loaded.Bounds().Dx())
			assert.Equal(t, 48, loaded.Bounds().Dy())
		})
	}

	// Only the outputs remain, no temp files
	assert.Len(t, dirEntries(t, dir), 7)
}

func TestSavePNGIsLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	c := New()
	img := createTestImage(16, 16)

	_, err := c.Save(img, path)
	require.NoError(t, err)

	loaded, err := c.Load(path)
	require.NoError(t, err)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			r1, g1, b1, a1 := img.At(x, y).RGBA()
			r2, g2, b2, a2 := loaded.At(x, y).RGBA()
			require.Equal(t, []uint32{r1, g1, b1, a1}, []uint32{r2, g2, b2, a2}, "pixel (%d,%d)", x, y)
		}
	}
}

func TestSaveWebPLossless(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Lossless = true
	c := NewWithOptions(opts)

	_, err := c.Save(createTestImage(32, 32), filepath.Join(dir, "out.webp"))
	require.NoError(t, err)
	assert.True(t, c.Options().Lossless)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	_, err := New().Save(createTestImage(10, 10), path)
	require.NoError(t, err)

	loaded, err := New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Bounds().Dx())
}

func TestSaveUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()

	_, err := New().Save(createTestImage(10, 10), filepath.Join(dir, "out.txt"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)
	assert.Empty(t, dirEntries(t, dir))
}

func TestSaveMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	_, err := New().Save(createTestImage(10, 10), path)
	assert.True(t, errors.Is(err, ErrWrite), "got %v", err)
	assert.Empty(t, dirEntries(t, dir))

	opts := DefaultOptions()
	opts.CreateDirs = true
	_, err = NewWithOptions(opts).Save(createTestImage(10, 10), path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriterFailure(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatBMP} {
		err := New().Encode(failingWriter{}, createTestImage(10, 10), f)
		assert.True(t, errors.Is(err, ErrEncode), "%s: got %v", f, err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	c := New()

	_, err := c.Load(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = c.Load(garbage)
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)

	badWebP := filepath.Join(dir, "garbage.webp")
	require.NoError(t, os.WriteFile(badWebP, []byte("RIFF....WEBP"), 0o644))
	_, err = c.Load(badWebP)
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
}

func TestLoadFromReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Encode(&buf, createTestImage(20, 10), FormatPNG))

	img, err := New().LoadFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 10), img.Bounds().Size())

	_, err = New().LoadFromReader(bytes.NewReader([]byte("nope")))
	assert.True(t, errors.Is(err, ErrDecode), "got %v", err)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := New().Encode(&buf, createTestImage(4, 4), Format("heic"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)
}
