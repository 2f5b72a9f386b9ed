package resample

import (
	"image"
	"image/color"
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

func TestNew(t *testing.T) {
	for _, engine := range []string{"imaging", "nfnt"} {
		for _, filter := range Filters() {
			r, err := New(engine, filter)
			require.NoError(t, err, "%s/%s", engine, filter)
			assert.Equal(t, engine+"/"+filter, r.Name())
		}
	}
}

func TestNewDefaults(t *testing.T) {
	r, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, "imaging/linear", r.Name())
}

func TestNewErrors(t *testing.T) {
	_, err := New("opencv", "linear")
	assert.True(t, errors.Is(err, ErrUnknownEngine), "got %v", err)

	_, err = New("imaging", "box")
	assert.True(t, errors.Is(err, ErrUnknownFilter), "got %v", err)

	_, err = New("nfnt", "sinc")
	assert.True(t, errors.Is(err, ErrUnknownFilter), "got %v", err)
}

func TestFiltersMatchAcrossEngines(t *testing.T) {
	for _, name := range Filters() {
		_, ok := nfntFilters[name]
		assert.True(t, ok, "nfnt is missing filter %s", name)
	}
	assert.Len(t, nfntFilters, len(imagingFilters))
}

func TestResizeDimensions(t *testing.T) {
	img := createTestImage(200, 100)
	sizes := [][2]int{{100, 50}, {400, 200}, {1, 1}, {200, 100}, {37, 91}}

	for _, engine := range []string{"imaging", "nfnt"} {
		r, err := New(engine, "lanczos")
		require.NoError(t, err)

		for _, sz := range sizes {
			out := r.Resize(img, sz[0], sz[1])
			b := out.Bounds()
			assert.Equal(t, sz[0], b.Dx(), "%s width", r.Name())
			assert.Equal(t, sz[1], b.Dy(), "%s height", r.Name())
		}
	}
}

func BenchmarkImagingResize(b *testing.B) {
	r, _ := New("imaging", "linear")
	img := createTestImage(1920, 1080)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resize(img, 960, 540)
	}
}

func BenchmarkNfntResize(b *testing.B) {
	r, _ := New("nfnt", "linear")
	img := createTestImage(1920, 1080)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resize(img, 960, 540)
	}
}
