package downsample

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juruen/digitpad/raster"
)

func fill(r *raster.Raster, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.Set(x, y, 255)
		}
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, resize.Bilinear, f)

	f, err = ParseFilter("Lanczos3")
	require.NoError(t, err)
	assert.Equal(t, resize.Lanczos3, f)

	_, err = ParseFilter("sinc")
	assert.Error(t, err)
}

func TestResampleEmpty(t *testing.T) {
	d := New(resize.Bilinear)
	d.Resample(raster.New(448, 448))

	assert.Equal(t, Size, d.Raster().Width())
	assert.Equal(t, Size, d.Raster().Height())
	assert.True(t, d.Raster().Empty())
}

func TestResampleQuadrant(t *testing.T) {
	src := raster.New(448, 448)
	fill(src, 0, 0, 224, 224)

	d := New(resize.Bilinear)
	d.Resample(src)

	r := d.Raster()
	assert.GreaterOrEqual(t, int(r.At(2, 2)), 250)
	assert.GreaterOrEqual(t, int(r.At(10, 10)), 250)
	assert.Zero(t, r.At(20, 20))
	assert.Zero(t, r.At(25, 2))
	// the boundary cells blend
	edge := r.At(14, 5)
	assert.True(t, edge > 0 && edge < 255, "edge value %d", edge)
}

func TestResampleReplacesPrevious(t *testing.T) {
	src := raster.New(448, 448)
	fill(src, 0, 0, 448, 448)

	d := New(resize.Bilinear)
	d.Resample(src)
	require.False(t, d.Raster().Empty())

	d.Resample(raster.New(448, 448))
	assert.True(t, d.Raster().Empty())
}

func TestResampleDeterministic(t *testing.T) {
	src := raster.New(448, 448)
	fill(src, 100, 40, 140, 400)

	a, b := New(resize.Bilinear), New(resize.Bilinear)
	a.Resample(src)
	b.Resample(src)
	assert.Equal(t, a.Raster().Image().Pix, b.Raster().Image().Pix)
}

func TestClear(t *testing.T) {
	src := raster.New(448, 448)
	fill(src, 0, 0, 448, 448)

	d := New(resize.Bilinear)
	d.Resample(src)
	d.Clear()
	assert.True(t, d.Raster().Empty())
}

func TestPreviewIsSnapshot(t *testing.T) {
	src := raster.New(448, 448)
	fill(src, 0, 0, 448, 448)

	d := New(resize.Bilinear)
	d.Resample(src)
	p := d.Preview()
	d.Clear()
	assert.False(t, p.Empty())
}

func TestWritePNG(t *testing.T) {
	r := raster.New(Size, Size)
	r.Set(3, 4, 255)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, r))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Size, img.Bounds().Dx())
	_, _, _, a := img.At(3, 4).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestASCII(t *testing.T) {
	r := raster.New(3, 2)
	r.Set(0, 0, 255)
	r.Set(2, 1, 255)

	lines := strings.Split(strings.TrimSuffix(ASCII(r), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "@  ", lines[0])
	assert.Equal(t, "  @", lines[1])
}
