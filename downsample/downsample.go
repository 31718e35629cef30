// Package downsample reduces the drawing surface to the 28x28 grid a
// digit classifier expects.
package downsample

import (
	"image/png"
	"io"
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/raster"
)

// Size is the edge length of the low resolution raster.
const Size = 28

const DefaultFilter = "bilinear"

var filters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseFilter maps a filter name to its interpolation function.
func ParseFilter(name string) (resize.InterpolationFunction, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return 0, errors.Errorf("unknown filter %q", name)
	}
	return f, nil
}

// Downsampler owns the low resolution raster and only writes to it on
// Resample and Clear.
type Downsampler struct {
	raster *raster.Raster
	interp resize.InterpolationFunction
}

func New(interp resize.InterpolationFunction) *Downsampler {
	return &Downsampler{
		raster: raster.New(Size, Size),
		interp: interp,
	}
}

// Resample replaces the low resolution raster with a resized copy of src.
// nfnt/resize widens the kernel by the reduction factor, so a bilinear
// filter averages over the whole source area of each cell.
func (d *Downsampler) Resample(src *raster.Raster) {
	d.raster.Clear()

	scaled := resize.Resize(Size, Size, src.Image(), d.interp)
	b := scaled.Bounds()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			_, _, _, a := scaled.At(b.Min.X+x, b.Min.Y+y).RGBA()
			d.raster.Set(x, y, uint8(a>>8))
		}
	}
}

func (d *Downsampler) Clear() {
	d.raster.Clear()
}

// Raster returns the live low resolution raster. Callers must not write to it.
func (d *Downsampler) Raster() *raster.Raster {
	return d.raster
}

// Preview returns a snapshot of the low resolution raster.
func (d *Downsampler) Preview() *raster.Raster {
	return d.raster.Clone()
}

// WritePNG encodes r as a grayscale-alpha PNG.
func WritePNG(w io.Writer, r *raster.Raster) error {
	return errors.Wrap(png.Encode(w, r.Image()), "encode preview")
}

const shades = " .:-=+*#%@"

// ASCII renders r with one character per cell, darker glyphs for more ink.
func ASCII(r *raster.Raster) string {
	var sb strings.Builder
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			i := int(r.At(x, y)) * (len(shades) - 1) / 255
			sb.WriteByte(shades[i])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
