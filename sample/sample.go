// Package sample flattens a downsampled raster into the numeric vector a
// digit classifier consumes.
package sample

import (
	"github.com/pkg/errors"

	"github.com/juruen/digitpad/raster"
)

const (
	Width  = 28
	Height = 28
	Len    = Width * Height
)

var (
	ErrRasterSize = errors.New("raster is not 28x28")
	ErrLength     = errors.New("sample must hold 784 values")
	ErrRange      = errors.New("sample value outside [0,1]")
)

// Sample is a row-major 28x28 grid of ink coverage in [0,1].
type Sample []float64

// Encode reads the alpha of every cell of r, row by row, and scales it to
// [0,1].
func Encode(r *raster.Raster) (Sample, error) {
	if r.Width() != Width || r.Height() != Height {
		return nil, errors.Wrapf(ErrRasterSize, "got %dx%d", r.Width(), r.Height())
	}

	s := make(Sample, 0, Len)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s = append(s, float64(r.At(x, y))/255)
		}
	}
	return s, nil
}

// Validate checks the length and value range.
func (s Sample) Validate() error {
	if len(s) != Len {
		return errors.Wrapf(ErrLength, "got %d", len(s))
	}
	for i, v := range s {
		if v < 0 || v > 1 {
			return errors.Wrapf(ErrRange, "value %v at %d", v, i)
		}
	}
	return nil
}

// Empty reports whether the sample carries no ink.
func (s Sample) Empty() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}
