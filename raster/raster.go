// Package raster holds the pixel grids the drawing pipeline works on.
// A Raster stores one 8 bit ink coverage value per cell; 0 is empty and
// 255 fully inked.
package raster

import (
	"image"
	"image/draw"
)

// Raster is an owned 2D grid of alpha values.
type Raster struct {
	img *image.Alpha
}

// New creates an empty raster of the given size.
func New(width, height int) *Raster {
	return &Raster{img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// FromImage copies the alpha channel of m into a new raster
// anchored at the origin.
func FromImage(m image.Image) *Raster {
	b := m.Bounds()
	r := New(b.Dx(), b.Dy())
	draw.Draw(r.img, r.img.Bounds(), m, b.Min, draw.Src)
	return r
}

func (r *Raster) Width() int {
	return r.img.Rect.Dx()
}

func (r *Raster) Height() int {
	return r.img.Rect.Dy()
}

// At returns the value of cell (x, y). Out of range cells read as 0.
func (r *Raster) At(x, y int) uint8 {
	if !(image.Point{x, y}.In(r.img.Rect)) {
		return 0
	}
	return r.img.Pix[r.img.PixOffset(x, y)]
}

// Set writes cell (x, y). Out of range writes are ignored.
func (r *Raster) Set(x, y int, v uint8) {
	if !(image.Point{x, y}.In(r.img.Rect)) {
		return
	}
	r.img.Pix[r.img.PixOffset(x, y)] = v
}

// Clear resets every cell to 0.
func (r *Raster) Clear() {
	for i := range r.img.Pix {
		r.img.Pix[i] = 0
	}
}

// Empty reports whether no cell carries ink.
func (r *Raster) Empty() bool {
	for _, v := range r.img.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	img := image.NewAlpha(r.img.Rect)
	copy(img.Pix, r.img.Pix)
	return &Raster{img: img}
}

// Image exposes the backing image to rendering and resampling code.
// Writes through it mutate the raster.
func (r *Raster) Image() *image.Alpha {
	return r.img
}
