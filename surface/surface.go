// Package surface renders freehand pointer strokes into a full resolution
// raster.
package surface

import (
	"math"

	ftraster "github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/juruen/digitpad/raster"
)

const (
	DefaultWidth       = 448
	DefaultHeight      = 448
	DefaultStrokeWidth = 19
)

// Point is a pointer position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Surface accumulates strokes into a persistent raster. It is not safe for
// concurrent use.
type Surface struct {
	raster      *raster.Raster
	rasterizer  *ftraster.Rasterizer
	painter     ftraster.Painter
	strokeWidth fixed.Int26_6
	pen         Point
}

func New(width, height int, strokeWidth float64) *Surface {
	r := raster.New(width, height)
	rasterizer := ftraster.NewRasterizer(width, height)
	// stroke outlines overlap themselves at round joins
	rasterizer.UseNonZeroWinding = true

	return &Surface{
		raster:      r,
		rasterizer:  rasterizer,
		painter:     ftraster.NewAlphaOverPainter(r.Image()),
		strokeWidth: fixed.Int26_6(strokeWidth * 64),
	}
}

// BeginStroke moves the pen to p without drawing. Points off the surface
// are pulled back to within a stroke width of it and non-finite points are
// ignored.
func (s *Surface) BeginStroke(p Point) {
	if !p.Finite() {
		return
	}
	s.pen = s.clamp(p)
}

// ExtendStroke draws one segment from the pen to p and moves the pen there.
// Nothing happens unless the primary button is held. p is bounded like in
// BeginStroke.
func (s *Surface) ExtendStroke(p Point, drawing bool) {
	if !drawing || !p.Finite() {
		return
	}
	p = s.clamp(p)
	s.segment(s.pen, p)
	s.pen = p
}

// Clear wipes the raster. The pen position is kept.
func (s *Surface) Clear() {
	s.raster.Clear()
}

// Pen returns the last recorded position.
func (s *Surface) Pen() Point {
	return s.pen
}

// Raster returns the full resolution raster. Callers must not write to it.
func (s *Surface) Raster() *raster.Raster {
	return s.raster
}

func (s *Surface) segment(a, b Point) {
	from, to := toFixed(a), toFixed(b)
	if from == to {
		// the stroker cannot orient caps on a zero length segment
		to.X++
	}

	var path ftraster.Path
	path.Start(from)
	path.Add1(to)

	s.rasterizer.Clear()
	ftraster.Stroke(s.rasterizer, path, s.strokeWidth, ftraster.RoundCapper, ftraster.RoundJoiner)
	s.rasterizer.Rasterize(s.painter)
}

// clamp keeps p where its fixed point form cannot overflow. A stroke width
// of margin leaves caps drawn at the edge unchanged.
func (s *Surface) clamp(p Point) Point {
	margin := float64(s.strokeWidth) / 64
	return Point{
		X: math.Max(-margin, math.Min(p.X, float64(s.raster.Width())+margin)),
		Y: math.Max(-margin, math.Min(p.Y, float64(s.raster.Height())+margin)),
	}
}

func toFixed(p Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}
