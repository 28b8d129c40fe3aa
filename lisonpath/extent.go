package lisonpath

import "github.com/benoitkugler/lison/lison"

// Extent returns the bounding box, in document units, of the geometry
// painted by `img`. Stroke widths are ignored.
// It returns false if nothing would be painted.
//
// LISON does not require shapes to stay inside the declared canvas,
// so that the extent may exceed (0, 0, Width, Height).
func Extent(img *lison.Image) (Rect, bool) {
	var b extentBackend
	// with a unit scale, device space is document space
	lison.Render(img, &b, img.UnitPerInch, 1)
	return b.bounds.rect, b.bounds.valid
}

// extentBackend only records the geometry sent to the fill
// and stroke operations.
type extentBackend struct {
	Path
	bounds bounds
}

var _ lison.Backend = (*extentBackend)(nil)

func (*extentBackend) SetOperatorOver()           {}
func (*extentBackend) SetFillRule(lison.FillRule) {}
func (*extentBackend) SetSourceRGBA(lison.Color)  {}

func (*extentBackend) SetLinearGradient(lison.Point, lison.Color, lison.Point, lison.Color) {}

func (*extentBackend) SetRadialGradient(lison.Point, float64, lison.Color, lison.Point, float64, lison.Color) {
}

func (*extentBackend) SetLineWidth(float64)       {}
func (*extentBackend) SetLineCap(lison.LineCap)   {}
func (*extentBackend) SetLineJoin(lison.LineJoin) {}

func (b *extentBackend) NewPath() { b.Clear() }

func (b *extentBackend) paint() {
	if r, ok := b.Bounds(); ok {
		b.bounds.union(r)
	}
}

func (b *extentBackend) Fill(preserve bool) {
	b.paint()
	if !preserve {
		b.Clear()
	}
}

func (b *extentBackend) Stroke() {
	b.paint()
	b.Clear()
}
