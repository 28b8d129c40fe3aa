package lison

// Given a parsed LISON image, implements how to
// draw it on screen.
// This requires a backend implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// FillRule decides which parts of a path are inside.
type FillRule uint8

const (
	EvenOdd FillRule = iota
	NonZero
)

// Backend knows how to do the actual draw operations
// but doesn't need any LISON knowledge.
// In particular, coordinates, widths and radii are already converted
// to device space before being sent to the Backend.
//
// A Backend keeps its state (source, stroke options, current path)
// between calls; Render sets every piece of state right before using it.
type Backend interface {
	// SetOperatorOver selects the usual "source over destination" compositing.
	SetOperatorOver()
	SetFillRule(rule FillRule)

	// SetSourceRGBA sets a flat color as source for the next fill or stroke.
	SetSourceRGBA(c Color)
	// SetLinearGradient sets a two stops gradient as source, with `c1` at offset 0
	// and `c2` at offset 1. The gradient belongs to the backend and is released
	// when the source is replaced.
	SetLinearGradient(p1 Point, c1 Color, p2 Point, c2 Color)
	// SetRadialGradient is the same as SetLinearGradient, for a gradient
	// between two circles.
	SetRadialGradient(center1 Point, radius1 float64, c1 Color, center2 Point, radius2 float64, c2 Color)

	SetLineWidth(width float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)

	// NewPath discards the current path and the current point.
	NewPath()
	// NewSubPath begins a new sub-path, keeping the existing ones.
	// After this call there is no current point.
	NewSubPath()
	MoveTo(p Point)
	LineTo(p Point)
	CurveTo(c1, c2, end Point)
	// ClosePath adds a line to the start of the current sub-path,
	// which becomes the current point.
	ClosePath()
	CurrentPoint() (Point, bool)

	// Fill fills the current path with the current source, according
	// to the fill rule. The path is discarded unless `preserve` is true.
	Fill(preserve bool)
	// Stroke strokes the current path with the current source and
	// stroke options, then discards it.
	Stroke()
}

// transformer converts document units to device units.
type transformer float64

func newTransformer(img *Image, resolution, scale float64) transformer {
	return transformer(resolution / img.UnitPerInch * scale)
}

func (k transformer) length(x float64) float64 { return x * float64(k) }

func (k transformer) point(p Point) Point {
	return Point{X: p.X * float64(k), Y: p.Y * float64(k)}
}

// Render draws the image into the backend `b`.
// `resolution` is the number of device units per inch and `scale` a
// magnification factor.
// The image must be valid (as returned by Parse); invalid pen or brush
// references cause a panic.
func Render(img *Image, b Backend, resolution, scale float64) {
	r := renderer{img: img, b: b, k: newTransformer(img, resolution, scale)}

	b.SetOperatorOver()
	b.SetFillRule(EvenOdd)
	b.NewPath()

	for _, shape := range img.Shapes {
		r.drawShape(shape)
	}
}

type renderer struct {
	img *Image
	b   Backend
	k   transformer
}

func (r renderer) setPattern(pattern Pattern) {
	switch pattern := pattern.(type) {
	case Monochrome:
		r.b.SetSourceRGBA(pattern.Color)
	case LinearGradient:
		r.b.SetLinearGradient(
			r.k.point(pattern.Point1), pattern.Color1,
			r.k.point(pattern.Point2), pattern.Color2,
		)
	case RadialGradient:
		r.b.SetRadialGradient(
			r.k.point(pattern.Center1), r.k.length(pattern.Radius1), pattern.Color1,
			r.k.point(pattern.Center2), r.k.length(pattern.Radius2), pattern.Color2,
		)
	}
}

func (r renderer) setPen(pen Pen) {
	r.setPattern(pen.Pattern)
	r.b.SetLineWidth(r.k.length(pen.Width))
	r.b.SetLineCap(pen.Cap)
	r.b.SetLineJoin(pen.Join)
}

// elevate returns the control points of the cubic curve
// equivalent to the quadratic curve (p0, pc, pe)
func elevate(p0, pc, pe Point) (c1, c2 Point) {
	c1 = Point{X: p0.X + 2*(pc.X-p0.X)/3, Y: p0.Y + 2*(pc.Y-p0.Y)/3}
	c2 = Point{X: pe.X + 2*(pc.X-pe.X)/3, Y: pe.Y + 2*(pc.Y-pe.Y)/3}
	return c1, c2
}

// putPath adds `data` to the current path of the backend.
// The backend only handles lines and cubic curves, so that
// quadratic curves are elevated, starting from the current point.
func (r renderer) putPath(data CurveData, closed bool) {
	r.b.MoveTo(r.k.point(data.Start))
	for _, seg := range data.Segments {
		switch seg := seg.(type) {
		case LineSegment:
			r.b.LineTo(r.k.point(seg.End))
		case QuadraticSegment:
			p0, _ := r.b.CurrentPoint()
			end := r.k.point(seg.End)
			c1, c2 := elevate(p0, r.k.point(seg.Control), end)
			r.b.CurveTo(c1, c2, end)
		case CubicSegment:
			r.b.CurveTo(r.k.point(seg.Control1), r.k.point(seg.Control2), r.k.point(seg.End))
		}
	}
	if closed {
		r.b.ClosePath()
	}
}

func (r renderer) drawShape(shape Shape) {
	switch shape := shape.(type) {
	case *Group:
		for _, child := range shape.Content {
			r.drawShape(child)
		}
	case *Curve:
		r.drawCurve(shape)
	case *Region:
		r.drawRegion(shape)
	}
}

func (r renderer) drawCurve(curve *Curve) {
	r.putPath(curve.Data, false)
	r.setPen(r.img.pen(curve.Pen))
	r.b.Stroke()
}

func (r renderer) drawRegion(region *Region) {
	for i, contour := range region.Data {
		if i > 0 {
			r.b.NewSubPath()
		}
		r.putPath(contour, true)
	}

	if region.Brush != nil {
		r.setPattern(r.img.brush(*region.Brush).Pattern)
		r.b.Fill(true)
	}

	if region.Pen != nil {
		r.setPen(r.img.pen(*region.Pen))
		r.b.Stroke()
	} else {
		r.b.NewPath()
	}
}
