package lisonpath

import (
	"math"

	"github.com/benoitkugler/lison/lison"
)

// compute the bounding box of a path, using the critical points of its curves

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max lison.Point
}

// Width returns Max.X - Min.X
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns Max.Y - Min.Y
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains returns true if `other` is inside `r`.
func (r Rect) Contains(other Rect) bool {
	return r.Min.X <= other.Min.X && r.Min.Y <= other.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

// union returns the smallest rectangle containing `r` and `other`.
func (r Rect) union(other Rect) Rect {
	return Rect{
		Min: lison.Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: lison.Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

func (r Rect) add(p lison.Point) Rect { return r.union(Rect{p, p}) }

// bounds accumulates rectangles, starting empty.
type bounds struct {
	rect  Rect
	valid bool
}

func (b *bounds) union(r Rect) {
	if !b.valid {
		b.rect, b.valid = r, true
		return
	}
	b.rect = b.rect.union(r)
}

// Bounds returns the bounding box of the path, or false
// for an empty path.
// Curves are handled exactly, not through their control points.
func (p *Path) Bounds() (Rect, bool) {
	var (
		b       bounds
		current lison.Point
	)
	for _, op := range p.Ops {
		switch op := op.(type) {
		case MoveTo:
			current = lison.Point(op)
			b.union(Rect{current, current})
		case LineTo:
			current = lison.Point(op)
			b.union(Rect{current, current})
		case CubicTo:
			b.union(computeBoundingBox(cubicBezier{current, op[0], op[1], op[2]}))
			current = op[2]
		}
		// Close goes back to a point already included
	}
	return b.rect, b.valid
}

type cubicBezier [4]lison.Point

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) lison.Point {
	return lison.Point{
		X: bezierSpline(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t),
		Y: bezierSpline(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t),
	}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// b^2 - 4ac
func determinant(a, b, c float64) float64 { return b*b - 4*a*c }

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c, a simple line
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}

	d := determinant(a, b, c)
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func computeBoundingBox(curve cubicBezier) Rect {
	resX, resY := curve.criticalPoints()

	out := Rect{curve[0], curve[0]}
	out = out.add(curve[3])
	for _, t := range append(resX, resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		out = out.add(curve.evaluateCurve(t))
	}
	return out
}
