package lisonpath

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/benoitkugler/lison/lison"
	"golang.org/x/image/math/fixed"
)

func pt(x, y float64) lison.Point { return lison.Point{X: x, Y: y} }

func closeTo(a, b lison.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestCurrentPoint(t *testing.T) {
	var p Path
	if _, ok := p.CurrentPoint(); ok {
		t.Fatal("empty path has no current point")
	}

	p.MoveTo(pt(1, 2))
	p.LineTo(pt(5, 2))
	p.CurveTo(pt(6, 2), pt(7, 3), pt(7, 4))
	if cp, ok := p.CurrentPoint(); !ok || cp != pt(7, 4) {
		t.Fatalf("unexpected current point %v", cp)
	}

	p.ClosePath()
	if cp, _ := p.CurrentPoint(); cp != pt(1, 2) {
		t.Fatalf("ClosePath should go back to the start, got %v", cp)
	}

	p.NewSubPath()
	if _, ok := p.CurrentPoint(); ok {
		t.Fatal("NewSubPath should remove the current point")
	}
	if p.IsEmpty() {
		t.Fatal("NewSubPath should keep the operations")
	}

	p.Clear()
	if _, ok := p.CurrentPoint(); ok || !p.IsEmpty() {
		t.Fatal("Clear should reset the path")
	}
}

func TestImplicitMoveTo(t *testing.T) {
	var p Path
	p.LineTo(pt(3, 3)) // no current point: acts as MoveTo
	p.LineTo(pt(4, 3))
	p.ClosePath()
	p.LineTo(pt(4, 4)) // starts a new sub-path at the start point

	if got, exp := p.String(), "M3.000,3.000 L3.000,3.000 L4.000,3.000 Z M3.000,3.000 L4.000,4.000"; got != exp {
		t.Fatalf("expected %s, got %s", exp, got)
	}

	p.Clear()
	p.CurveTo(pt(1, 0), pt(2, 0), pt(3, 0))
	if got, exp := p.String(), "M1.000,0.000 C1.000,0.000,2.000,0.000,3.000,0.000"; got != exp {
		t.Fatalf("expected %s, got %s", exp, got)
	}
}

func TestCloseWithoutPoint(t *testing.T) {
	var p Path
	p.ClosePath()
	if !p.IsEmpty() {
		t.Fatal("ClosePath without current point should do nothing")
	}
}

func TestBounds(t *testing.T) {
	var p Path
	if _, ok := p.Bounds(); ok {
		t.Fatal("empty path has no bounds")
	}

	p.MoveTo(pt(0, 0))
	p.CurveTo(pt(0, 10), pt(10, 10), pt(10, 0))
	r, ok := p.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if !closeTo(r.Min, pt(0, 0)) || !closeTo(r.Max, pt(10, 7.5)) {
		t.Fatalf("unexpected bounds %v", r)
	}

	p.NewSubPath()
	p.MoveTo(pt(-2, 1))
	p.LineTo(pt(3, 20))
	r, _ = p.Bounds()
	if !closeTo(r.Min, pt(-2, 0)) || !closeTo(r.Max, pt(10, 20)) {
		t.Fatalf("unexpected bounds %v", r)
	}
	if r.Width() != 12 || r.Height() != 20 {
		t.Fatalf("unexpected size %v x %v", r.Width(), r.Height())
	}
}

func randPoint() lison.Point {
	return pt(rand.Float64()*1000-500, rand.Float64()*1000-500)
}

func TestBoundsRandomCubics(t *testing.T) {
	for range [200]int{} {
		cu := cubicBezier{randPoint(), randPoint(), randPoint(), randPoint()}
		r := computeBoundingBox(cu)
		// no sample of the curve may lie outside the box
		box := Rect{Min: pt(r.Min.X-1e-6, r.Min.Y-1e-6), Max: pt(r.Max.X+1e-6, r.Max.Y+1e-6)}
		for i := 0; i <= 100; i++ {
			s := cu.evaluateCurve(float64(i) / 100)
			if !box.Contains(Rect{s, s}) {
				t.Fatalf("point %v of %v outside of %v", s, cu, r)
			}
		}
	}
}

type recordAdder []string

func (r *recordAdder) Start(a fixed.Point26_6) { *r = append(*r, fmt.Sprintf("S%d,%d", a.X, a.Y)) }
func (r *recordAdder) Line(b fixed.Point26_6)  { *r = append(*r, fmt.Sprintf("L%d,%d", b.X, b.Y)) }
func (r *recordAdder) QuadBezier(b, c fixed.Point26_6) {
	*r = append(*r, "Q")
}

func (r *recordAdder) CubeBezier(b, c, d fixed.Point26_6) {
	*r = append(*r, fmt.Sprintf("C%d,%d", d.X, d.Y))
}
func (r *recordAdder) Stop(closeLoop bool) { *r = append(*r, fmt.Sprintf("Stop%v", closeLoop)) }

func TestAddTo(t *testing.T) {
	var p Path
	p.MoveTo(pt(1, 0))
	p.LineTo(pt(2, 0))
	p.ClosePath()
	p.MoveTo(pt(0, 1))
	p.CurveTo(pt(0, 2), pt(0, 3), pt(1, 1))

	var rec recordAdder
	p.AddTo(&rec)
	got := fmt.Sprint(rec)
	exp := "[S64,0 L128,0 Stoptrue S0,64 C64,64 Stopfalse]"
	if got != exp {
		t.Fatalf("expected %s, got %s", exp, got)
	}
}

const sampleImage = `{
	"width": 100, "height": 50, "unit-per-inch": 100,
	"pens": [{"pattern": {"type": "monochrome", "color": [0, 0, 0]}, "width": 1, "cap": "butt", "join": "miter"}],
	"brushes": [{"pattern": {"type": "monochrome", "color": [1, 0, 0]}}],
	"shapes": [
		{"type": "group", "content": [
			{"type": "region", "brush": 0, "data": [[[10, 10], ["L", [20, 10]], ["L", [20, 20]]]]}
		]},
		{"type": "curve", "pen": 0, "data": [[0, 0], ["Q", [60, 0], [60, 60]]]},
		{"type": "region", "data": [[[-100, -100], ["L", [500, 500]]]]}
	]
}`

func TestAddToHugeCoordinates(t *testing.T) {
	var p Path
	p.MoveTo(pt(-10, -10))
	p.LineTo(pt(1e20, -10))
	p.LineTo(pt(-10, math.Inf(1)))
	p.LineTo(pt(-1e20, math.NaN()))

	var rec recordAdder
	p.AddTo(&rec)
	got := fmt.Sprint(rec)
	exp := "[S-640,-640 L8388608,-640 L-640,8388608 L-8388608,0 Stopfalse]"
	if got != exp {
		t.Fatalf("expected %s, got %s", exp, got)
	}
}

func TestExtent(t *testing.T) {
	img, err := lison.ParseString(sampleImage)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := Extent(img)
	if !ok {
		t.Fatal("expected an extent")
	}
	// the last region is not painted, the curve goes out of the canvas
	if !closeTo(r.Min, pt(0, 0)) || !closeTo(r.Max, pt(60, 60)) {
		t.Fatalf("unexpected extent %v", r)
	}
	canvas := Rect{Max: pt(img.Width, img.Height)}
	if canvas.Contains(r) {
		t.Fatal("extent should exceed the canvas")
	}

	img.Shapes = nil
	if _, ok := Extent(img); ok {
		t.Fatal("empty image has no extent")
	}
}
