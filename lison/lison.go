// Provides parsing and rendering of LISON images.
// LISON files are JSON documents describing pens, brushes
// and a tree of shapes. They are parsed into an abstract representation,
// which can then be consumed by painting backends.
// See for example lison/lisonraster or lison/lisonpdf .
package lison

import "fmt"

// Point is a position, in document units.
type Point struct {
	X, Y float64
}

// Color holds the four channels of a color, each in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Pattern is a paint source, either Monochrome,
// LinearGradient or RadialGradient.
type Pattern interface {
	isPattern()
}

// Monochrome is a flat color.
type Monochrome struct {
	Color Color
}

// LinearGradient interpolates from Color1 at Point1
// to Color2 at Point2.
type LinearGradient struct {
	Point1 Point
	Color1 Color
	Point2 Point
	Color2 Color
}

// RadialGradient interpolates between two circles.
type RadialGradient struct {
	Center1 Point
	Radius1 float64
	Color1  Color
	Center2 Point
	Radius2 float64
	Color2  Color
}

func (Monochrome) isPattern()     {}
func (LinearGradient) isPattern() {}
func (RadialGradient) isPattern() {}

// LineCap defines how to draw caps on the ends of lines
type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

func (c LineCap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return "<unknown LineCap>"
	}
}

// LineJoin specifies how stroke segments are joined.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

func (j LineJoin) String() string {
	switch j {
	case MiterJoin:
		return "miter"
	case RoundJoin:
		return "round"
	case BevelJoin:
		return "bevel"
	default:
		return "<unknown LineJoin>"
	}
}

// Pen is the stroking style of curves and regions.
type Pen struct {
	Pattern Pattern
	Width   float64 // > 0
	Cap     LineCap
	Join    LineJoin
}

// Brush is the filling style of regions.
type Brush struct {
	Pattern Pattern
}

// Segment extends a path from its current point.
// It is one of LineSegment, QuadraticSegment or CubicSegment.
type Segment interface {
	isSegment()
}

// LineSegment is a straight line to End.
type LineSegment struct {
	End Point
}

// QuadraticSegment is a quadratic Bézier curve.
type QuadraticSegment struct {
	Control, End Point
}

// CubicSegment is a cubic Bézier curve.
type CubicSegment struct {
	Control1, Control2, End Point
}

func (LineSegment) isSegment()      {}
func (QuadraticSegment) isSegment() {}
func (CubicSegment) isSegment()     {}

// CurveData is an open path, walked from Start through each segment.
type CurveData struct {
	Start    Point
	Segments []Segment
}

// RegionData holds the contours of a region. The first one is the outer contour,
// the following ones usually are holes.
// A parsed RegionData always has at least one contour.
type RegionData []CurveData

// Shape is an element of the shape tree:
// one of *Group, *Curve or *Region.
type Shape interface {
	isShape()
}

// Group is an ordered list of shapes, drawn in order.
type Group struct {
	Content []Shape
}

// Curve is an open path stroked with Pens[Pen].
type Curve struct {
	Pen  int
	Data CurveData
}

// Region is a closed area, filled with Brushes[*Brush] if Brush is not nil,
// then stroked with Pens[*Pen] if Pen is not nil.
type Region struct {
	Pen   *int
	Brush *int
	Data  RegionData
}

func (*Group) isShape()  {}
func (*Curve) isShape()  {}
func (*Region) isShape() {}

// Image is the root of a LISON document.
// Shapes refer to Pens and Brushes by their position.
//
// An Image returned by Parse satisfies all the invariants
// of the format and should be treated as read-only.
type Image struct {
	Width, Height float64 // > 0, in document units
	UnitPerInch   float64 // > 0
	Pens          []Pen
	Brushes       []Brush
	Shapes        []Shape
}

// pen returns the pen at index i, panicking with a helpful message
// if the image has been built with an invalid reference.
func (img *Image) pen(i int) Pen {
	if i < 0 || i >= len(img.Pens) {
		panic(fmt.Sprintf("lison: invalid pen index %d, must be less than %d", i, len(img.Pens)))
	}
	return img.Pens[i]
}

func (img *Image) brush(i int) Brush {
	if i < 0 || i >= len(img.Brushes) {
		panic(fmt.Sprintf("lison: invalid brush index %d, must be less than %d", i, len(img.Brushes)))
	}
	return img.Brushes[i]
}
