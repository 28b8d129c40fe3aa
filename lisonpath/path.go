// Implements a device-space path recorder, shared by
// the painting backends of LISON images.
package lisonpath

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/lison/lison"
	"github.com/benoitkugler/lison/utils"
	"golang.org/x/image/math/fixed"
)

// Adder interface for types that can accumulate path commands,
// such as rasterx.Dasher or rasterx.Filler
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands.
// Quadratic curves are elevated before reaching the path.
type Operation interface {
	command() pathCommand
}

type MoveTo lison.Point

type LineTo lison.Point

type CubicTo [3]lison.Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path records a sequence of operations and tracks
// the current point, following the usual 2D graphics model:
//	- MoveTo, LineTo and CurveTo set the current point
//	- ClosePath moves it back to the start of the sub-path
//	- Clear and NewSubPath remove it
// The zero value is an empty path, ready to use.
type Path struct {
	Ops []Operation

	start, current lison.Point
	hasCurrent     bool
	closed         bool // the last operation is Close
}

// Clear discards the operations and the current point.
func (p *Path) Clear() {
	p.Ops = p.Ops[:0]
	p.hasCurrent = false
	p.closed = false
}

// IsEmpty returns true if the path has no operations.
func (p *Path) IsEmpty() bool { return len(p.Ops) == 0 }

// NewSubPath keeps the operations, but removes the current point,
// so that the next operation starts a new sub-path.
func (p *Path) NewSubPath() {
	p.hasCurrent = false
	p.closed = false
}

// CurrentPoint returns the current point, if any.
func (p *Path) CurrentPoint() (lison.Point, bool) {
	return p.current, p.hasCurrent
}

// MoveTo starts a new sub-path at `a`.
func (p *Path) MoveTo(a lison.Point) {
	p.Ops = append(p.Ops, MoveTo(a))
	p.start, p.current = a, a
	p.hasCurrent = true
	p.closed = false
}

// ensureCurrent starts a sub-path when needed:
// at `a` if there is no current point, at the current point
// after a ClosePath.
func (p *Path) ensureCurrent(a lison.Point) {
	if !p.hasCurrent {
		p.MoveTo(a)
	} else if p.closed {
		p.MoveTo(p.current)
	}
}

// LineTo adds a linear segment to the current sub-path.
func (p *Path) LineTo(b lison.Point) {
	p.ensureCurrent(b)
	p.Ops = append(p.Ops, LineTo(b))
	p.current = b
}

// CurveTo adds a cubic segment to the current sub-path.
func (p *Path) CurveTo(c1, c2, end lison.Point) {
	p.ensureCurrent(c1)
	p.Ops = append(p.Ops, CubicTo{c1, c2, end})
	p.current = end
}

// ClosePath joins the current point to the start of the sub-path.
// It does nothing without a current point.
func (p *Path) ClosePath() {
	if !p.hasCurrent || p.closed {
		return
	}
	p.Ops = append(p.Ops, Close{})
	p.current = p.start
	p.closed = true
}

// MaxCoordinate is the largest magnitude, in pixels, of the
// coordinates sent to an Adder. Fixed point rasterizers overflow
// their intermediate int32 products well before the 26.6 range ends.
const MaxCoordinate = 1 << 17

// ToFixed converts a device coordinate, clamped to
// [-MaxCoordinate, MaxCoordinate]. NaN is mapped to 0.
func ToFixed(v float64) fixed.Int26_6 {
	if v != v {
		return 0
	}
	return fixed.Int26_6(utils.Clamp(v, -MaxCoordinate, MaxCoordinate) * 64)
}

func toFixed(p lison.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: ToFixed(p.X), Y: ToFixed(p.Y)}
}

// AddTo adds the path to `q`.
func (p *Path) AddTo(q Adder) {
	started := false
	for _, op := range p.Ops {
		switch op := op.(type) {
		case MoveTo:
			if started {
				q.Stop(false)
			}
			q.Start(toFixed(lison.Point(op)))
			started = true
		case LineTo:
			q.Line(toFixed(lison.Point(op)))
		case CubicTo:
			q.CubeBezier(toFixed(op[0]), toFixed(op[1]), toFixed(op[2]))
		case Close:
			q.Stop(true)
			started = false
		}
	}
	if started {
		q.Stop(false)
	}
}

// String returns a readable representation of the path,
// using the SVG syntax.
func (p *Path) String() string {
	chunks := make([]string, len(p.Ops))
	for i, op := range p.Ops {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%.3f,%.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%.3f,%.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%.3f,%.3f,%.3f,%.3f,%.3f,%.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}
