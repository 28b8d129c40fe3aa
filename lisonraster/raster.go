// Implements a raster backend to render LISON images,
// by wrapping rasterx, with the scanx scanner.
package lisonraster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/lison/lison"
	"github.com/benoitkugler/lison/lisonpath"
	"github.com/benoitkugler/lison/utils"
	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanx"
)

var _ lison.Backend = (*Renderer)(nil) // assert interface conformance

const miterLimit = 10

// Renderer draws on an RGBA image.
// Fills and strokes share a scanx.Scanner, which
// supports both winding rules.
type Renderer struct {
	filler *rasterx.Filler
	dasher *rasterx.Dasher

	path lisonpath.Path
	rule lison.FillRule

	source interface{} // color.Color or rasterx.ColorFunc

	lineWidth float64
	lineCap   lison.LineCap
	lineJoin  lison.LineJoin
}

// NewRenderer returns a renderer drawing into `dst`,
// with an opaque black source and a non-zero fill rule.
func NewRenderer(dst *image.RGBA) *Renderer {
	w, h := dst.Bounds().Max.X, dst.Bounds().Max.Y
	scanner := scanx.NewScanner(scanx.NewImgSpanner(dst), w, h)
	rd := &Renderer{
		filler:    rasterx.NewFiller(w, h, scanner),
		dasher:    rasterx.NewDasher(w, h, scanner),
		rule:      lison.NonZero,
		lineWidth: 1,
	}
	rd.SetSourceRGBA(lison.Color{A: 1})
	return rd
}

// RasterImage renders `img` into a new image, whose size is
// given by lison.DeviceSize.
func RasterImage(img *lison.Image, resolution, scale float64) (*image.RGBA, error) {
	w, h, err := lison.DeviceSize(img, resolution, scale)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	lison.Render(img, NewRenderer(out), resolution, scale)
	return out, nil
}

// RasterReader parses the LISON document in `r`
// and renders it with RasterImage.
func RasterReader(r io.Reader, resolution, scale float64) (*image.RGBA, error) {
	img, err := lison.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid LISON document: %w", err)
	}
	return RasterImage(img, resolution, scale)
}

func channel(v float64) uint8 { return uint8(utils.Clamp(math.Round(v*255), 0, 255)) }

func toNRGBA(c lison.Color) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

// gradStop splits the alpha channel into the stop opacity,
// as expected by rasterx.
func gradStop(c lison.Color, offset float64) rasterx.GradStop {
	opaque := toNRGBA(c)
	opaque.A = 0xFF
	return rasterx.GradStop{StopColor: opaque, Offset: offset, Opacity: c.A}
}

func toRasterxGradient(points [5]float64, isRadial bool, stops ...rasterx.GradStop) rasterx.Gradient {
	g := rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Matrix:   rasterx.Identity,
		Spread:   rasterx.PadSpread,
		Units:    rasterx.UserSpaceOnUse,
		IsRadial: isRadial,
	}
	g.Bounds.W, g.Bounds.H = 1, 1
	return g
}

// setSource accepts the values returned by rasterx.Gradient.GetColorFunction
func (rd *Renderer) setSource(source interface{}) { rd.source = source }

func (rd *Renderer) SetOperatorOver() {} // the only compositing operator supported

func (rd *Renderer) SetFillRule(rule lison.FillRule) { rd.rule = rule }

func (rd *Renderer) SetSourceRGBA(c lison.Color) { rd.setSource(toNRGBA(c)) }

func (rd *Renderer) SetLinearGradient(p1 lison.Point, c1 lison.Color, p2 lison.Point, c2 lison.Color) {
	g := toRasterxGradient([5]float64{p1.X, p1.Y, p2.X, p2.Y}, false, gradStop(c1, 0), gradStop(c2, 1))
	rd.setSource(g.GetColorFunction(1))
}

// SetRadialGradient maps the two circles model on the focal model of rasterx:
// the larger circle is the outline, and the center of the smaller
// one is the focus. The result is exact for concentric circles,
// and for a zero inner radius when the focus is inside the outline.
func (rd *Renderer) SetRadialGradient(center1 lison.Point, radius1 float64, c1 lison.Color, center2 lison.Point, radius2 float64, c2 lison.Color) {
	if radius1 > radius2 {
		center1, center2 = center2, center1
		radius1, radius2 = radius2, radius1
		c1, c2 = c2, c1
	}
	if radius2 == 0 { // degenerated to a point
		rd.SetSourceRGBA(c2)
		return
	}
	inner, outer := gradStop(c1, radius1/radius2), gradStop(c2, 1)
	g := toRasterxGradient([5]float64{center2.X, center2.Y, center1.X, center1.Y, radius2}, true, inner, outer)
	rd.setSource(g.GetColorFunction(1))
}

func (rd *Renderer) SetLineWidth(width float64) { rd.lineWidth = width }

func (rd *Renderer) SetLineCap(c lison.LineCap) { rd.lineCap = c }

func (rd *Renderer) SetLineJoin(j lison.LineJoin) { rd.lineJoin = j }

func (rd *Renderer) NewPath() { rd.path.Clear() }

func (rd *Renderer) NewSubPath() { rd.path.NewSubPath() }

func (rd *Renderer) MoveTo(p lison.Point) { rd.path.MoveTo(p) }

func (rd *Renderer) LineTo(p lison.Point) { rd.path.LineTo(p) }

func (rd *Renderer) CurveTo(c1, c2, end lison.Point) { rd.path.CurveTo(c1, c2, end) }

func (rd *Renderer) ClosePath() { rd.path.ClosePath() }

func (rd *Renderer) CurrentPoint() (lison.Point, bool) { return rd.path.CurrentPoint() }

func (rd *Renderer) Fill(preserve bool) {
	if !preserve {
		defer rd.path.Clear()
	}

	rd.filler.Clear()
	rd.filler.SetWinding(rd.rule == lison.NonZero)
	rd.filler.SetColor(rd.source)
	rd.path.AddTo(rd.filler)
	rd.filler.Draw()
	rd.filler.Clear()
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		lison.MiterJoin: rasterx.Miter,
		lison.RoundJoin: rasterx.Round,
		lison.BevelJoin: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		lison.ButtCap:   rasterx.ButtCap,
		lison.RoundCap:  rasterx.RoundCap,
		lison.SquareCap: rasterx.SquareCap,
	}
)

func (rd *Renderer) Stroke() {
	defer rd.path.Clear()

	rd.dasher.Clear()
	rd.dasher.SetWinding(true)
	// a nil gap function selects the one matching the join
	rd.dasher.SetStroke(lisonpath.ToFixed(rd.lineWidth), lisonpath.ToFixed(miterLimit), capToFunc[rd.lineCap], nil, nil,
		joinToJoin[rd.lineJoin], nil, 0)
	rd.dasher.SetColor(rd.source)
	rd.path.AddTo(rd.dasher)
	rd.dasher.Draw()
	rd.dasher.Clear()
}
