// Implements a PDF backend to render LISON images,
// writing content streams with github.com/benoitkugler/pdf.
package lisonpdf

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/lison/lison"
	"github.com/benoitkugler/lison/lisonpath"
	"github.com/benoitkugler/lison/utils"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
)

var _ lison.Backend = (*Renderer)(nil) // assert interface conformance

const miterLimit = 10

// Renderer writes to a content stream.
//
// PDF painting operators consume the current path,
// so that the path is recorded and written at paint time.
type Renderer struct {
	pdf *contentstream.Appearance

	path lisonpath.Path
	rule lison.FillRule

	source  lison.Color
	shading *model.ShadingDict // nil for a flat color
	// opacity of the shading, since PDF functions
	// have no alpha channel
	shadingAlpha float64

	// maps user space to the default page space,
	// needed by the shading patterns used to stroke
	ctm model.Matrix

	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *contentstream.Appearance) *Renderer {
	pdf.Ops(contentstream.OpSetMiterLimit{Limit: miterLimit})
	return &Renderer{
		pdf:                 pdf,
		rule:                lison.NonZero,
		source:              lison.Color{A: 1},
		ctm:                 model.Matrix{1, 0, 0, 1, 0, 0},
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

// WriteFile renders `img` into a new one page PDF file.
// The page size is given by lison.DeviceSize, where
// `resolution` is usually 72, the number of PDF points per inch.
func WriteFile(img *lison.Image, pdfName string, resolution, scale float64) error {
	w, h, err := lison.DeviceSize(img, resolution, scale)
	if err != nil {
		return err
	}
	pdf := contentstream.NewAppearance(float64(w), float64(h))
	renderer := NewRenderer(&pdf)
	// LISON images have their origin at the top left corner
	renderer.ctm = model.Matrix{1, 0, 0, -1, 0, float64(h)}
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: renderer.ctm},
	)
	lison.Render(img, renderer, resolution, scale)
	pdf.Ops(contentstream.OpRestore{})

	var page model.PageObject
	pdf.ApplyToPageObject(&page, true)
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	if err := doc.WriteFile(pdfName, nil); err != nil {
		return fmt.Errorf("writing PDF file: %w", err)
	}
	return nil
}

func (r *Renderer) SetOperatorOver() {} // the default in PDF

func (r *Renderer) SetFillRule(rule lison.FillRule) { r.rule = rule }

func (r *Renderer) SetSourceRGBA(c lison.Color) {
	r.source = c
	r.shading = nil
}

func rgb(c lison.Color) []model.Fl {
	return []model.Fl{utils.Clamp(c.R, 0, 1), utils.Clamp(c.G, 0, 1), utils.Clamp(c.B, 0, 1)}
}

// gradient returns an extended RGB interpolation from c1 to c2
func gradient(c1, c2 lison.Color) model.BaseGradient {
	return model.BaseGradient{
		Function: []model.FunctionDict{{
			FunctionType: model.FunctionExpInterpolation{C0: rgb(c1), C1: rgb(c2), N: 1},
			Domain:       []model.Range{{0, 1}},
		}},
		Extend: [2]bool{true, true},
	}
}

func (r *Renderer) setShading(sh model.Shading, c1, c2 lison.Color) {
	r.shading = &model.ShadingDict{ShadingType: sh, ColorSpace: model.ColorSpaceRGB}
	r.shadingAlpha = (c1.A + c2.A) / 2
}

func (r *Renderer) SetLinearGradient(p1 lison.Point, c1 lison.Color, p2 lison.Point, c2 lison.Color) {
	r.setShading(model.ShadingAxial{
		BaseGradient: gradient(c1, c2),
		Coords:       [4]model.Fl{p1.X, p1.Y, p2.X, p2.Y},
	}, c1, c2)
}

func (r *Renderer) SetRadialGradient(center1 lison.Point, radius1 float64, c1 lison.Color, center2 lison.Point, radius2 float64, c2 lison.Color) {
	r.setShading(model.ShadingRadial{
		BaseGradient: gradient(c1, c2),
		Coords:       [6]model.Fl{center1.X, center1.Y, radius1, center2.X, center2.Y, radius2},
	}, c1, c2)
}

func (r *Renderer) SetLineWidth(width float64) {
	r.pdf.Ops(contentstream.OpSetLineWidth{W: width})
}

func (r *Renderer) SetLineCap(c lison.LineCap) {
	var capStyle uint8
	switch c {
	case lison.ButtCap:
		capStyle = 0
	case lison.RoundCap:
		capStyle = 1
	case lison.SquareCap:
		capStyle = 2
	}
	r.pdf.Ops(contentstream.OpSetLineCap{Style: capStyle})
}

func (r *Renderer) SetLineJoin(j lison.LineJoin) {
	var joinStyle uint8
	switch j {
	case lison.MiterJoin:
		joinStyle = 0
	case lison.RoundJoin:
		joinStyle = 1
	case lison.BevelJoin:
		joinStyle = 2
	}
	r.pdf.Ops(contentstream.OpSetLineJoin{Style: joinStyle})
}

func (r *Renderer) NewPath() { r.path.Clear() }

func (r *Renderer) NewSubPath() { r.path.NewSubPath() }

func (r *Renderer) MoveTo(p lison.Point) { r.path.MoveTo(p) }

func (r *Renderer) LineTo(p lison.Point) { r.path.LineTo(p) }

func (r *Renderer) CurveTo(c1, c2, end lison.Point) { r.path.CurveTo(c1, c2, end) }

func (r *Renderer) ClosePath() { r.path.ClosePath() }

func (r *Renderer) CurrentPoint() (lison.Point, bool) { return r.path.CurrentPoint() }

// writePath writes the recorded path
func (r *Renderer) writePath() {
	for _, op := range r.path.Ops {
		switch op := op.(type) {
		case lisonpath.MoveTo:
			r.pdf.Ops(contentstream.OpMoveTo{X: op.X, Y: op.Y})
		case lisonpath.LineTo:
			r.pdf.Ops(contentstream.OpLineTo{X: op.X, Y: op.Y})
		case lisonpath.CubicTo:
			r.pdf.Ops(contentstream.OpCubicTo{X1: op[0].X, Y1: op[0].Y, X2: op[1].X, Y2: op[1].Y, X3: op[2].X, Y3: op[2].Y})
		case lisonpath.Close:
			r.pdf.Ops(contentstream.OpClosePath{})
		}
	}
}

func channel(v float64) uint8 { return uint8(utils.Clamp(v*255+0.5, 0, 255)) }

// opaque returns the color without its alpha channel,
// which is set with a graphic state
func opaque(c lison.Color) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xFF}
}

// cache the opacity states
func (r *Renderer) setOpacity(opacity float64, stroke bool) {
	states := r.fillOpacityStates
	if stroke {
		states = r.strokeOpacityStates
	}
	gs, ok := states[opacity]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(opacity)
		} else {
			gs.Ca = model.ObjFloat(opacity)
		}
		states[opacity] = gs
	}
	name := r.pdf.AddExtGState(gs)
	r.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (r *Renderer) Fill(preserve bool) {
	if !r.path.IsEmpty() {
		if r.shading != nil {
			r.fillShading()
		} else {
			r.pdf.SetColorFill(opaque(r.source))
			r.setOpacity(r.source.A, false)
			r.writePath()
			if r.rule == lison.EvenOdd {
				r.pdf.Ops(contentstream.OpEOFill{})
			} else {
				r.pdf.Ops(contentstream.OpFill{})
			}
		}
	}
	if !preserve {
		r.path.Clear()
	}
}

// fillShading paints the shading clipped to the current path
func (r *Renderer) fillShading() {
	r.pdf.Ops(contentstream.OpSave{})
	r.writePath()
	if r.rule == lison.EvenOdd {
		r.pdf.Ops(contentstream.OpEOClip{})
	} else {
		r.pdf.Ops(contentstream.OpClip{})
	}
	r.pdf.Ops(contentstream.OpEndPath{})
	r.setOpacity(r.shadingAlpha, false)
	r.pdf.Shading(r.shading)
	r.pdf.Ops(contentstream.OpRestore{})
}

func (r *Renderer) Stroke() {
	if !r.path.IsEmpty() {
		if r.shading != nil {
			pattern := r.pdf.AddPattern(&model.PatternShading{Shading: r.shading, Matrix: r.ctm})
			r.pdf.Ops(
				contentstream.OpSetStrokeColorSpace{ColorSpace: model.ObjName(model.ColorSpacePattern)},
				contentstream.OpSetStrokeColorN{Pattern: pattern},
			)
			r.setOpacity(r.shadingAlpha, true)
		} else {
			r.pdf.SetColorStroke(opaque(r.source))
			r.setOpacity(r.source.A, true)
		}
		r.writePath()
		r.pdf.Ops(contentstream.OpStroke{})
	}
	r.path.Clear()
}
