package lison

import (
	"encoding/json"
	"io"
	"math"
)

// value is a node of the generic JSON tree:
// nil, bool, float64, string, []interface{} or map[string]interface{}
type value = interface{}

// Parse reads a LISON document.
// On failure, the returned error is always a ParseFailure
// and no image is returned.
func Parse(text []byte) (*Image, error) {
	var root value
	if err := json.Unmarshal(text, &root); err != nil {
		return nil, BadJSON
	}
	return parseImage(root)
}

// ParseString is the same as Parse, for a string input.
func ParseString(text string) (*Image, error) {
	return Parse([]byte(text))
}

// ParseReader reads all of r and parses it.
// Errors returned by r are returned as is.
func ParseReader(r io.Reader) (*Image, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}

// generic validation primitives

// member binds a member name to the function storing
// its parsed value in the object being built.
type member[T any] struct {
	name string
	fill func(t *T, v value) error
}

func parseArray[T any](v value, parse func(value) (T, error), ctx ParseFailure) ([]T, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, ctx
	}
	out := make([]T, 0, len(arr))
	for _, item := range arr {
		t, err := parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// parseObject checks the member names of `v` against the schema of `kind`,
// then calls the fillers, in order, for each member present.
func parseObject[T any](v value, kind objectKind, ctx ParseFailure, members ...member[T]) (T, error) {
	var t T
	obj, ok := v.(map[string]interface{})
	if !ok || !schemas[kind].matches(obj) {
		return t, ctx
	}
	for _, m := range members {
		mv, ok := obj[m.name]
		if !ok {
			continue
		}
		if err := m.fill(&t, mv); err != nil {
			return t, err
		}
	}
	return t, nil
}

// parseSub restricts the values accepted by `parse` to those verifying `pred`.
func parseSub[T any](v value, parse func(value, ParseFailure) (T, error), pred func(T) bool, ctx ParseFailure) (T, error) {
	t, err := parse(v, ctx)
	if err != nil {
		return t, err
	}
	if !pred(t) {
		return t, ctx
	}
	return t, nil
}

// parseTuple expects an array with exactly one element per filler.
func parseTuple[T any](v value, ctx ParseFailure, fillers ...func(t *T, v value) error) (T, error) {
	var t T
	arr, ok := v.([]interface{})
	if !ok || len(arr) != len(fillers) {
		return t, ctx
	}
	for i, fill := range fillers {
		if err := fill(&t, arr[i]); err != nil {
			return t, err
		}
	}
	return t, nil
}

// skip is used for tuple elements already inspected, such as segment tags.
func skip[T any](*T, value) error { return nil }

// scalars

func parseNumber(v value, ctx ParseFailure) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, ctx
	}
	return f, nil
}

func isPositive(f float64) bool    { return f > 0 }
func isNonNegative(f float64) bool { return f >= 0 }
func isChannel(f float64) bool     { return 0 <= f && f <= 1 }

// isIndex also rejects values not representable as an int.
func isIndex(f float64) bool {
	return f >= 0 && math.Floor(f) == f && f < float64(math.MaxInt)
}

func parsePositiveNumber(v value, ctx ParseFailure) (float64, error) {
	return parseSub(v, parseNumber, isPositive, ctx)
}

func parseNonNegativeNumber(v value, ctx ParseFailure) (float64, error) {
	return parseSub(v, parseNumber, isNonNegative, ctx)
}

func parseChannel(v value, ctx ParseFailure) (float64, error) {
	return parseSub(v, parseNumber, isChannel, ctx)
}

func parseIndex(v value, ctx ParseFailure) (int, error) {
	f, err := parseSub(v, parseNumber, isIndex, ctx)
	return int(f), err
}

func parsePoint(v value, ctx ParseFailure) (Point, error) {
	return parseTuple(v, ctx,
		func(p *Point, v value) (err error) {
			p.X, err = parseNumber(v, ctx)
			return err
		},
		func(p *Point, v value) (err error) {
			p.Y, err = parseNumber(v, ctx)
			return err
		},
	)
}

// parseColor accepts [r, g, b] and [r, g, b, a] arrays, alpha defaulting to 1.
func parseColor(v value, ctx ParseFailure) (Color, error) {
	arr, ok := v.([]interface{})
	if !ok || (len(arr) != 3 && len(arr) != 4) {
		return Color{}, ctx
	}
	channels := [4]float64{3: 1}
	for i, item := range arr {
		c, err := parseChannel(item, ctx)
		if err != nil {
			return Color{}, err
		}
		channels[i] = c
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// typeTag returns the "type" member of an object, if it is a string.
func typeTag(v value) (string, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	tag, ok := obj["type"].(string)
	return tag, ok
}

// patterns

func parsePattern(v value, ctx ParseFailure) (Pattern, error) {
	tag, ok := typeTag(v)
	if !ok {
		return nil, ctx
	}
	switch tag {
	case "monochrome":
		return parseMonochrome(v, ctx)
	case "linear-gradient":
		return parseLinearGradient(v, ctx)
	case "radial-gradient":
		return parseRadialGradient(v, ctx)
	default:
		return nil, ctx
	}
}

func parseMonochrome(v value, ctx ParseFailure) (Pattern, error) {
	pattern, err := parseObject(v, monochromeObject, ctx,
		member[Monochrome]{"color", func(p *Monochrome, v value) (err error) {
			p.Color, err = parseColor(v, ctx)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return pattern, nil
}

func parseLinearGradient(v value, ctx ParseFailure) (Pattern, error) {
	pattern, err := parseObject(v, linearGradientObject, ctx,
		member[LinearGradient]{"point-1", func(p *LinearGradient, v value) (err error) {
			p.Point1, err = parsePoint(v, ctx)
			return err
		}},
		member[LinearGradient]{"color-1", func(p *LinearGradient, v value) (err error) {
			p.Color1, err = parseColor(v, ctx)
			return err
		}},
		member[LinearGradient]{"point-2", func(p *LinearGradient, v value) (err error) {
			p.Point2, err = parsePoint(v, ctx)
			return err
		}},
		member[LinearGradient]{"color-2", func(p *LinearGradient, v value) (err error) {
			p.Color2, err = parseColor(v, ctx)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return pattern, nil
}

func parseRadialGradient(v value, ctx ParseFailure) (Pattern, error) {
	pattern, err := parseObject(v, radialGradientObject, ctx,
		member[RadialGradient]{"center-1", func(p *RadialGradient, v value) (err error) {
			p.Center1, err = parsePoint(v, ctx)
			return err
		}},
		member[RadialGradient]{"radius-1", func(p *RadialGradient, v value) (err error) {
			p.Radius1, err = parseNonNegativeNumber(v, ctx)
			return err
		}},
		member[RadialGradient]{"color-1", func(p *RadialGradient, v value) (err error) {
			p.Color1, err = parseColor(v, ctx)
			return err
		}},
		member[RadialGradient]{"center-2", func(p *RadialGradient, v value) (err error) {
			p.Center2, err = parsePoint(v, ctx)
			return err
		}},
		member[RadialGradient]{"radius-2", func(p *RadialGradient, v value) (err error) {
			p.Radius2, err = parseNonNegativeNumber(v, ctx)
			return err
		}},
		member[RadialGradient]{"color-2", func(p *RadialGradient, v value) (err error) {
			p.Color2, err = parseColor(v, ctx)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return pattern, nil
}

// pens and brushes

func parsePen(v value) (Pen, error) {
	return parseObject(v, penObject, BadPen,
		member[Pen]{"pattern", func(pen *Pen, v value) (err error) {
			pen.Pattern, err = parsePattern(v, BadPen)
			return err
		}},
		member[Pen]{"width", func(pen *Pen, v value) (err error) {
			pen.Width, err = parsePositiveNumber(v, BadPen)
			return err
		}},
		member[Pen]{"cap", func(pen *Pen, v value) error {
			s, _ := v.(string)
			c, ok := lineCaps[s]
			if !ok {
				return BadPen
			}
			pen.Cap = c
			return nil
		}},
		member[Pen]{"join", func(pen *Pen, v value) error {
			s, _ := v.(string)
			j, ok := lineJoins[s]
			if !ok {
				return BadPen
			}
			pen.Join = j
			return nil
		}},
	)
}

func parseBrush(v value) (Brush, error) {
	return parseObject(v, brushObject, BadBrush,
		member[Brush]{"pattern", func(brush *Brush, v value) (err error) {
			brush.Pattern, err = parsePattern(v, BadBrush)
			return err
		}},
	)
}

// shapes

func parseShape(v value) (Shape, error) {
	tag, ok := typeTag(v)
	if !ok {
		return nil, BadShape
	}
	switch tag {
	case "group":
		return parseGroup(v)
	case "curve":
		return parseCurve(v)
	case "region":
		return parseRegion(v)
	default:
		return nil, BadShape
	}
}

func parseGroup(v value) (Shape, error) {
	group, err := parseObject(v, groupObject, BadShape,
		member[Group]{"content", func(g *Group, v value) (err error) {
			g.Content, err = parseArray(v, parseShape, BadShape)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func parseCurve(v value) (Shape, error) {
	curve, err := parseObject(v, curveObject, BadShape,
		member[Curve]{"pen", func(c *Curve, v value) (err error) {
			c.Pen, err = parseIndex(v, BadShape)
			return err
		}},
		member[Curve]{"data", func(c *Curve, v value) (err error) {
			c.Data, err = parseCurveData(v)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return &curve, nil
}

func parseRegion(v value) (Shape, error) {
	region, err := parseObject(v, regionObject, BadShape,
		member[Region]{"pen", func(r *Region, v value) error {
			pen, err := parseIndex(v, BadShape)
			r.Pen = &pen
			return err
		}},
		member[Region]{"brush", func(r *Region, v value) error {
			brush, err := parseIndex(v, BadShape)
			r.Brush = &brush
			return err
		}},
		member[Region]{"data", func(r *Region, v value) (err error) {
			r.Data, err = parseRegionData(v)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// parseCurveData reads [start, segment...]
func parseCurveData(v value) (CurveData, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return CurveData{}, BadShape
	}
	start, err := parsePoint(arr[0], BadShape)
	if err != nil {
		return CurveData{}, err
	}
	segments, err := parseArray(arr[1:], parseSegment, BadShape)
	if err != nil {
		return CurveData{}, err
	}
	return CurveData{Start: start, Segments: segments}, nil
}

func parseRegionData(v value) (RegionData, error) {
	curves, err := parseArray(v, parseCurveData, BadShape)
	if err != nil {
		return nil, err
	}
	if len(curves) == 0 {
		return nil, BadShape
	}
	return curves, nil
}

func segmentPoint[T any](set func(t *T, p Point)) func(t *T, v value) error {
	return func(t *T, v value) error {
		p, err := parsePoint(v, BadShape)
		if err != nil {
			return err
		}
		set(t, p)
		return nil
	}
}

// parseSegment dispatches on the tag, which is the first element
// of the tuple: ["L", end], ["Q", control, end] or ["C", control1, control2, end]
func parseSegment(v value) (Segment, error) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, BadShape
	}
	tag, ok := arr[0].(string)
	if !ok {
		return nil, BadShape
	}
	switch tag {
	case "L":
		seg, err := parseTuple(v, BadShape,
			skip[LineSegment],
			segmentPoint(func(s *LineSegment, p Point) { s.End = p }),
		)
		if err != nil {
			return nil, err
		}
		return seg, nil
	case "Q":
		seg, err := parseTuple(v, BadShape,
			skip[QuadraticSegment],
			segmentPoint(func(s *QuadraticSegment, p Point) { s.Control = p }),
			segmentPoint(func(s *QuadraticSegment, p Point) { s.End = p }),
		)
		if err != nil {
			return nil, err
		}
		return seg, nil
	case "C":
		seg, err := parseTuple(v, BadShape,
			skip[CubicSegment],
			segmentPoint(func(s *CubicSegment, p Point) { s.Control1 = p }),
			segmentPoint(func(s *CubicSegment, p Point) { s.Control2 = p }),
			segmentPoint(func(s *CubicSegment, p Point) { s.End = p }),
		)
		if err != nil {
			return nil, err
		}
		return seg, nil
	default:
		return nil, BadShape
	}
}

// image

func parseImage(v value) (*Image, error) {
	img, err := parseObject(v, imageObject, BadImage,
		member[Image]{"width", func(img *Image, v value) (err error) {
			img.Width, err = parsePositiveNumber(v, BadImage)
			return err
		}},
		member[Image]{"height", func(img *Image, v value) (err error) {
			img.Height, err = parsePositiveNumber(v, BadImage)
			return err
		}},
		member[Image]{"unit-per-inch", func(img *Image, v value) (err error) {
			img.UnitPerInch, err = parsePositiveNumber(v, BadImage)
			return err
		}},
		member[Image]{"pens", func(img *Image, v value) (err error) {
			img.Pens, err = parseArray(v, parsePen, BadImage)
			return err
		}},
		member[Image]{"brushes", func(img *Image, v value) (err error) {
			img.Brushes, err = parseArray(v, parseBrush, BadImage)
			return err
		}},
		member[Image]{"shapes", func(img *Image, v value) (err error) {
			img.Shapes, err = parseArray(v, parseShape, BadImage)
			return err
		}},
	)
	if err != nil {
		return nil, err
	}

	// references may only be checked once pens and brushes are known
	if err := Check(&img); err != nil {
		return nil, err
	}
	return &img, nil
}
