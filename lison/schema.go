package lison

// This file defines the member names accepted by each kind of JSON object.

type objectKind uint8

const (
	imageObject objectKind = iota
	penObject
	brushObject
	monochromeObject
	linearGradientObject
	radialGradientObject
	groupObject
	curveObject
	regionObject
)

// schema lists the required member names of an object
// and all the names it may contain.
type schema struct {
	required []string
	allowed  map[string]bool
}

func newSchema(required []string, optional ...string) schema {
	allowed := make(map[string]bool, len(required)+len(optional))
	for _, name := range required {
		allowed[name] = true
	}
	for _, name := range optional {
		allowed[name] = true
	}
	return schema{required: required, allowed: allowed}
}

// "editor" and "edit-annot" are annotations written by editors:
// they are accepted with any value and ignored.
var schemas = [...]schema{
	imageObject:          newSchema([]string{"width", "height", "unit-per-inch", "pens", "brushes", "shapes"}, "editor"),
	penObject:            newSchema([]string{"pattern", "width", "cap", "join"}),
	brushObject:          newSchema([]string{"pattern"}),
	monochromeObject:     newSchema([]string{"type", "color"}),
	linearGradientObject: newSchema([]string{"type", "point-1", "color-1", "point-2", "color-2"}),
	radialGradientObject: newSchema([]string{"type", "center-1", "radius-1", "color-1", "center-2", "radius-2", "color-2"}),
	groupObject:          newSchema([]string{"type", "content"}, "edit-annot"),
	curveObject:          newSchema([]string{"type", "pen", "data"}),
	regionObject:         newSchema([]string{"type", "data"}, "pen", "brush"),
}

// matches returns true if obj has all the required members
// and only allowed ones.
func (s schema) matches(obj map[string]interface{}) bool {
	for _, name := range s.required {
		if _, ok := obj[name]; !ok {
			return false
		}
	}
	for name := range obj {
		if !s.allowed[name] {
			return false
		}
	}
	return true
}

var (
	lineCaps = map[string]LineCap{
		"butt":   ButtCap,
		"round":  RoundCap,
		"square": SquareCap,
	}
	lineJoins = map[string]LineJoin{
		"miter": MiterJoin,
		"round": RoundJoin,
		"bevel": BevelJoin,
	}
)
