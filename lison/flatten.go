package lison

// Flatten returns a copy of the image where groups have been
// replaced by their content, so that Shapes only contains
// curves and regions, in drawing order.
// Pens, brushes and shapes are shared with `img`.
func (img *Image) Flatten() *Image {
	out := *img
	out.Shapes = nil
	var walk func(shapes []Shape)
	walk = func(shapes []Shape) {
		for _, shape := range shapes {
			if group, ok := shape.(*Group); ok {
				walk(group.Content)
				continue
			}
			out.Shapes = append(out.Shapes, shape)
		}
	}
	walk(img.Shapes)
	return &out
}

// Stats summarizes the content of an image.
type Stats struct {
	Pens, Brushes           int
	Groups, Curves, Regions int
	Contours, Segments      int
	Depth                   int // maximum nesting of groups
}

// Stats walks the shape tree and counts its elements.
func (img *Image) Stats() Stats {
	st := Stats{Pens: len(img.Pens), Brushes: len(img.Brushes)}
	for _, shape := range img.Shapes {
		st.add(shape, 0)
	}
	return st
}

func (st *Stats) add(shape Shape, depth int) {
	switch shape := shape.(type) {
	case *Group:
		st.Groups++
		if depth+1 > st.Depth {
			st.Depth = depth + 1
		}
		for _, child := range shape.Content {
			st.add(child, depth+1)
		}
	case *Curve:
		st.Curves++
		st.Contours++
		st.Segments += len(shape.Data.Segments)
	case *Region:
		st.Regions++
		st.Contours += len(shape.Data)
		for _, contour := range shape.Data {
			st.Segments += len(contour.Segments)
		}
	}
}
