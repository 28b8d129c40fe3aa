package lison

// Check verifies that every pen and brush referenced in the shape tree,
// at any depth, exists in the image.
// It returns BadShape on the first invalid reference, and nil otherwise.
// Parse already performs this check; it is exposed for images built by hand.
func Check(img *Image) error {
	for _, shape := range img.Shapes {
		if !img.checkShape(shape) {
			return BadShape
		}
	}
	return nil
}

func (img *Image) validPen(i int) bool   { return 0 <= i && i < len(img.Pens) }
func (img *Image) validBrush(i int) bool { return 0 <= i && i < len(img.Brushes) }

func (img *Image) checkShape(shape Shape) bool {
	switch shape := shape.(type) {
	case *Group:
		for _, child := range shape.Content {
			if !img.checkShape(child) {
				return false
			}
		}
		return true
	case *Curve:
		return img.validPen(shape.Pen)
	case *Region:
		if shape.Pen != nil && !img.validPen(*shape.Pen) {
			return false
		}
		if shape.Brush != nil && !img.validBrush(*shape.Brush) {
			return false
		}
		return len(shape.Data) != 0
	default: // nil shape
		return false
	}
}
