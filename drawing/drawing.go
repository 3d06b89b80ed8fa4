// Package drawing provides an immutable, composable model for vector
// pictures and a renderer that paints it onto a stateful 2D surface.
//
// A picture is a Drawing tree: styled paint leaves (Fill, Outline,
// Text) combined through Many, and modifier nodes (Scaled, Translated,
// Rotated, Clipped, Shadowed) that scope a change to their subtree.
// Drawings combine with Append and Group; Everywhere rewrites a tree
// bottom-up. Render walks the tree and issues primitive calls against
// a Surface, such as the raster backend in drawraster or the
// call-capturing backend in drawrecord.
package drawing

// Drawing is a node of the picture tree. It is a closed set:
// Fill, Outline, Text, Many, Scaled, Translated, Rotated, Clipped
// and Shadowed are the only implementations.
type Drawing interface {
	isDrawing()
}

// Fill paints the interior of a shape.
type Fill struct {
	Shape Shape
	Style FillStyle
}

// Outline strokes the contour of a shape.
type Outline struct {
	Shape Shape
	Style OutlineStyle
}

// Text paints a string at a position with a font and fill style.
type Text struct {
	Font    Font
	X, Y    float64
	Style   FillStyle
	Content string
}

// Many renders its children in order. It carries no scoping of its
// own; each child scopes its own state changes.
type Many struct {
	Children []Drawing
}

// Scaled applies a scale transform around the origin to its child.
type Scaled struct {
	SX, SY float64
	Child  Drawing
}

// Translated applies a translation to its child.
type Translated struct {
	TX, TY float64
	Child  Drawing
}

// Rotated applies a rotation (radians, around the origin) to its child.
type Rotated struct {
	Angle float64
	Child Drawing
}

// Clipped restricts its child's painting to the interior of a shape.
type Clipped struct {
	Shape Shape
	Child Drawing
}

// Shadowed paints its child with a drop shadow.
type Shadowed struct {
	Shadow Shadow
	Child  Drawing
}

func (Fill) isDrawing()       {}
func (Outline) isDrawing()    {}
func (Text) isDrawing()       {}
func (Many) isDrawing()       {}
func (Scaled) isDrawing()     {}
func (Translated) isDrawing() {}
func (Rotated) isDrawing()    {}
func (Clipped) isDrawing()    {}
func (Shadowed) isDrawing()   {}

// Filled builds a fill leaf.
func Filled(style FillStyle, shape Shape) Drawing {
	return Fill{Shape: shape, Style: style}
}

// Outlined builds an outline leaf.
func Outlined(style OutlineStyle, shape Shape) Drawing {
	return Outline{Shape: shape, Style: style}
}

// NewText builds a text leaf painted at (x, y).
func NewText(font Font, x, y float64, style FillStyle, content string) Drawing {
	return Text{Font: font, X: x, Y: y, Style: style, Content: content}
}

// Group renders the given drawings in order. The slice is copied.
func Group(children ...Drawing) Drawing {
	return Many{Children: append([]Drawing(nil), children...)}
}

// Scale wraps a drawing in a scale transform.
func Scale(sx, sy float64, d Drawing) Drawing {
	return Scaled{SX: sx, SY: sy, Child: d}
}

// Translate wraps a drawing in a translation.
func Translate(tx, ty float64, d Drawing) Drawing {
	return Translated{TX: tx, TY: ty, Child: d}
}

// Rotate wraps a drawing in a rotation. The angle is in radians and
// is not normalized.
func Rotate(angle float64, d Drawing) Drawing {
	return Rotated{Angle: angle, Child: d}
}

// Clip restricts a drawing to the interior of a shape.
func Clip(shape Shape, d Drawing) Drawing {
	return Clipped{Shape: shape, Child: d}
}

// WithShadow paints a drawing with a drop shadow.
func WithShadow(shadow Shadow, d Drawing) Drawing {
	return Shadowed{Shadow: shadow, Child: d}
}

// Empty is the identity for Append: a drawing that paints nothing.
var Empty = Many{}

// Append combines two drawings so that a paints before b. An
// existing Many operand is absorbed rather than nested, mirroring
// AppendShape. Neither operand is mutated.
func Append(a, b Drawing) Drawing {
	ma, aOk := a.(Many)
	mb, bOk := b.(Many)
	switch {
	case aOk && bOk:
		return Many{Children: concatDrawings(ma.Children, mb.Children)}
	case aOk:
		return Many{Children: concatDrawings(ma.Children, []Drawing{b})}
	case bOk:
		return Many{Children: concatDrawings([]Drawing{a}, mb.Children)}
	default:
		return Many{Children: []Drawing{a, b}}
	}
}

func concatDrawings(a, b []Drawing) []Drawing {
	out := make([]Drawing, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
