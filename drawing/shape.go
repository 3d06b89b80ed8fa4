package drawing

// This file defines the basic geometry: points and the
// closed set of shapes consumed by the renderer.

// Point is a position or vector in user space.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for a Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Shape describes a region that can be filled, outlined or used
// as a clip. It is a closed set: Path, Rectangle, Circle and
// Composite are the only implementations.
type Shape interface {
	isShape()
}

// Path is a polyline through Points. When Closed is true the last
// point connects back to the first on render.
type Path struct {
	Closed bool
	Points []Point
}

// Rectangle is an axis-aligned rectangle. Width and height are
// passed to the surface uninterpreted, negative values included.
type Rectangle struct {
	X, Y, W, H float64
}

// Circle is a full circle of radius R centered at (X, Y).
type Circle struct {
	X, Y, R float64
}

// Composite is an ordered list of shapes treated as a single shape:
// its members share one path context when filled, stroked or clipped.
type Composite struct {
	Shapes []Shape
}

func (Path) isShape()      {}
func (Rectangle) isShape() {}
func (Circle) isShape()    {}
func (Composite) isShape() {}

// NewPath builds an open polyline through the given points.
// The points are copied.
func NewPath(points ...Point) Path {
	return Path{Points: append([]Point(nil), points...)}
}

// ClosedPath builds a closed polyline through the given points.
// The points are copied.
func ClosedPath(points ...Point) Path {
	return Path{Closed: true, Points: append([]Point(nil), points...)}
}

// Rect builds a rectangle shape.
func Rect(x, y, w, h float64) Rectangle {
	return Rectangle{X: x, Y: y, W: w, H: h}
}

// NewCircle builds a circle shape.
func NewCircle(x, y, r float64) Circle {
	return Circle{X: x, Y: y, R: r}
}

// EmptyShape is the identity for AppendShape.
var EmptyShape = Composite{}

// AppendShape combines two shapes into one. An existing Composite
// operand is absorbed rather than nested, so the result is always a
// flat Composite. Neither operand is mutated.
func AppendShape(a, b Shape) Shape {
	ca, aOk := a.(Composite)
	cb, bOk := b.(Composite)
	switch {
	case aOk && bOk:
		return Composite{Shapes: concatShapes(ca.Shapes, cb.Shapes)}
	case aOk:
		return Composite{Shapes: concatShapes(ca.Shapes, []Shape{b})}
	case bOk:
		return Composite{Shapes: concatShapes([]Shape{a}, cb.Shapes)}
	default:
		return Composite{Shapes: []Shape{a, b}}
	}
}

func concatShapes(a, b []Shape) []Shape {
	out := make([]Shape, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
