package drawraster

import "math"

// Matrix is a 2D affine transform in SVG order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the do-nothing transform.
var Identity = Matrix{A: 1, D: 1}

// Mult composes two transforms; (m.Mult(n)).Apply(p) equals
// m.Apply(n.Apply(p)).
func (m Matrix) Mult(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate post-multiplies a translation.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mult(Matrix{A: 1, D: 1, E: x, F: y})
}

// Scale post-multiplies a scale.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mult(Matrix{A: sx, D: sy})
}

// Rotate post-multiplies a rotation around the origin, in radians.
func (m Matrix) Rotate(angle float64) Matrix {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return m.Mult(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}
