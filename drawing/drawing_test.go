package drawing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmallet/okdraw/drawing"
)

// normalize collapses a single-child Many so monoid laws can be
// checked up to flattening.
func normalize(d drawing.Drawing) drawing.Drawing {
	if m, ok := d.(drawing.Many); ok && len(m.Children) == 1 {
		return normalize(m.Children[0])
	}
	return d
}

func fillLeaf(x float64) drawing.Drawing {
	return drawing.Filled(drawing.FillColor(red), drawing.Rect(x, 0, 1, 1))
}

func TestAppendFlattens(t *testing.T) {
	x, y, z := fillLeaf(0), fillLeaf(1), fillLeaf(2)

	xy := drawing.Append(x, y)
	assert.Equal(t, drawing.Many{Children: []drawing.Drawing{x, y}}, xy)

	assert.Equal(t,
		drawing.Many{Children: []drawing.Drawing{x, y, z}},
		drawing.Append(xy, z))

	assert.Equal(t,
		drawing.Many{Children: []drawing.Drawing{z, x, y}},
		drawing.Append(z, xy))
}

func TestAppendMonoidLaws(t *testing.T) {
	a, b, c := fillLeaf(0), fillLeaf(1), fillLeaf(2)

	assert.Equal(t, a, normalize(drawing.Append(drawing.Empty, a)))
	assert.Equal(t, a, normalize(drawing.Append(a, drawing.Empty)))

	left := drawing.Append(drawing.Append(a, b), c)
	right := drawing.Append(a, drawing.Append(b, c))
	assert.Equal(t, left, right)
}

func TestGroupCopiesChildren(t *testing.T) {
	children := []drawing.Drawing{fillLeaf(0), fillLeaf(1)}
	d := drawing.Group(children...)

	children[0] = fillLeaf(9)
	m := d.(drawing.Many)
	assert.Equal(t, fillLeaf(0), m.Children[0])
}

func TestModifierConstructors(t *testing.T) {
	child := fillLeaf(0)
	shape := drawing.NewCircle(0, 0, 2)
	sh := drawing.ShadowColor(red)

	assert.Equal(t, drawing.Scaled{SX: 2, SY: 3, Child: child}, drawing.Scale(2, 3, child))
	assert.Equal(t, drawing.Translated{TX: 4, TY: 5, Child: child}, drawing.Translate(4, 5, child))
	assert.Equal(t, drawing.Rotated{Angle: 0.5, Child: child}, drawing.Rotate(0.5, child))
	assert.Equal(t, drawing.Clipped{Shape: shape, Child: child}, drawing.Clip(shape, child))
	assert.Equal(t, drawing.Shadowed{Shadow: sh, Child: child}, drawing.WithShadow(sh, child))
}
