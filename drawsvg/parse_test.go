package drawsvg

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/lmallet/okdraw/drawing"
)

func decode(t *testing.T, doc string) drawing.Drawing {
	t.Helper()
	d, err := DecodeString(doc, StrictErrorMode)
	require.NoError(t, err)
	return d
}

func TestDecodeRect(t *testing.T) {
	d := decode(t, `<svg><rect x="1" y="2" width="3" height="4" fill="#f00"/></svg>`)
	want := drawing.Filled(
		drawing.FillColor(color.NRGBA{R: 0xff, A: 0xff}),
		drawing.Rect(1, 2, 3, 4))
	assert.Equal(t, want, d)
}

func TestDecodeDefaultFillIsBlack(t *testing.T) {
	d := decode(t, `<svg><circle cx="5" cy="5" r="2"/></svg>`)
	want := drawing.Filled(drawing.FillColor(color.Black), drawing.NewCircle(5, 5, 2))
	assert.Equal(t, want, d)
}

func TestDecodeStrokeOnly(t *testing.T) {
	d := decode(t, `<svg><rect width="4" height="4" fill="none" stroke="blue" stroke-width="3"/></svg>`)
	style := drawing.OutlineColor(colornames.Blue).Append(drawing.LineWidth(3))
	assert.Equal(t, drawing.Outlined(style, drawing.Rect(0, 0, 4, 4)), d)
}

func TestDecodeFillAndStroke(t *testing.T) {
	d := decode(t, `<svg><circle r="2" fill="red" stroke="blue"/></svg>`)
	circle := drawing.NewCircle(0, 0, 2)
	want := drawing.Many{Children: []drawing.Drawing{
		drawing.Filled(drawing.FillColor(colornames.Red), circle),
		drawing.Outlined(drawing.OutlineColor(colornames.Blue).Append(drawing.LineWidth(1)), circle),
	}}
	assert.Equal(t, want, d)
}

func TestDecodeStyleAttr(t *testing.T) {
	d := decode(t, `<svg><rect width="1" height="1" style="fill:#00ff00;stroke:none"/></svg>`)
	want := drawing.Filled(
		drawing.FillColor(color.NRGBA{G: 0xff, A: 0xff}),
		drawing.Rect(0, 0, 1, 1))
	assert.Equal(t, want, d)
}

func TestDecodeStyleInheritance(t *testing.T) {
	d := decode(t, `<svg>
		<g fill="red"><rect width="1" height="1"/></g>
		<rect x="2" width="1" height="1"/>
	</svg>`)
	want := drawing.Many{Children: []drawing.Drawing{
		drawing.Filled(drawing.FillColor(colornames.Red), drawing.Rect(0, 0, 1, 1)),
		drawing.Filled(drawing.FillColor(color.Black), drawing.Rect(2, 0, 1, 1)),
	}}
	assert.Equal(t, want, d)
}

func TestDecodeGroupTransform(t *testing.T) {
	d := decode(t, `<svg><g transform="translate(3 4)"><rect width="1" height="1" fill="red"/></g></svg>`)
	want := drawing.Translate(3, 4,
		drawing.Filled(drawing.FillColor(colornames.Red), drawing.Rect(0, 0, 1, 1)))
	assert.Equal(t, want, d)
}

func TestDecodeRotateIsRadians(t *testing.T) {
	d := decode(t, `<svg><g transform="rotate(90)"><circle r="1"/></g></svg>`)
	rot, ok := d.(drawing.Rotated)
	require.True(t, ok)
	assert.Equal(t, 90*math.Pi/180, rot.Angle)
}

func TestDecodeLineAndPolygon(t *testing.T) {
	d := decode(t, `<svg>
		<line x1="0" y1="0" x2="4" y2="4" stroke="black" fill="none"/>
		<polygon points="0,0 4,0 2,3" fill="red"/>
	</svg>`)
	want := drawing.Many{Children: []drawing.Drawing{
		drawing.Outlined(
			drawing.OutlineColor(colornames.Black).Append(drawing.LineWidth(1)),
			drawing.NewPath(drawing.Pt(0, 0), drawing.Pt(4, 4))),
		drawing.Filled(
			drawing.FillColor(colornames.Red),
			drawing.ClosedPath(drawing.Pt(0, 0), drawing.Pt(4, 0), drawing.Pt(2, 3))),
	}}
	assert.Equal(t, want, d)
}

func TestDecodeSkipsInvisibleShapes(t *testing.T) {
	d := decode(t, `<svg>
		<rect width="0" height="5"/>
		<circle r="0"/>
		<title>nothing to see</title>
	</svg>`)
	assert.Equal(t, drawing.Drawing(drawing.Empty), d)
}

func TestDecodeDropsDefsSubtree(t *testing.T) {
	d := decode(t, `<svg>
		<defs>
			<rect width="4" height="4" fill="red"/>
			<g fill="blue"><circle r="2"/></g>
		</defs>
		<rect x="1" width="1" height="1" fill="red"/>
	</svg>`)
	// nothing under defs renders; siblings after it still do
	want := drawing.Filled(drawing.FillColor(colornames.Red), drawing.Rect(1, 0, 1, 1))
	assert.Equal(t, drawing.Drawing(want), d)
}

func TestDecodeErrorModes(t *testing.T) {
	doc := `<svg><ellipse cx="1" cy="1" rx="2" ry="3" fill="red"/></svg>`

	_, err := DecodeString(doc, StrictErrorMode)
	assert.ErrorContains(t, err, "ellipse")

	d, err := DecodeString(doc, IgnoreErrorMode)
	require.NoError(t, err)
	assert.Equal(t, drawing.Drawing(drawing.Empty), d)
}

func TestDecodeInvalidDocument(t *testing.T) {
	_, err := DecodeString("", StrictErrorMode)
	assert.Error(t, err)

	_, err = DecodeString("not svg at all", IgnoreErrorMode)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.Color
	}{
		{"none", nil},
		{"", nil},
		{"#f00", color.NRGBA{R: 0xff, A: 0xff}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}},
		{"#33669980", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0x80}},
		{"rgb(10, 20, 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}},
		{"PapayaWhip", colornames.Papayawhip},
	} {
		got, err := parseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"#12345", "rgb(1,2)", "rgb(300,0,0)", "no-such-color"} {
		_, err := parseColor(in)
		assert.Error(t, err, in)
	}
}

func TestParsePathData(t *testing.T) {
	s, err := parsePathData("M 0 0 L 10 0 10 10 Z")
	require.NoError(t, err)
	want := drawing.ClosedPath(drawing.Pt(0, 0), drawing.Pt(10, 0), drawing.Pt(10, 10))
	assert.Equal(t, drawing.Shape(want), s)
}

func TestParsePathDataRelative(t *testing.T) {
	s, err := parsePathData("m 1 1 l 2 0 v 3 h -2 z")
	require.NoError(t, err)
	want := drawing.ClosedPath(
		drawing.Pt(1, 1), drawing.Pt(3, 1), drawing.Pt(3, 4), drawing.Pt(1, 4))
	assert.Equal(t, drawing.Shape(want), s)
}

func TestParsePathDataExponents(t *testing.T) {
	s, err := parsePathData("M0 0 L1e-3 2E2")
	require.NoError(t, err)
	want := drawing.NewPath(drawing.Pt(0, 0), drawing.Pt(0.001, 200))
	assert.Equal(t, drawing.Shape(want), s)
}

func TestParsePathDataSubpaths(t *testing.T) {
	s, err := parsePathData("M0 0 L1 0 M5 5 L6 5")
	require.NoError(t, err)
	want := drawing.Composite{Shapes: []drawing.Shape{
		drawing.NewPath(drawing.Pt(0, 0), drawing.Pt(1, 0)),
		drawing.NewPath(drawing.Pt(5, 5), drawing.Pt(6, 5)),
	}}
	assert.Equal(t, drawing.Shape(want), s)
}

func TestParsePathDataErrors(t *testing.T) {
	for _, in := range []string{
		"10 10",        // no leading command
		"M 0",          // ends mid-command
		"M 0 0 C 1 1",  // curves are out of scope
		"M 0 0 L oops", // not a number
	} {
		_, err := parsePathData(in)
		assert.Error(t, err, in)
	}

	s, err := parsePathData("")
	require.NoError(t, err)
	assert.Equal(t, drawing.Shape(drawing.Path{}), s)
}

func TestTokenizePath(t *testing.T) {
	assert.Equal(t, []string{"M", "1", "-2"}, tokenizePath("M1-2"))
	assert.Equal(t, []string{"L", "1e-3", "2"}, tokenizePath("L1e-3,2"))
	assert.Equal(t, []string{"M", "1.5E2", "-2"}, tokenizePath("M1.5E2-2"))
	assert.Equal(t, []string{"e", "1"}, tokenizePath("e1"))
	assert.Equal(t, []string{"M", "0", "0", "Z"}, tokenizePath(" M 0,0 Z "))
}

func TestParseTransformComposition(t *testing.T) {
	w, err := parseTransform("translate(2,3) scale(2)")
	require.NoError(t, err)
	require.NotNil(t, w)
	// leftmost function is outermost
	assert.Equal(t,
		drawing.Translate(2, 3, drawing.Scale(2, 2, drawing.Empty)),
		w(drawing.Empty))
}

func TestParseTransformRotateAboutCenter(t *testing.T) {
	w, err := parseTransform("rotate(180, 5, 5)")
	require.NoError(t, err)
	angle := 180 * math.Pi / 180
	assert.Equal(t,
		drawing.Translate(5, 5, drawing.Rotate(angle, drawing.Translate(-5, -5, drawing.Empty))),
		w(drawing.Empty))
}

func TestParseTransformErrors(t *testing.T) {
	_, err := parseTransform("matrix(1 0 0 1 0 0)")
	assert.Error(t, err)

	_, err = parseTransform("translate(1,2,3)")
	assert.ErrorIs(t, err, errParamMismatch)

	_, err = parseTransform("spin(45)")
	assert.Error(t, err)

	w, err := parseTransform("  ")
	require.NoError(t, err)
	assert.Nil(t, w)
}
