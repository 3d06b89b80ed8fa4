package drawrecord

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmallet/okdraw/drawing"
)

func TestCallString(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	for _, tc := range []struct {
		call Call
		want string
	}{
		{Call{Op: OpSave}, "Save()"},
		{Call{Op: OpMoveTo, Args: []float64{1.5, -2}}, "MoveTo(1.5,-2)"},
		{Call{Op: OpSetFillColor, Color: red}, "SetFillColor(rgba(255,0,0,1))"},
		{Call{Op: OpSetFont, Font: drawing.NewFont("serif", 9)}, "SetFont(9px serif)"},
		{Call{Op: OpFillText, Text: "hi", Args: []float64{0, 1}}, `FillText("hi",0,1)`},
		{Call{Op: OpClip}, "Clip()"},
	} {
		assert.Equal(t, tc.want, tc.call.String())
	}
}

func TestCSSColor(t *testing.T) {
	assert.Equal(t, "none", CSSColor(nil))
	assert.Equal(t, "rgba(255,0,0,1)", CSSColor(color.NRGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, "rgba(0,0,0,0)", CSSColor(color.NRGBA{}))
	assert.Equal(t, "rgba(0,0,0,1)", CSSColor(color.Black))
}

func TestSurfaceRecordsAndTracksDepth(t *testing.T) {
	s := New()
	s.Save()
	s.Translate(1, 2)
	assert.Equal(t, 1, s.Depth())
	s.MoveTo(0, 0)
	s.LineTo(3, 4)
	s.StrokePath()
	s.Restore()
	assert.Equal(t, 0, s.Depth())

	ops := make([]Op, len(s.Calls()))
	for i, c := range s.Calls() {
		ops[i] = c.Op
	}
	assert.Equal(t, []Op{OpSave, OpTranslate, OpMoveTo, OpLineTo, OpStrokePath, OpRestore}, ops)
}

func TestReplayReproducesCapture(t *testing.T) {
	src := New()
	drawing.Render(src, drawing.Translate(2, 2,
		drawing.Group(
			drawing.Filled(drawing.FillColor(color.NRGBA{G: 0xff, A: 0xff}), drawing.NewCircle(0, 0, 5)),
			drawing.NewText(drawing.NewFont("serif", 11), 1, 1, drawing.FillStyle{}, "ok"),
		)))

	dst := New()
	src.Replay(dst)
	assert.Equal(t, src.Calls(), dst.Calls())
	assert.Equal(t, 0, dst.Depth())
}

func TestCallsReturnsCopy(t *testing.T) {
	s := New()
	s.Save()
	s.Restore()

	got := s.Calls()
	got[0] = Call{Op: OpClip}

	assert.Equal(t, []Call{{Op: OpSave}, {Op: OpRestore}}, s.Calls())
}

func TestReset(t *testing.T) {
	s := New()
	s.Save()
	s.Reset()
	assert.Empty(t, s.Calls())
	assert.Equal(t, 0, s.Depth())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "SetShadowOffset", OpSetShadowOffset.String())
	assert.Equal(t, "Unknown", Op(200).String())
}
