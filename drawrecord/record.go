// Package drawrecord provides a drawing.Surface that captures every
// call as a typed command instead of painting. Captures can be
// inspected, compared or replayed against another surface, which
// makes the package the natural test double for the renderer.
package drawrecord

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lmallet/okdraw/drawing"
)

// Op identifies a recorded surface operation.
type Op uint8

const (
	OpSave Op = iota
	OpRestore
	OpMoveTo
	OpLineTo
	OpClosePath
	OpRect
	OpArc
	OpFillPath
	OpStrokePath
	OpFillText
	OpSetFillColor
	OpSetStrokeColor
	OpSetLineWidth
	OpSetFont
	OpSetShadowColor
	OpSetShadowBlur
	OpSetShadowOffset
	OpScale
	OpTranslate
	OpRotate
	OpClip
)

var opNames = [...]string{
	OpSave:            "Save",
	OpRestore:         "Restore",
	OpMoveTo:          "MoveTo",
	OpLineTo:          "LineTo",
	OpClosePath:       "ClosePath",
	OpRect:            "Rect",
	OpArc:             "Arc",
	OpFillPath:        "FillPath",
	OpStrokePath:      "StrokePath",
	OpFillText:        "FillText",
	OpSetFillColor:    "SetFillColor",
	OpSetStrokeColor:  "SetStrokeColor",
	OpSetLineWidth:    "SetLineWidth",
	OpSetFont:         "SetFont",
	OpSetShadowColor:  "SetShadowColor",
	OpSetShadowBlur:   "SetShadowBlur",
	OpSetShadowOffset: "SetShadowOffset",
	OpScale:           "Scale",
	OpTranslate:       "Translate",
	OpRotate:          "Rotate",
	OpClip:            "Clip",
}

// String returns the operation name.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Call is one recorded surface operation with its arguments.
// Only the fields relevant to Op are set.
type Call struct {
	Op    Op
	Args  []float64
	Color color.Color
	Font  drawing.Font
	Text  string
}

// String renders the call in a compact, comparable form, for example
// "SetFillColor(rgba(255,0,0,1))" or "MoveTo(1,2)".
func (c Call) String() string {
	var args []string
	switch c.Op {
	case OpSetFillColor, OpSetStrokeColor, OpSetShadowColor:
		args = append(args, CSSColor(c.Color))
	case OpSetFont:
		args = append(args, c.Font.String())
	case OpFillText:
		args = append(args, strconv.Quote(c.Text))
	}
	for _, a := range c.Args {
		args = append(args, strconv.FormatFloat(a, 'g', -1, 64))
	}
	return c.Op.String() + "(" + strings.Join(args, ",") + ")"
}

// CSSColor serializes a color the way canvas surfaces spell it:
// "rgba(r,g,b,a)" with 8-bit channels and alpha in [0, 1].
func CSSColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B,
		strconv.FormatFloat(float64(n.A)/255, 'g', 3, 64))
}

// Surface records every drawing.Surface call issued to it.
// The zero value is ready to use. Not safe for concurrent use.
type Surface struct {
	calls []Call
	depth int
}

var _ drawing.Surface = (*Surface)(nil)

// New returns an empty recording surface.
func New() *Surface { return &Surface{} }

// Calls returns a copy of the recorded operations in issue order.
func (s *Surface) Calls() []Call {
	return append([]Call(nil), s.calls...)
}

// Strings returns the recorded operations rendered through Call.String.
func (s *Surface) Strings() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.String()
	}
	return out
}

// Depth reports the live Save/Restore nesting depth.
func (s *Surface) Depth() int { return s.depth }

// Reset discards the capture.
func (s *Surface) Reset() {
	s.calls = nil
	s.depth = 0
}

func (s *Surface) record(c Call) { s.calls = append(s.calls, c) }

func (s *Surface) Save() {
	s.depth++
	s.record(Call{Op: OpSave})
}

func (s *Surface) Restore() {
	s.depth--
	s.record(Call{Op: OpRestore})
}

func (s *Surface) MoveTo(x, y float64) {
	s.record(Call{Op: OpMoveTo, Args: []float64{x, y}})
}

func (s *Surface) LineTo(x, y float64) {
	s.record(Call{Op: OpLineTo, Args: []float64{x, y}})
}

func (s *Surface) ClosePath() { s.record(Call{Op: OpClosePath}) }

func (s *Surface) Rect(x, y, w, h float64) {
	s.record(Call{Op: OpRect, Args: []float64{x, y, w, h}})
}

func (s *Surface) Arc(cx, cy, r, startAngle, endAngle float64) {
	s.record(Call{Op: OpArc, Args: []float64{cx, cy, r, startAngle, endAngle}})
}

func (s *Surface) FillPath()   { s.record(Call{Op: OpFillPath}) }
func (s *Surface) StrokePath() { s.record(Call{Op: OpStrokePath}) }

func (s *Surface) FillText(text string, x, y float64) {
	s.record(Call{Op: OpFillText, Text: text, Args: []float64{x, y}})
}

func (s *Surface) SetFillColor(c color.Color) {
	s.record(Call{Op: OpSetFillColor, Color: c})
}

func (s *Surface) SetStrokeColor(c color.Color) {
	s.record(Call{Op: OpSetStrokeColor, Color: c})
}

func (s *Surface) SetLineWidth(w float64) {
	s.record(Call{Op: OpSetLineWidth, Args: []float64{w}})
}

func (s *Surface) SetFont(f drawing.Font) {
	s.record(Call{Op: OpSetFont, Font: f})
}

func (s *Surface) SetShadowColor(c color.Color) {
	s.record(Call{Op: OpSetShadowColor, Color: c})
}

func (s *Surface) SetShadowBlur(radius float64) {
	s.record(Call{Op: OpSetShadowBlur, Args: []float64{radius}})
}

func (s *Surface) SetShadowOffset(x, y float64) {
	s.record(Call{Op: OpSetShadowOffset, Args: []float64{x, y}})
}

func (s *Surface) Scale(sx, sy float64) {
	s.record(Call{Op: OpScale, Args: []float64{sx, sy}})
}

func (s *Surface) Translate(tx, ty float64) {
	s.record(Call{Op: OpTranslate, Args: []float64{tx, ty}})
}

func (s *Surface) Rotate(angle float64) {
	s.record(Call{Op: OpRotate, Args: []float64{angle}})
}

func (s *Surface) Clip() { s.record(Call{Op: OpClip}) }

// Replay re-issues the capture against dst in recorded order.
func (s *Surface) Replay(dst drawing.Surface) {
	for _, c := range s.calls {
		switch c.Op {
		case OpSave:
			dst.Save()
		case OpRestore:
			dst.Restore()
		case OpMoveTo:
			dst.MoveTo(c.Args[0], c.Args[1])
		case OpLineTo:
			dst.LineTo(c.Args[0], c.Args[1])
		case OpClosePath:
			dst.ClosePath()
		case OpRect:
			dst.Rect(c.Args[0], c.Args[1], c.Args[2], c.Args[3])
		case OpArc:
			dst.Arc(c.Args[0], c.Args[1], c.Args[2], c.Args[3], c.Args[4])
		case OpFillPath:
			dst.FillPath()
		case OpStrokePath:
			dst.StrokePath()
		case OpFillText:
			dst.FillText(c.Text, c.Args[0], c.Args[1])
		case OpSetFillColor:
			dst.SetFillColor(c.Color)
		case OpSetStrokeColor:
			dst.SetStrokeColor(c.Color)
		case OpSetLineWidth:
			dst.SetLineWidth(c.Args[0])
		case OpSetFont:
			dst.SetFont(c.Font)
		case OpSetShadowColor:
			dst.SetShadowColor(c.Color)
		case OpSetShadowBlur:
			dst.SetShadowBlur(c.Args[0])
		case OpSetShadowOffset:
			dst.SetShadowOffset(c.Args[0], c.Args[1])
		case OpScale:
			dst.Scale(c.Args[0], c.Args[1])
		case OpTranslate:
			dst.Translate(c.Args[0], c.Args[1])
		case OpRotate:
			dst.Rotate(c.Args[0])
		case OpClip:
			dst.Clip()
		}
	}
}
