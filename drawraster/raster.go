// Package drawraster implements a raster drawing.Surface on top of
// rasterx, painting into an image.RGBA. It supports the full surface
// contract: transform stack, alpha-mask clipping, blurred drop
// shadows and text through an embedded font.
package drawraster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/lmallet/okdraw/drawing"
)

// maxDx is the maximum radians a cubic spline is allowed to span
// when approximating an arc.
const maxDx = math.Pi / 8

type verb uint8

const (
	verbMove verb = iota
	verbLine
	verbCube
	verbClose
)

// pathOp is one path segment, with control points already in device
// space: the transform in effect when a verb is emitted is applied
// immediately, the way canvas surfaces behave.
type pathOp struct {
	verb verb
	pts  [3]fixed.Point26_6
}

// state is the saved graphics state; Save pushes a copy, Restore
// pops it. Clip masks are never mutated once installed, so sharing
// the pointer across saved states is safe.
type state struct {
	matrix      Matrix
	fill        color.Color
	stroke      color.Color
	lineWidth   float64
	font        drawing.Font
	shadowColor color.Color
	shadowBlur  float64
	shadowDX    float64
	shadowDY    float64
	clip        *image.Alpha
}

// Surface renders drawing primitives into an RGBA image.
// Not safe for concurrent use.
type Surface struct {
	width, height int
	img           *image.RGBA
	state         state
	stack         []state
	path          []pathOp
	err           error
}

var _ drawing.Surface = (*Surface)(nil)

// New returns a surface painting into a fresh transparent image of
// the given size. Defaults: black fill and stroke, line width 2,
// 16px sans-serif font, no shadow, no clip.
func New(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		state: state{
			matrix:    Identity,
			fill:      color.Black,
			stroke:    color.Black,
			lineWidth: 2,
			font:      drawing.NewFont("sans-serif", 16),
		},
	}
}

// Image returns the render target.
func (s *Surface) Image() *image.RGBA { return s.img }

// Err returns the first backend failure, or nil.
func (s *Surface) Err() error { return s.err }

func (s *Surface) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Draw renders a drawing into a fresh image of the given size.
func Draw(d drawing.Drawing, width, height int) (*image.RGBA, error) {
	s := New(width, height)
	drawing.Render(s, d)
	return s.Image(), s.Err()
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.state = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *Surface) device(x, y float64) fixed.Point26_6 {
	dx, dy := s.state.matrix.Apply(x, y)
	return fixed.Point26_6{X: fixed.Int26_6(dx * 64), Y: fixed.Int26_6(dy * 64)}
}

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, pathOp{verb: verbMove, pts: [3]fixed.Point26_6{s.device(x, y)}})
}

func (s *Surface) LineTo(x, y float64) {
	s.path = append(s.path, pathOp{verb: verbLine, pts: [3]fixed.Point26_6{s.device(x, y)}})
}

func (s *Surface) ClosePath() {
	s.path = append(s.path, pathOp{verb: verbClose})
}

func (s *Surface) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	s.path = append(s.path, pathOp{verb: verbCube, pts: [3]fixed.Point26_6{
		s.device(x1, y1), s.device(x2, y2), s.device(x3, y3),
	}})
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

// Arc lowers a circular arc to cubic Bezier segments (Maisonobe
// approximation) in user space, so any affine transform applies to
// the control points. The arc starts with a MoveTo when the path is
// empty, a LineTo otherwise.
func (s *Surface) Arc(cx, cy, r, startAngle, endAngle float64) {
	delta := endAngle - startAngle
	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	px := cx + r*math.Cos(startAngle)
	py := cy + r*math.Sin(startAngle)
	if len(s.path) == 0 {
		s.MoveTo(px, py)
	} else {
		s.LineTo(px, py)
	}
	lx, ly := px, py
	ldx, ldy := -r*math.Sin(startAngle), r*math.Cos(startAngle)
	for i := 1; i <= segs; i++ {
		eta := startAngle + dEta*float64(i)
		nx := cx + r*math.Cos(eta)
		ny := cy + r*math.Sin(eta)
		dx, dy := -r*math.Sin(eta), r*math.Cos(eta)
		s.cubeTo(lx+alpha*ldx, ly+alpha*ldy, nx-alpha*dx, ny-alpha*dy, nx, ny)
		lx, ly, ldx, ldy = nx, ny, dx, dy
	}
}

func (s *Surface) FillPath()   { s.paint(false) }
func (s *Surface) StrokePath() { s.paint(true) }

func (s *Surface) SetFillColor(c color.Color)   { s.state.fill = c }
func (s *Surface) SetStrokeColor(c color.Color) { s.state.stroke = c }
func (s *Surface) SetLineWidth(w float64)       { s.state.lineWidth = w }
func (s *Surface) SetFont(f drawing.Font)       { s.state.font = f }

func (s *Surface) SetShadowColor(c color.Color) { s.state.shadowColor = c }
func (s *Surface) SetShadowBlur(radius float64) { s.state.shadowBlur = radius }
func (s *Surface) SetShadowOffset(x, y float64) {
	s.state.shadowDX, s.state.shadowDY = x, y
}

func (s *Surface) Scale(sx, sy float64) {
	s.state.matrix = s.state.matrix.Scale(sx, sy)
}

func (s *Surface) Translate(tx, ty float64) {
	s.state.matrix = s.state.matrix.Translate(tx, ty)
}

func (s *Surface) Rotate(angle float64) {
	s.state.matrix = s.state.matrix.Rotate(angle)
}

// Clip rasterizes the current path into an alpha mask, intersects it
// with any enclosing mask and installs it. The path is consumed.
func (s *Surface) Clip() {
	mask := image.NewAlpha(s.img.Bounds())
	scanner := rasterx.NewScannerGV(s.width, s.height, mask, mask.Bounds())
	scanner.SetColor(color.Opaque)
	filler := rasterx.NewFiller(s.width, s.height, scanner)
	s.feed(filler, 0, 0)
	filler.Draw()
	if prev := s.state.clip; prev != nil {
		for i, a := range mask.Pix {
			mask.Pix[i] = uint8(uint16(a) * uint16(prev.Pix[i]) / 255)
		}
	}
	s.state.clip = mask
	s.path = s.path[:0]
}

// adder is the subset of the rasterx path sinks the surface feeds.
type adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

func shift(p fixed.Point26_6, dx, dy float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: p.X + fixed.Int26_6(dx*64),
		Y: p.Y + fixed.Int26_6(dy*64),
	}
}

// feed streams the accumulated path into a rasterx sink, optionally
// offset in device space (used for shadows).
func (s *Surface) feed(p adder, dx, dy float64) {
	inPath := false
	for _, op := range s.path {
		switch op.verb {
		case verbMove:
			if inPath {
				p.Stop(false)
			}
			p.Start(shift(op.pts[0], dx, dy))
			inPath = true
		case verbLine:
			p.Line(shift(op.pts[0], dx, dy))
		case verbCube:
			p.CubeBezier(shift(op.pts[0], dx, dy), shift(op.pts[1], dx, dy), shift(op.pts[2], dx, dy))
		case verbClose:
			p.Stop(true)
			inPath = false
		}
	}
	if inPath {
		p.Stop(false)
	}
}

func (s *Surface) rasterize(dst draw.Image, col color.Color, stroke bool, dx, dy float64) {
	scanner := rasterx.NewScannerGV(s.width, s.height, dst, dst.Bounds())
	scanner.SetColor(col)
	if stroke {
		dasher := rasterx.NewDasher(s.width, s.height, scanner)
		dasher.SetStroke(
			fixed.Int26_6(s.state.lineWidth*64), fixed.Int26_6(4*64),
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel,
			nil, 0,
		)
		s.feed(dasher, dx, dy)
		dasher.Draw()
	} else {
		filler := rasterx.NewFiller(s.width, s.height, scanner)
		s.feed(filler, dx, dy)
		filler.Draw()
	}
}

// paint draws the accumulated path (shadow pass first when a shadow
// color is set) and consumes it.
func (s *Surface) paint(stroke bool) {
	if len(s.path) == 0 {
		return
	}
	defer func() { s.path = s.path[:0] }()

	col := s.state.fill
	if stroke {
		col = s.state.stroke
	}
	if col == nil {
		return
	}
	if s.state.shadowColor != nil {
		s.shadowPass(stroke)
	}
	if s.state.clip == nil {
		s.rasterize(s.img, col, stroke, 0, 0)
		return
	}
	s.composite(func(layer *image.RGBA) {
		s.rasterize(layer, col, stroke, 0, 0)
	})
}

// shadowPass paints the path silhouette in the shadow color at the
// shadow offset, blurs it and composites it beneath the paint.
func (s *Surface) shadowPass(stroke bool) {
	s.shadowComposite(func(dst draw.Image) {
		s.rasterize(dst, s.state.shadowColor, stroke, s.state.shadowDX, s.state.shadowDY)
	})
}

// shadowComposite renders a silhouette through the given painter,
// blurs it per the shadow state and merges it into the image under
// the active clip mask.
func (s *Surface) shadowComposite(paint func(dst draw.Image)) {
	bounds := s.img.Bounds()
	tmp := image.NewRGBA(bounds)
	paint(tmp)
	var src image.Image = tmp
	if s.state.shadowBlur > 0 {
		src = blur.Gaussian(tmp, s.state.shadowBlur)
	}
	if s.state.clip == nil {
		draw.Draw(s.img, bounds, src, bounds.Min, draw.Over)
		return
	}
	draw.DrawMask(s.img, bounds, src, bounds.Min, s.state.clip, bounds.Min, draw.Over)
}

// composite runs paint against an offscreen layer and merges it into
// the image through the active clip mask.
func (s *Surface) composite(paint func(layer *image.RGBA)) {
	bounds := s.img.Bounds()
	layer := image.NewRGBA(bounds)
	paint(layer)
	draw.DrawMask(s.img, bounds, layer, bounds.Min, s.state.clip, bounds.Min, draw.Over)
}
