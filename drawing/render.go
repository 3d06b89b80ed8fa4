package drawing

import (
	"image/color"
	"math"
)

// Surface is the stateful 2D target the renderer paints onto. It is
// an external collaborator: a canvas-like backend exposing path
// construction, painting, state setters and a save/restore stack.
// Implementations are not assumed safe for concurrent use; Render
// calls against one surface must be serialized by the caller.
//
// Painting operations (FillPath, StrokePath, Clip) consume the
// accumulated path.
type Surface interface {
	// Save pushes the current graphics state (transform, clip and
	// paint settings); Restore pops it. Every Save issued by the
	// renderer is matched by exactly one Restore.
	Save()
	Restore()

	// Path construction. Coordinates are in the current user space.
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rect(x, y, w, h float64)
	Arc(cx, cy, r, startAngle, endAngle float64)

	// Painting.
	FillPath()
	StrokePath()
	FillText(text string, x, y float64)

	// State setters.
	SetFillColor(c color.Color)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetFont(f Font)
	SetShadowColor(c color.Color)
	SetShadowBlur(radius float64)
	SetShadowOffset(x, y float64)

	// Transforms and clipping. Clip installs the current path as the
	// active clip region, intersected with any enclosing clip.
	Scale(sx, sy float64)
	Translate(tx, ty float64)
	Rotate(angle float64)
	Clip()
}

// Render paints a drawing onto a surface in one depth-first,
// left-to-right pass. Every node that touches surface state runs
// inside a save/restore bracket, so nothing set while rendering a
// subtree is visible to its siblings or to the parent afterwards.
// Render assumes a finite acyclic tree and performs no validation;
// any failure belongs to the surface.
func Render(s Surface, d Drawing) {
	switch n := d.(type) {
	case Fill:
		scoped(s, func() {
			if n.Style.Color != nil {
				s.SetFillColor(n.Style.Color)
			}
			tracePath(s, n.Shape)
			s.FillPath()
		})
	case Outline:
		scoped(s, func() {
			if n.Style.Color != nil {
				s.SetStrokeColor(n.Style.Color)
			}
			if n.Style.Width != nil {
				s.SetLineWidth(*n.Style.Width)
			}
			tracePath(s, n.Shape)
			s.StrokePath()
		})
	case Text:
		scoped(s, func() {
			s.SetFont(n.Font)
			if n.Style.Color != nil {
				s.SetFillColor(n.Style.Color)
			}
			s.FillText(n.Content, n.X, n.Y)
		})
	case Many:
		for _, c := range n.Children {
			Render(s, c)
		}
	case Scaled:
		scoped(s, func() {
			s.Scale(n.SX, n.SY)
			Render(s, n.Child)
		})
	case Translated:
		scoped(s, func() {
			s.Translate(n.TX, n.TY)
			Render(s, n.Child)
		})
	case Rotated:
		scoped(s, func() {
			s.Rotate(n.Angle)
			Render(s, n.Child)
		})
	case Clipped:
		scoped(s, func() {
			tracePath(s, n.Shape)
			s.Clip()
			Render(s, n.Child)
		})
	case Shadowed:
		scoped(s, func() {
			if n.Shadow.Color != nil {
				s.SetShadowColor(n.Shadow.Color)
			}
			if n.Shadow.Blur != nil {
				s.SetShadowBlur(*n.Shadow.Blur)
			}
			if n.Shadow.Offset != nil {
				s.SetShadowOffset(n.Shadow.Offset.X, n.Shadow.Offset.Y)
			}
			Render(s, n.Child)
		})
	}
}

// scoped brackets f between Save and Restore. The deferred Restore
// keeps the surface stack balanced even if the surface panics
// mid-subtree.
func scoped(s Surface, f func()) {
	s.Save()
	defer s.Restore()
	f()
}

// tracePath emits a shape into the surface's current path context.
// Composite members share that context, so a composite fills,
// strokes or clips as one combined path.
func tracePath(s Surface, shape Shape) {
	switch sh := shape.(type) {
	case Path:
		if len(sh.Points) == 0 {
			return
		}
		s.MoveTo(sh.Points[0].X, sh.Points[0].Y)
		for _, p := range sh.Points[1:] {
			s.LineTo(p.X, p.Y)
		}
		if sh.Closed {
			s.ClosePath()
		}
	case Rectangle:
		s.Rect(sh.X, sh.Y, sh.W, sh.H)
	case Circle:
		s.Arc(sh.X, sh.Y, sh.R, 0, 2*math.Pi)
	case Composite:
		for _, sub := range sh.Shapes {
			tracePath(s, sub)
		}
	}
}
