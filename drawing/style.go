package drawing

import (
	"fmt"
	"image/color"
)

// Styles are records of optional fields. The zero value of each style
// is its identity, and Append merges field-wise with the receiver
// winning on conflict; callers order the more specific style first.

// FillStyle carries an optional fill color. A nil Color leaves the
// surface default untouched.
type FillStyle struct {
	Color color.Color
}

// FillColor returns a style with only the fill color set.
func FillColor(c color.Color) FillStyle { return FillStyle{Color: c} }

// Append keeps the receiver's fields and falls back to other's.
func (s FillStyle) Append(other FillStyle) FillStyle {
	return FillStyle{Color: firstColor(s.Color, other.Color)}
}

// OutlineStyle carries an optional stroke color and line width,
// each independently optional.
type OutlineStyle struct {
	Color color.Color
	Width *float64
}

// OutlineColor returns a style with only the stroke color set.
func OutlineColor(c color.Color) OutlineStyle { return OutlineStyle{Color: c} }

// LineWidth returns a style with only the line width set.
func LineWidth(w float64) OutlineStyle { return OutlineStyle{Width: &w} }

// Append keeps the receiver's fields and falls back to other's.
func (s OutlineStyle) Append(other OutlineStyle) OutlineStyle {
	return OutlineStyle{
		Color: firstColor(s.Color, other.Color),
		Width: first(s.Width, other.Width),
	}
}

// Shadow describes a drop shadow: color, blur radius and offset,
// each independently optional.
type Shadow struct {
	Color  color.Color
	Blur   *float64
	Offset *Point
}

// ShadowColor returns a shadow with only the color set.
func ShadowColor(c color.Color) Shadow { return Shadow{Color: c} }

// ShadowBlur returns a shadow with only the blur radius set.
func ShadowBlur(radius float64) Shadow { return Shadow{Blur: &radius} }

// ShadowOffset returns a shadow with only the offset set.
func ShadowOffset(x, y float64) Shadow {
	return Shadow{Offset: &Point{X: x, Y: y}}
}

// Append keeps the receiver's fields and falls back to other's.
func (s Shadow) Append(other Shadow) Shadow {
	return Shadow{
		Color:  firstColor(s.Color, other.Color),
		Blur:   first(s.Blur, other.Blur),
		Offset: first(s.Offset, other.Offset),
	}
}

// Font names a family at a given size. The surface receives it
// pre-formatted through String.
type Font struct {
	Family string
	Size   float64
}

// NewFont builds a font value.
func NewFont(family string, size float64) Font {
	return Font{Family: family, Size: size}
}

// String formats the font the way canvas-like surfaces expect,
// for example "16px sans-serif".
func (f Font) String() string {
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

func first[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func firstColor(a, b color.Color) color.Color {
	if a != nil {
		return a
	}
	return b
}
