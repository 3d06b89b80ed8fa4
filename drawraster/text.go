package drawraster

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// The backend ships a single embedded face (Go Regular); the font
// family is accepted but not resolved. Glyphs are positioned through
// the current transform; they are not themselves rotated or scaled.

var baseFont struct {
	once sync.Once
	fnt  *sfnt.Font
	err  error
}

func loadBaseFont() (*sfnt.Font, error) {
	baseFont.once.Do(func() {
		baseFont.fnt, baseFont.err = opentype.Parse(goregular.TTF)
	})
	return baseFont.fnt, baseFont.err
}

func newFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = 16
	}
	fnt, err := loadBaseFont()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// FillText draws a string with its baseline start at (x, y), painted
// in the current fill color and honoring the active clip mask.
func (s *Surface) FillText(text string, x, y float64) {
	if s.state.fill == nil || text == "" {
		return
	}
	face, err := newFace(s.state.font.Size)
	if err != nil {
		s.setErr(err)
		return
	}
	defer face.Close()

	paint := func(dst draw.Image, col color.Color, ox, oy float64) {
		dx, dy := s.state.matrix.Apply(x, y)
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(col),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6((dx + ox) * 64),
				Y: fixed.Int26_6((dy + oy) * 64),
			},
		}
		d.DrawString(text)
	}
	if s.state.shadowColor != nil {
		s.shadowComposite(func(dst draw.Image) {
			paint(dst, s.state.shadowColor, s.state.shadowDX, s.state.shadowDY)
		})
	}
	if s.state.clip == nil {
		paint(s.img, s.state.fill, 0, 0)
		return
	}
	s.composite(func(layer *image.RGBA) { paint(layer, s.state.fill, 0, 0) })
}
