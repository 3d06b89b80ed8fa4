package drawsvg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lmallet/okdraw/drawing"
)

// parsePathData compiles the polyline subset of SVG path data
// (M/m, L/l, H/h, V/v, Z/z) into a shape: one Path per subpath,
// wrapped in a Composite when there are several. Curve commands are
// unsupported input.
func parsePathData(data string) (drawing.Shape, error) {
	toks := tokenizePath(data)
	var (
		shapes []drawing.Shape
		pts    []drawing.Point
		cur    drawing.Point
		start  drawing.Point
		cmd    byte
	)
	flush := func(closed bool) {
		if len(pts) > 0 {
			shapes = append(shapes, drawing.Path{Closed: closed, Points: pts})
			pts = nil
		}
	}
	i := 0
	number := func() (float64, error) {
		if i >= len(toks) {
			return 0, fmt.Errorf("drawsvg: path data ends mid-command %q", cmd)
		}
		f, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, fmt.Errorf("drawsvg: bad number %q in path data", toks[i])
		}
		i++
		return f, nil
	}
	for i < len(toks) {
		t := toks[i]
		if len(t) == 1 && isPathLetter(t[0]) {
			cmd = t[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				flush(true)
				cur = start
				continue
			}
		} else if cmd == 0 {
			return nil, fmt.Errorf("drawsvg: path data must start with a command, got %q", t)
		}
		var x, y float64
		var err error
		switch cmd {
		case 'M', 'm':
			if x, err = number(); err != nil {
				return nil, err
			}
			if y, err = number(); err != nil {
				return nil, err
			}
			if cmd == 'm' {
				x, y = cur.X+x, cur.Y+y
			}
			flush(false)
			cur = drawing.Pt(x, y)
			start = cur
			pts = append(pts, cur)
			// extra pairs after a moveto are linetos
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			if x, err = number(); err != nil {
				return nil, err
			}
			if y, err = number(); err != nil {
				return nil, err
			}
			if cmd == 'l' {
				x, y = cur.X+x, cur.Y+y
			}
			cur = drawing.Pt(x, y)
			pts = append(pts, cur)
		case 'H', 'h':
			if x, err = number(); err != nil {
				return nil, err
			}
			if cmd == 'h' {
				x = cur.X + x
			}
			cur = drawing.Pt(x, cur.Y)
			pts = append(pts, cur)
		case 'V', 'v':
			if y, err = number(); err != nil {
				return nil, err
			}
			if cmd == 'v' {
				y = cur.Y + y
			}
			cur = drawing.Pt(cur.X, y)
			pts = append(pts, cur)
		default:
			return nil, fmt.Errorf("drawsvg: unsupported path command %q", string(cmd))
		}
	}
	flush(false)
	switch len(shapes) {
	case 0:
		return drawing.Path{}, nil
	case 1:
		return shapes[0], nil
	}
	return drawing.Composite{Shapes: shapes}, nil
}

func isPathLetter(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

// midNumber reports whether s is a partially scanned number, so that
// a following e/E belongs to it as an exponent.
func midNumber(s string) bool {
	if s == "" {
		return false
	}
	b := s[len(s)-1]
	return b >= '0' && b <= '9' || b == '.'
}

// tokenizePath splits path data into command letters and numbers.
// A sign starts a new number unless it follows an exponent marker.
func tokenizePath(data string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(data); i++ {
		ch := data[i]
		switch {
		case (ch == 'e' || ch == 'E') && midNumber(cur.String()):
			// exponent marker, not a command letter
			cur.WriteByte(ch)
		case isPathLetter(ch):
			flush()
			toks = append(toks, string(ch))
		case ch == ',' || ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		case ch == '-' || ch == '+':
			if s := cur.String(); s != "" && !strings.HasSuffix(s, "e") && !strings.HasSuffix(s, "E") {
				flush()
			}
			cur.WriteByte(ch)
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return toks
}
