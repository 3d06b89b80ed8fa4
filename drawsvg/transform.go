package drawsvg

import (
	"fmt"
	"math"
	"strings"

	"github.com/lmallet/okdraw/drawing"
)

// wrapper re-expresses one SVG transform function as a Drawing
// modifier around a subtree.
type wrapper func(drawing.Drawing) drawing.Drawing

// parseTransform reads an SVG transform list ("translate(...)
// rotate(...) ...") into a single wrapper applying the functions
// left-to-right, outermost first. Returns nil when the list is empty.
// matrix and skew forms cannot be expressed as Drawing modifiers and
// are unsupported input.
func parseTransform(v string) (wrapper, error) {
	var ws []wrapper
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		d := strings.SplitN(t, "(", 2)
		if len(d) != 2 {
			return nil, fmt.Errorf("drawsvg: malformed transform %q", t)
		}
		name := strings.ToLower(strings.TrimSpace(d[0]))
		args, err := parseNumberList(d[1])
		if err != nil {
			return nil, err
		}
		w, err := transformFunc(name, args)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	if len(ws) == 0 {
		return nil, nil
	}
	return func(d drawing.Drawing) drawing.Drawing {
		for i := len(ws) - 1; i >= 0; i-- {
			d = ws[i](d)
		}
		return d
	}, nil
}

func transformFunc(name string, args []float64) (wrapper, error) {
	switch name {
	case "translate":
		switch len(args) {
		case 1:
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Translate(args[0], 0, d)
			}, nil
		case 2:
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Translate(args[0], args[1], d)
			}, nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Scale(args[0], args[0], d)
			}, nil
		case 2:
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Scale(args[0], args[1], d)
			}, nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			angle := args[0] * math.Pi / 180
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Rotate(angle, d)
			}, nil
		case 3:
			angle, cx, cy := args[0]*math.Pi/180, args[1], args[2]
			return func(d drawing.Drawing) drawing.Drawing {
				return drawing.Translate(cx, cy,
					drawing.Rotate(angle,
						drawing.Translate(-cx, -cy, d)))
			}, nil
		}
	case "matrix", "skewx", "skewy":
		return nil, fmt.Errorf("drawsvg: unsupported transform %q", name)
	default:
		return nil, fmt.Errorf("drawsvg: unknown transform %q", name)
	}
	return nil, errParamMismatch
}
