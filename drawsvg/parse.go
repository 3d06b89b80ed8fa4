// Package drawsvg reads a subset of SVG into a drawing.Drawing tree.
// It covers the elements the drawing model can express: rect, circle,
// line, polyline, polygon, groups with translate/scale/rotate
// transforms, and path data restricted to straight segments. SVG
// export is deliberately out of scope.
package drawsvg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/lmallet/okdraw/drawing"
)

// ErrorMode determines how Decode reacts to SVG input it does not
// handle: silently skip it, log a warning and skip it, or fail.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

var errParamMismatch = errors.New("drawsvg: parameter mismatch")

// style is the inherited presentation state: pushed on start tags,
// popped on end tags, so nested elements inherit their parents'
// paint attributes.
type style struct {
	fill        color.Color // nil paints nothing
	stroke      color.Color // nil paints nothing
	strokeWidth float64
}

// defaultStyle mirrors SVG defaults: black fill, no stroke, width 1.
var defaultStyle = style{fill: color.Black, strokeWidth: 1}

// group collects the drawings of one svg/g scope along with the
// transform wrapper of its start tag.
type group struct {
	children []drawing.Drawing
	wrap     wrapper
}

type cursor struct {
	mode   ErrorMode
	styles []style
	groups []*group
	// skip counts open elements inside a non-rendered container
	// (title, desc, defs); while positive, all content is dropped.
	skip int
}

// Decode reads an SVG document into a Drawing. mode controls how
// unsupported input is handled; in WarnErrorMode skipped input is
// reported through the package logger (see SetLogger).
func Decode(r io.Reader, mode ErrorMode) (drawing.Drawing, error) {
	c := &cursor{
		mode:   mode,
		styles: []style{defaultStyle},
		groups: []*group{{}},
	}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("drawsvg: invalid svg document")
				}
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			if err := c.startElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := c.endElement(se); err != nil {
				return nil, err
			}
		}
	}
	return c.groups[0].drawing(), nil
}

// DecodeString is Decode over an in-memory document.
func DecodeString(s string, mode ErrorMode) (drawing.Drawing, error) {
	return Decode(strings.NewReader(s), mode)
}

func (g *group) drawing() drawing.Drawing {
	var d drawing.Drawing
	switch len(g.children) {
	case 0:
		d = drawing.Empty
	case 1:
		d = g.children[0]
	default:
		d = drawing.Many{Children: g.children}
	}
	if g.wrap != nil {
		d = g.wrap(d)
	}
	return d
}

// report applies the error mode to a recoverable parse problem.
func (c *cursor) report(err error) error {
	if err == nil {
		return nil
	}
	switch c.mode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		logger().Warn("skipping unsupported svg input", "error", err)
	}
	return nil
}

func (c *cursor) top() style { return c.styles[len(c.styles)-1] }

func (c *cursor) startElement(se xml.StartElement) error {
	if c.skip > 0 {
		c.skip++
		return nil
	}
	switch se.Name.Local {
	case "title", "desc", "defs":
		c.skip = 1
		return nil
	}
	// Reads the recognized style attributes from the start element
	// and places the result on top of the style stack.
	if err := c.pushStyle(se.Attr); err != nil {
		return err
	}
	wrap, err := elementTransform(se.Attr)
	if err != nil {
		if err = c.report(err); err != nil {
			return err
		}
		wrap = nil
	}

	name := se.Name.Local
	switch name {
	case "svg", "g":
		c.groups = append(c.groups, &group{wrap: wrap})
		return nil
	}
	sf, ok := shapeFuncs[name]
	if !ok {
		return c.report(fmt.Errorf("drawsvg: cannot process svg element %q", name))
	}
	shape, err := sf(c, se.Attr)
	if err != nil {
		if err = c.report(err); err != nil {
			return err
		}
		return nil
	}
	if shape == nil {
		return nil
	}
	d := paintShape(c.top(), shape)
	if d == nil {
		return nil
	}
	if wrap != nil {
		d = wrap(d)
	}
	g := c.groups[len(c.groups)-1]
	g.children = append(g.children, d)
	return nil
}

func (c *cursor) endElement(se xml.EndElement) error {
	if c.skip > 0 {
		c.skip--
		return nil
	}
	if len(c.styles) > 1 {
		c.styles = c.styles[:len(c.styles)-1]
	}
	switch se.Name.Local {
	case "svg", "g":
		if len(c.groups) > 1 {
			g := c.groups[len(c.groups)-1]
			c.groups = c.groups[:len(c.groups)-1]
			parent := c.groups[len(c.groups)-1]
			parent.children = append(parent.children, g.drawing())
		}
	}
	return nil
}

// paintShape turns a styled shape into its paint leaves: fill before
// stroke, per SVG painting order. Returns nil when nothing paints.
func paintShape(st style, shape drawing.Shape) drawing.Drawing {
	var parts []drawing.Drawing
	if st.fill != nil {
		parts = append(parts, drawing.Filled(drawing.FillColor(st.fill), shape))
	}
	if st.stroke != nil {
		outline := drawing.OutlineColor(st.stroke).Append(drawing.LineWidth(st.strokeWidth))
		parts = append(parts, drawing.Outlined(outline, shape))
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	}
	return drawing.Many{Children: parts}
}

// pushStyle copies the top style and folds in the element's fill,
// stroke, stroke-width and style attributes.
func (c *cursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	cur := c.top()
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if err := readStyleAttr(&cur, k, v); err != nil {
			if err = c.report(err); err != nil {
				return err
			}
		}
	}
	c.styles = append(c.styles, cur)
	return nil
}

func readStyleAttr(cur *style, k, v string) error {
	switch k {
	case "fill":
		col, err := parseColor(v)
		if err != nil {
			return err
		}
		cur.fill = col
	case "stroke":
		col, err := parseColor(v)
		if err != nil {
			return err
		}
		cur.stroke = col
	case "stroke-width":
		w, err := parseFloat(v)
		if err != nil {
			return err
		}
		cur.strokeWidth = w
	}
	return nil
}

// elementTransform extracts the wrapper for a transform attribute,
// if any.
func elementTransform(attrs []xml.Attr) (wrapper, error) {
	for _, attr := range attrs {
		if attr.Name.Local == "transform" {
			return parseTransform(attr.Value)
		}
	}
	return nil, nil
}

type shapeFunc func(c *cursor, attrs []xml.Attr) (drawing.Shape, error)

var shapeFuncs = map[string]shapeFunc{
	"rect":     rectF,
	"circle":   circleF,
	"line":     lineF,
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

func rectF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value)
		case "y":
			y, err = parseFloat(attr.Value)
		case "width":
			w, err = parseFloat(attr.Value)
		case "height":
			h, err = parseFloat(attr.Value)
		case "rx":
			rx, err = parseFloat(attr.Value)
		case "ry":
			ry, err = parseFloat(attr.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if w == 0 || h == 0 {
		return nil, nil
	}
	if rx > 0 || ry > 0 {
		// rounded corners cannot be expressed; fall back to the
		// sharp rectangle
		if err := c.report(errors.New("drawsvg: rounded rect corners are not supported")); err != nil {
			return nil, err
		}
	}
	return drawing.Rect(x, y, w, h), nil
}

func circleF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	var cx, cy, r float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseFloat(attr.Value)
		case "cy":
			cy, err = parseFloat(attr.Value)
		case "r":
			r, err = parseFloat(attr.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	if r == 0 { // not drawn, but not an error
		return nil, nil
	}
	return drawing.NewCircle(cx, cy, r), nil
}

func lineF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	var x1, y1, x2, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseFloat(attr.Value)
		case "y1":
			y1, err = parseFloat(attr.Value)
		case "x2":
			x2, err = parseFloat(attr.Value)
		case "y2":
			y2, err = parseFloat(attr.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	return drawing.NewPath(drawing.Pt(x1, y1), drawing.Pt(x2, y2)), nil
}

func polylineF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	pts, err := pointsAttr(attrs)
	if err != nil || pts == nil {
		return nil, err
	}
	return drawing.Path{Points: pts}, nil
}

func polygonF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	pts, err := pointsAttr(attrs)
	if err != nil || pts == nil {
		return nil, err
	}
	return drawing.Path{Closed: true, Points: pts}, nil
}

func pointsAttr(attrs []xml.Attr) ([]drawing.Point, error) {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		nums, err := parseNumberList(attr.Value)
		if err != nil {
			return nil, err
		}
		if len(nums)%2 != 0 {
			return nil, errors.New("drawsvg: polygon has odd number of points")
		}
		pts := make([]drawing.Point, len(nums)/2)
		for i := range pts {
			pts[i] = drawing.Pt(nums[2*i], nums[2*i+1])
		}
		return pts, nil
	}
	return nil, nil
}

func pathF(c *cursor, attrs []xml.Attr) (drawing.Shape, error) {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			return parsePathData(attr.Value)
		}
	}
	return nil, nil
}

func parseFloat(v string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	return strconv.ParseFloat(v, 64)
}

// parseNumberList splits on comma and space delimiters.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("drawsvg: invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
