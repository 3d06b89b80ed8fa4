package drawsvg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parseColor reads an SVG paint value: "none", #hex forms,
// rgb(r,g,b) or a named color. A nil color means no paint.
func parseColor(v string) (color.Color, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "" || v == "none":
		return nil, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseRGBColor(v[4 : len(v)-1])
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("drawsvg: unsupported color %q", v)
}

func parseHexColor(hex string) (color.Color, error) {
	var c color.NRGBA
	c.A = 0xff
	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("drawsvg: invalid hex color #%s", hex)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parseRGBColor(body string) (color.Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("drawsvg: invalid rgb() color %q", body)
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("drawsvg: invalid rgb() channel %q", p)
		}
		ch[i] = uint8(n)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}
