package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0, 0, 0xff},
	"green":   {0, 0x80, 0, 0xff},
	"lime":    {0, 0xff, 0, 0xff},
	"blue":    {0, 0, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0, 0xff},
	"purple":  {0x80, 0, 0x80, 0xff},
	"orange":  {0xff, 0xa5, 0, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"navy":    {0, 0, 0x80, 0xff},
	"teal":    {0, 0x80, 0x80, 0xff},
	"maroon":  {0x80, 0, 0, 0xff},
	"olive":   {0x80, 0x80, 0, 0xff},
	"aqua":    {0, 0xff, 0xff, 0xff},
	"fuchsia": {0xff, 0, 0xff, 0xff},
}

// Color interprets p as a color value: a basic CSS color keyword,
// 'transparent', or a hex color of the form #rgb or #rrggbb.
func (p Property) Color() (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(p.String()))
	if s == "transparent" {
		return color.Transparent, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("not a color: %q", p)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("malformed hex color: %q", p)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed hex color: %q", p)
	}
	return color.RGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 0xff}, nil
}
