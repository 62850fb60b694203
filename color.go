package terminal

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Color is a logical color request. Negative values mean the terminal's own
// default color. Values 0..255 address the standard palette directly. RGB
// colors are packed with a flag bit and built with ColorRGB. A Color is
// never stored long-term; it is resolved to a palette value at the moment
// it is used.
type Color int32

// ColorDefault requests the terminal's native default color.
const ColorDefault Color = -1

const rgbFlag Color = 1 << 24

// Basic palette colors, matching standard palette indices 0..15.
const (
	Black Color = iota
	DarkRed
	DarkGreen
	DarkYellow
	DarkBlue
	DarkMagenta
	DarkCyan
	Grey
	DarkGrey
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// ColorRGB builds a 24-bit color request.
func ColorRGB(r, g, b uint8) Color {
	return rgbFlag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsRGB reports whether c carries an explicit 24-bit value.
func (c Color) IsRGB() bool {
	return c >= 0 && c&rgbFlag != 0
}

// RGB returns the channel values of an RGB color. For palette colors it
// returns the palette entry's channels.
func (c Color) RGB() (r, g, b uint8) {
	if c.IsRGB() {
		return uint8(c >> 16), uint8(c >> 8), uint8(c)
	}
	if c >= 0 && c < 256 {
		return paletteRGB(int(c))
	}
	return 0, 0, 0
}

// The 16 base entries of the standard 256-color palette.
var basePalette = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// paletteRGB returns the RGB channels of palette entry i: the 16 base
// colors, then the 6x6x6 cube, then the 24-step grayscale ramp.
func paletteRGB(i int) (uint8, uint8, uint8) {
	switch {
	case i < 16:
		e := basePalette[i]
		return e[0], e[1], e[2]
	case i < 232:
		i -= 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		return levels[i/36], levels[i/6%6], levels[i%6]
	default:
		v := uint8(8 + 10*(i-232))
		return v, v, v
	}
}

var palette [256]colorful.Color

func init() {
	for i := range palette {
		r, g, b := paletteRGB(i)
		palette[i] = colorful.Color{
			R: float64(r) / 255,
			G: float64(g) / 255,
			B: float64(b) / 255,
		}
	}
}

// reduce resolves a logical color to the nearest value representable with
// depth palette entries. The result is deterministic: the same color always
// reduces to the same palette value for a fixed depth, with distance ties
// broken toward the lower index. Negative colors pass through as the
// default-color marker.
func reduce(c Color, depth int) int16 {
	if c < 0 {
		return -1
	}
	if depth < 8 {
		depth = 8
	}
	if depth > 256 {
		depth = 256
	}
	if !c.IsRGB() {
		idx := int(c) & 0xff
		if idx < depth {
			return int16(idx)
		}
		return nearest(palette[idx], depth)
	}
	r, g, b := c.RGB()
	return nearest(colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, depth)
}

// nearest finds the palette entry below depth with the smallest CIE-Lab
// distance to the wanted color.
func nearest(want colorful.Color, depth int) int16 {
	best := 0
	bestDist := want.DistanceLab(palette[0])
	for i := 1; i < depth; i++ {
		if d := want.DistanceLab(palette[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return int16(best)
}
