package glyphfont

import "image/color"

// ARGB converts a packed 0xAARRGGBB color, as used by many game UIs, to a
// non-premultiplied color. An alpha byte of zero yields a transparent color.
func ARGB(hex uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: uint8(hex >> 24),
	}
}

// RGB converts a packed 0xRRGGBB color to an opaque color.
func RGB(hex uint32) color.NRGBA {
	return ARGB(hex | 0xFF000000)
}

// toNRGBA converts any color to non-premultiplied RGBA. A nil color is white.
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	if n, ok := c.(color.NRGBA); ok {
		return n
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
