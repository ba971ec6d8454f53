package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-beaker/effect"
)

// Palette
var (
	RgbBackground = mustHex("#1a1b26") // Tokyo Night background
	RgbGlass      = mustHex("#a9b1d6")
	RgbGraduation = mustHex("#565f89")
	RgbBubble     = mustHex("#f0f8ff")
	RgbSmoke      = mustHex("#9aa5ce")
	RgbSparkle    = mustHex("#ffd700")
	RgbBlastCore  = mustHex("#fff6a0")
	RgbBlastEdge  = mustHex("#ff4500")
	RgbRing       = mustHex("#ffa500")
	RgbStatusText = mustHex("#c0caf5")
	RgbSurface    = mustHex("#ffffff")
)

var surfaceRGB = toRGB(RgbSurface)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fromRGB converts a liquid color into blending space
func fromRGB(c effect.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// toRGB converts back to a 24-bit color, clamping out-of-gamut results
func toRGB(c colorful.Color) effect.RGB {
	r, g, b := c.Clamped().RGB255()
	return effect.RGB{R: r, G: g, B: b}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes src over dst in Lab space; t=0 returns dst, t=1 returns src
func Blend(dst, src effect.RGB, t float64) effect.RGB {
	if t <= 0 {
		return dst
	}
	if t >= 1 {
		return src
	}
	return toRGB(fromRGB(dst).BlendLab(fromRGB(src), t))
}
