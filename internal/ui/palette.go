package ui

import "image/color"

// tierColors maps each visual tag to its fill colour.
var tierColors = map[string]color.RGBA{
	"cherry":     {R: 200, G: 30, B: 50, A: 255},
	"strawberry": {R: 240, G: 70, B: 80, A: 255},
	"grape":      {R: 140, G: 70, B: 200, A: 255},
	"dekopon":    {R: 250, G: 170, B: 40, A: 255},
	"persimmon":  {R: 235, G: 110, B: 30, A: 255},
	"apple":      {R: 220, G: 40, B: 40, A: 255},
	"pear":       {R: 220, G: 220, B: 110, A: 255},
	"peach":      {R: 250, G: 180, B: 170, A: 255},
	"pineapple":  {R: 240, G: 220, B: 60, A: 255},
	"melon":      {R: 150, G: 220, B: 110, A: 255},
	"watermelon": {R: 40, G: 150, B: 60, A: 255},
}

// fallbackColors is cycled for tags without an entry, e.g. custom catalogs.
var fallbackColors = []color.RGBA{
	{R: 90, G: 160, B: 230, A: 255},
	{R: 230, G: 130, B: 200, A: 255},
	{R: 130, G: 230, B: 200, A: 255},
}

func tierColor(tag string, tier int) color.RGBA {
	if c, ok := tierColors[tag]; ok {
		return c
	}
	if tier < 0 {
		tier = -tier
	}
	return fallbackColors[tier%len(fallbackColors)]
}

// withAlpha fades an opaque colour to alpha a. color.RGBA is premultiplied,
// so the channels scale with it.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
