package highlight

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// DefaultColor is the palette default used when a highlight carries no
// explicit color.
const DefaultColor = "rgba(255, 235, 59, 0.6)"

// Palette is the picker's color set, yellow first.
var Palette = []string{
	DefaultColor,
	"rgba(76, 175, 80, 0.6)",
	"rgba(33, 150, 243, 0.6)",
	"rgba(156, 39, 176, 0.6)",
	"rgba(233, 30, 99, 0.6)",
}

var paletteNames = map[string]string{
	"yellow": Palette[0],
	"green":  Palette[1],
	"blue":   Palette[2],
	"purple": Palette[3],
	"pink":   Palette[4],
}

// ColorByName resolves a palette color by its picker name.
func ColorByName(name string) (string, bool) {
	c, ok := paletteNames[name]
	return c, ok
}

var rgbaRe = regexp.MustCompile(`rgba\((\d+),\s*(\d+),\s*(\d+),\s*([\d.]+)\)`)

// Darken raises the alpha channel of an rgba() color by 0.3, capped at 0.9.
// Colors in any other format are returned unchanged.
func Darken(color string) string {
	m := rgbaRe.FindStringSubmatch(color)
	if m == nil {
		return color
	}
	alpha, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return color
	}
	alpha = math.Round((alpha+0.3)*100) / 100
	if alpha > 0.9 {
		alpha = 0.9
	}
	return fmt.Sprintf("rgba(%s, %s, %s, %s)", m[1], m[2], m[3], strconv.FormatFloat(alpha, 'g', -1, 64))
}
