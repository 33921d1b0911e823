package core

import (
	"fmt"
	"strings"
)

// Color is the foreground of a screen cell. The platform picks the terminal
// code for each value.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorMagenta
	ColorGray
	ColorBrightWhite
	ColorOrange
)

var colorNames = [...]string{
	ColorDefault:     "default",
	ColorRed:         "red",
	ColorGreen:       "green",
	ColorYellow:      "yellow",
	ColorCyan:        "cyan",
	ColorMagenta:     "magenta",
	ColorGray:        "gray",
	ColorBrightWhite: "white",
	ColorOrange:      "orange",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor looks a colour up by name, ignoring case.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return Color(c), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", name)
}
