package core

import "fmt"

// Color is a 24-bit RGB value as sent to the LED strip.
type Color struct {
	R, G, B uint8
}

// Colors used by the game.
var (
	ColorOff   = Color{0, 0, 0}
	ColorWhite = Color{255, 255, 255}
	ColorRed   = Color{255, 0, 0}
	ColorGreen = Color{0, 255, 0}
)

// Scale returns the color dimmed by brightness (0.0 to 1.0).
// Mirrors what the strip driver does before shifting bits out.
func (c Color) Scale(brightness float64) Color {
	b := ClampF(brightness, 0, 1)
	return Color{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
	}
}

// IsOff reports whether every channel is zero.
func (c Color) IsOff() bool {
	return c == ColorOff
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns a readable name for known colors and hex otherwise.
func (c Color) String() string {
	switch c {
	case ColorOff:
		return "off"
	case ColorWhite:
		return "white"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	default:
		return c.Hex()
	}
}
