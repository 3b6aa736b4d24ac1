package core

// Color is a logical foreground color for a screen cell. The terminal
// layer decides how each one is drawn.
type Color uint8

// The palette: seven piece colors plus the colors used for chrome.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorGray
	ColorBrightWhite
	ColorBrightYellow

	numColors
)

var colorNames = [numColors]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan",
	"orange", "gray", "bright-white", "bright-yellow",
}

// String returns the color name.
func (c Color) String() string {
	if c >= numColors {
		return "unknown"
	}
	return colorNames[c]
}
