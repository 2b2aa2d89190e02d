package core

// Color represents a foreground color for a screen cell.
// The shell maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for world elements.
const (
	ColorDefault Color = iota
	ColorGreen         // Barriers
	ColorYellow        // Coin
	ColorBrightWhite   // Actor
	ColorCyan          // Countdown digits
	ColorBrightRed     // Game over banner
	ColorGray          // Ground and HUD chrome
)
