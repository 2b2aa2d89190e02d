package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Glyphs used for world elements.
const (
	glyphBarrier = '█'
	glyphActor   = '@'
	glyphCoin    = 'o'
	glyphGround  = '▀'
	glyphEdge    = '│'
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Viewport maps world units onto a rectangle of terminal cells.
type Viewport struct {
	OffsetX, OffsetY int // Top-left cell of the play area
	Cols, Rows       int // Play area size in cells
	WorldW           int
	WorldH           int
}

// NewViewport maps a world of worldW x worldH onto cols x rows cells
// whose top-left cell is (offsetX, offsetY).
func NewViewport(offsetX, offsetY, cols, rows, worldW, worldH int) Viewport {
	return Viewport{
		OffsetX: offsetX,
		OffsetY: offsetY,
		Cols:    max(cols, 1),
		Rows:    max(rows, 1),
		WorldW:  max(worldW, 1),
		WorldH:  max(worldH, 1),
	}
}

// FitViewport centres the largest play area with the world's aspect ratio
// inside a width x height terminal, leaving row 0 for the HUD and the last
// row for the ground. Terminal cells are treated as twice as tall as wide.
func FitViewport(width, height, worldW, worldH int) Viewport {
	rows := max(height-2, 1)
	cols := max(rows*2*worldW/max(worldH, 1), 1)
	if cols > width {
		cols = max(width, 1)
		rows = max(cols*worldH/(2*max(worldW, 1)), 1)
	}
	return NewViewport((width-cols)/2, 1, cols, rows, worldW, worldH)
}

// Cells converts a world rectangle to the covering cell rectangle.
// Any non-empty world rectangle covers at least one cell.
func (v Viewport) Cells(r core.Rect) core.Rect {
	x0 := floorDiv(r.X*v.Cols, v.WorldW)
	y0 := floorDiv(r.Y*v.Rows, v.WorldH)
	x1 := ceilDiv(r.Right()*v.Cols, v.WorldW)
	y1 := ceilDiv(r.Bottom()*v.Rows, v.WorldH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = core.Clamp(x0, 0, v.Cols), core.Clamp(x1, 0, v.Cols)
	y0, y1 = core.Clamp(y0, 0, v.Rows), core.Clamp(y1, 0, v.Rows)
	return core.NewRect(x0+v.OffsetX, y0+v.OffsetY, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// DrawWorld draws barriers, the coin, the actor and the ground line.
func DrawWorld(s *core.Screen, v Viewport, snap engine.Snapshot) {
	for i := range snap.Pairs {
		if top := v.Cells(snap.TopBarrier(i)); top.W > 0 && top.H > 0 && snap.Pairs[i].GapTop > 0 {
			s.DrawRect(top, glyphBarrier, core.ColorGreen)
		}
		if bottom := v.Cells(snap.BottomBarrier(i)); bottom.W > 0 && bottom.H > 0 && snap.Pairs[i].GapBottom() < snap.ScreenH {
			s.DrawRect(bottom, glyphBarrier, core.ColorGreen)
		}
	}

	if snap.Pickup.Active {
		if c := v.Cells(snap.Pickup.Rect()); c.W > 0 && c.H > 0 {
			s.DrawRect(c, glyphCoin, core.ColorYellow)
		}
	}

	color := core.ColorBrightWhite
	if snap.State == engine.StateGameOver {
		color = core.ColorBrightRed
	}
	if c := v.Cells(snap.Actor); c.W > 0 && c.H > 0 {
		s.DrawRect(c, glyphActor, color)
	}

	s.DrawHLine(v.OffsetX, v.OffsetY+v.Rows, v.Cols, glyphGround, core.ColorGray)
	for y := v.OffsetY; y < v.OffsetY+v.Rows; y++ {
		s.SetColored(v.OffsetX-1, y, glyphEdge, core.ColorGray)
		s.SetColored(v.OffsetX+v.Cols, y, glyphEdge, core.ColorGray)
	}
}

// DrawHUD draws the status line on row 0.
func DrawHUD(s *core.Screen, snap engine.Snapshot, best int) {
	left := fmt.Sprintf(" SCORE %d", snap.Score)
	right := fmt.Sprintf("BEST %d ", max(best, snap.Score))
	s.DrawTextColored(0, 0, left, core.ColorBrightWhite)
	s.DrawTextColored(s.Width()-len(right), 0, right, core.ColorGray)
}
