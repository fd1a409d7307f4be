// Package termview draws an editor session on a tcell screen. Every grid cell
// takes two terminal columns so cells look roughly square.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/editor"
)

// CellWidth is the number of terminal columns per grid cell.
const CellWidth = 2

// Help is the key legend printed under the status line.
const Help = "s start  e end  b build  x erase  r run  n step  a animate  g walls  c clear  q quit"

var (
	colorStart = tcell.NewRGBColor(0xe8, 0x00, 0x00)
	colorEnd   = tcell.NewRGBColor(0x00, 0xbc, 0x19)
	colorBlock = tcell.NewRGBColor(0x00, 0x1b, 0x52)
	colorPath  = tcell.NewRGBColor(0xff, 0xff, 0x00)
	colorOpen  = tcell.NewRGBColor(0x50, 0x90, 0xff)
	colorDim   = tcell.NewRGBColor(0x30, 0x30, 0x30)
	colorLight = tcell.NewRGBColor(0x1c, 0x1c, 0x1c)
)

// Glyphs used for each kind of cell.
const (
	GlyphBlock  = '█'
	GlyphStart  = 'S'
	GlyphEnd    = 'E'
	GlyphPath   = '•'
	GlyphOpen   = '+'
	GlyphClosed = '·'
)

// View renders to a screen region anchored at its origin.
type View struct {
	screen           tcell.Screen
	originX, originY int
}

// New creates a view drawing at the top-left corner of screen.
func New(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// CellAt maps a screen position back to a grid coordinate.
func (v *View) CellAt(sx, sy, size int) (gridpath.Coord, bool) {
	x := (sx - v.originX) / CellWidth
	y := sy - v.originY
	if sx < v.originX || sy < v.originY || x >= size || y >= size {
		return gridpath.Coord{}, false
	}
	return gridpath.Coord{X: x, Y: y}, true
}

// Draw repaints the whole session and shows it.
func (v *View) Draw(st editor.State) {
	v.screen.Clear()

	marks := make(map[gridpath.Coord]rune, len(st.Open)+len(st.Closed)+len(st.Path))
	for _, c := range st.Closed {
		marks[c] = GlyphClosed
	}
	for _, c := range st.Open {
		marks[c] = GlyphOpen
	}
	for _, c := range st.Path {
		marks[c] = GlyphPath
	}

	for y := 0; y < st.Size; y++ {
		for x := 0; x < st.Size; x++ {
			c := gridpath.Coord{X: x, Y: y}
			glyph, style := v.cellLook(st, c, marks)
			if st.Hovering && st.Hover == c {
				style = style.Reverse(true)
			}
			sx := v.originX + x*CellWidth
			sy := v.originY + y
			v.screen.SetContent(sx, sy, glyph, nil, style)
			v.screen.SetContent(sx+1, sy, secondHalf(glyph), nil, style)
		}
	}

	statusY := v.originY + st.Size + 1
	v.drawText(v.originX, statusY, tcell.StyleDefault.Bold(true), fmt.Sprintf("[%s] %s", st.Mode, st.Status))
	v.drawText(v.originX, statusY+1, tcell.StyleDefault.Foreground(tcell.ColorGray), Help)

	v.screen.Show()
}

func (v *View) cellLook(st editor.State, c gridpath.Coord, marks map[gridpath.Coord]rune) (rune, tcell.Style) {
	base := tcell.StyleDefault.Background(colorLight)
	if (c.X+c.Y)%2 == 0 {
		base = tcell.StyleDefault.Background(colorDim)
	}

	switch st.At(c) {
	case gridpath.Blocked:
		return GlyphBlock, tcell.StyleDefault.Foreground(colorBlock).Background(colorBlock)
	case gridpath.Start:
		return GlyphStart, base.Foreground(tcell.ColorWhite).Background(colorStart).Bold(true)
	case gridpath.End:
		return GlyphEnd, base.Foreground(tcell.ColorWhite).Background(colorEnd).Bold(true)
	}

	switch marks[c] {
	case GlyphPath:
		return GlyphPath, base.Foreground(colorPath).Bold(true)
	case GlyphOpen:
		return GlyphOpen, base.Foreground(colorOpen)
	case GlyphClosed:
		return GlyphClosed, base.Foreground(tcell.ColorGray)
	}
	return ' ', base
}

// secondHalf is the glyph for the right column of a cell.
func secondHalf(glyph rune) rune {
	if glyph == GlyphBlock || glyph == GlyphPath {
		return glyph
	}
	return ' '
}

func (v *View) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
