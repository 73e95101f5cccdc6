package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

// rankLabelWidth is the space left of the squares for the rank digits.
const rankLabelWidth = 2

// BoardView draws a board.Board and turns mouse and keys into its clicks.
type BoardView struct {
	*tview.Box
	board  *board.Board
	theme  Theme
	glyphs GlyphSet

	// top left corner of square a8 (or h1) at the last draw
	originX, originY int

	cursor               bool
	cursorRow, cursorCol int

	changed func()
}

func NewBoardView(b *board.Board, theme Theme, glyphs GlyphSet) *BoardView {
	return &BoardView{
		Box:       tview.NewBox(),
		board:     b,
		theme:     theme,
		glyphs:    glyphs,
		cursorRow: 6,
		cursorCol: 4,
	}
}

// SetChangedFunc sets a handler called after the view changed the board's
// state from a mouse or key event.
func (v *BoardView) SetChangedFunc(handler func()) *BoardView {
	v.changed = handler
	return v
}

// Size returns the columns and rows needed to draw the board and its labels.
func (v *BoardView) Size() (width, height int) {
	return rankLabelWidth + 8*v.glyphs.CellWidth, 8*v.glyphs.CellHeight + 1
}

// CellRect returns the screen rectangle of the square sq as last drawn.
func (v *BoardView) CellRect(sq chess.Square) (x, y, width, height int) {
	row, col := v.board.Orientation().Position(sq)
	return v.originX + col*v.glyphs.CellWidth, v.originY + row*v.glyphs.CellHeight,
		v.glyphs.CellWidth, v.glyphs.CellHeight
}

// cellAt maps a screen position to a grid row and column.
func (v *BoardView) cellAt(x, y int) (row, col int, ok bool) {
	dx, dy := x-v.originX, y-v.originY
	if dx < 0 || dy < 0 {
		return -1, -1, false
	}
	row, col = dy/v.glyphs.CellHeight, dx/v.glyphs.CellWidth
	if row >= 8 || col >= 8 {
		return -1, -1, false
	}
	return row, col, true
}

// Draw draws the squares, pieces and coordinates centred in the box.
func (v *BoardView) Draw(screen tcell.Screen) {
	v.Box.Draw(screen)
	x, y, width, height := v.GetInnerRect()
	w, h := v.Size()
	if width > w {
		x += (width - w) / 2
	}
	if height > h {
		y += (height - h) / 2
	}
	v.originX, v.originY = x+rankLabelWidth, y

	grid := v.board.Render()
	cw, ch := v.glyphs.CellWidth, v.glyphs.CellHeight
	rankStyle := tcell.StyleDefault.Foreground(v.theme.Rank)
	fileStyle := tcell.StyleDefault.Foreground(v.theme.File)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			cell := grid.At(row, col)
			style := v.theme.cellStyle(cell)
			for i, line := range v.glyphs.Lines(cell.Piece) {
				drawText(screen, v.originX+col*cw, v.originY+row*ch+i, style, line)
			}
			if v.cursor && row == v.cursorRow && col == v.cursorCol {
				mid := v.originY + row*ch + ch/2
				drawText(screen, v.originX+col*cw, mid, style, "[")
				drawText(screen, v.originX+col*cw+cw-1, mid, style, "]")
			}
		}
		rank := grid.At(row, 0).Square.Rank()
		drawText(screen, x, v.originY+row*ch+ch/2, rankStyle, rank.String())
	}
	for col := 0; col < 8; col++ {
		file := grid.At(0, col).Square.File()
		drawText(screen, v.originX+col*cw+(cw-1)/2, v.originY+8*ch, fileStyle, file.String())
	}
}

// MouseHandler maps clicks to board clicks and pointer moves to hover.
func (v *BoardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !v.InRect(x, y) {
			if action == tview.MouseMove {
				v.board.HoverAt(-1, -1)
			}
			return false, nil
		}
		row, col, ok := v.cellAt(x, y)
		switch action {
		case tview.MouseLeftClick:
			setFocus(v)
			if ok {
				v.cursor = false
				v.board.ClickAt(row, col)
				v.notify()
			}
			return true, nil
		case tview.MouseMove:
			if ok {
				v.board.HoverAt(row, col)
			} else {
				v.board.HoverAt(-1, -1)
			}
			return true, nil
		}
		return false, nil
	})
}

// InputHandler moves the keyboard cursor and clicks the square under it.
func (v *BoardView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			v.moveCursor(-1, 0)
		case tcell.KeyDown:
			v.moveCursor(1, 0)
		case tcell.KeyLeft:
			v.moveCursor(0, -1)
		case tcell.KeyRight:
			v.moveCursor(0, 1)
		case tcell.KeyEnter:
			v.clickCursor()
		case tcell.KeyEscape:
			v.board.Deselect()
			v.notify()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'k':
				v.moveCursor(-1, 0)
			case 'j':
				v.moveCursor(1, 0)
			case 'h':
				v.moveCursor(0, -1)
			case 'l':
				v.moveCursor(0, 1)
			case ' ':
				v.clickCursor()
			}
		}
	})
}

func (v *BoardView) moveCursor(dRow, dCol int) {
	if !v.cursor {
		v.cursor = true
	} else {
		row, col := v.cursorRow+dRow, v.cursorCol+dCol
		if row < 0 || row >= 8 || col < 0 || col >= 8 {
			return
		}
		v.cursorRow, v.cursorCol = row, col
	}
	v.board.HoverAt(v.cursorRow, v.cursorCol)
}

func (v *BoardView) clickCursor() {
	v.cursor = true
	v.board.ClickAt(v.cursorRow, v.cursorCol)
	v.notify()
}

func (v *BoardView) notify() {
	if v.changed != nil {
		v.changed()
	}
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runeWidth(r)
	}
}
