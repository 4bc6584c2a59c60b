package tui

import (
	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/keys"
	"github.com/jask/jaskcalc/internal/theme"
)

type buttonKind int

const (
	kindNumber buttonKind = iota
	kindFunction
	kindEquals
)

type button struct {
	label  string
	action keys.Action
	kind   buttonKind
	span   int
}

func digitButton(d rune) button {
	return button{label: string(d), action: keys.DigitAction(d), kind: kindNumber, span: 1}
}

func numberButton(label string, action keys.Action) button {
	return button{label: label, action: action, kind: kindNumber, span: 1}
}

// keypadColumns is the grid width every row spans.
const keypadColumns = 4

var keypadRows = [][]button{
	{digitButton('7'), digitButton('8'), digitButton('9'), {label: "DEL", action: keys.ActionDelete, kind: kindFunction, span: 1}},
	{digitButton('4'), digitButton('5'), digitButton('6'), numberButton("+", keys.ActionAdd)},
	{digitButton('1'), digitButton('2'), digitButton('3'), numberButton("-", keys.ActionSubtract)},
	{numberButton(".", keys.ActionDecimal), digitButton('0'), numberButton("/", keys.ActionDivide), numberButton("x", keys.ActionMultiply)},
	{{label: "RESET", action: keys.ActionReset, kind: kindFunction, span: 2}, {label: "=", action: keys.ActionEquals, kind: kindEquals, span: 2}},
}

// position addresses a button by row and index within the row.
type position struct {
	row, idx int
}

func (p position) button() button {
	return keypadRows[p.row][p.idx]
}

// gridColumn is the first grid column the button at p covers.
func (p position) gridColumn() int {
	col := 0
	for i := 0; i < p.idx; i++ {
		col += keypadRows[p.row][i].span
	}
	return col
}

// move returns the focus after a navigation action. Vertical moves land on
// the button covering the same grid column; edges do not wrap.
func (p position) move(action keys.Action) position {
	switch action {
	case keys.ActionMoveLeft:
		if p.idx > 0 {
			p.idx--
		}
	case keys.ActionMoveRight:
		if p.idx < len(keypadRows[p.row])-1 {
			p.idx++
		}
	case keys.ActionMoveUp:
		if p.row > 0 {
			return positionAt(p.row-1, p.gridColumn())
		}
	case keys.ActionMoveDown:
		if p.row < len(keypadRows)-1 {
			return positionAt(p.row+1, p.gridColumn())
		}
	}
	return p
}

func positionAt(row, gridCol int) position {
	col := 0
	for i, b := range keypadRows[row] {
		if gridCol < col+b.span {
			return position{row: row, idx: i}
		}
		col += b.span
	}
	return position{row: row, idx: len(keypadRows[row]) - 1}
}

// findButton locates the on-screen button bound to action.
func findButton(action keys.Action) (position, bool) {
	for r, row := range keypadRows {
		for i, b := range row {
			if b.action == action {
				return position{row: r, idx: i}, true
			}
		}
	}
	return position{}, false
}

// apply runs the engine transition behind action.
func apply(s calc.State, action keys.Action) calc.State {
	if d, ok := action.Digit(); ok {
		return s.InputDigit(d)
	}
	switch action {
	case keys.ActionDecimal:
		return s.InputDecimal()
	case keys.ActionAdd:
		return s.PerformOperation(calc.OpAdd)
	case keys.ActionSubtract:
		return s.PerformOperation(calc.OpSubtract)
	case keys.ActionMultiply:
		return s.PerformOperation(calc.OpMultiply)
	case keys.ActionDivide:
		return s.PerformOperation(calc.OpDivide)
	case keys.ActionDelete:
		return s.DeleteLast()
	case keys.ActionReset:
		return s.Clear()
	case keys.ActionEquals:
		return s.Calculate()
	}
	return s
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

const (
	headerHeight = 2
	screenHeight = 3
	sectionGap   = 1
	keypadPadX   = 2
	keypadPadY   = 1
	keyGap       = 2
	pillWidth    = 7

	// tallHeight is the terminal height from which keys get three-line
	// faces and a blank line between rows.
	tallHeight = 35
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout is the screen geometry shared by rendering and mouse hit-testing.
type layout struct {
	left       int
	width      int
	unit       int
	faceHeight int
	rowGap     int
}

func newLayout(termWidth, termHeight, maxWidth, minWidth int) layout {
	l := layout{width: maxWidth, faceHeight: 1}
	if termWidth > 0 {
		l.width = min(max(termWidth-2, minWidth), maxWidth)
		l.left = max(0, (termWidth-l.width)/2)
	}
	if termHeight >= tallHeight {
		l.faceHeight = 3
		l.rowGap = 1
	}
	inner := l.width - 2*keypadPadX
	l.unit = max(1, (inner-(keypadColumns-1)*keyGap)/keypadColumns)
	return l
}

func (l layout) screenTop() int {
	return headerHeight + sectionGap
}

func (l layout) keypadTop() int {
	return l.screenTop() + screenHeight + sectionGap
}

func (l layout) keypadHeight() int {
	rows := len(keypadRows)
	return 2*keypadPadY + rows*(l.faceHeight+1) + (rows-1)*l.rowGap
}

// rowWidth is the width covered by a full row of keys.
func (l layout) rowWidth() int {
	return keypadColumns*l.unit + (keypadColumns-1)*keyGap
}

func (l layout) buttonWidth(span int) int {
	return span*l.unit + (span-1)*keyGap
}

// buttonRect covers the key face and its shadow row.
func (l layout) buttonRect(p position) rect {
	col := p.gridColumn()
	return rect{
		x: l.left + keypadPadX + col*(l.unit+keyGap),
		y: l.keypadTop() + keypadPadY + p.row*(l.faceHeight+1+l.rowGap),
		w: l.buttonWidth(p.button().span),
		h: l.faceHeight + 1,
	}
}

func (l layout) hitButton(x, y int) (position, bool) {
	for r, row := range keypadRows {
		for i := range row {
			p := position{row: r, idx: i}
			if l.buttonRect(p).contains(x, y) {
				return p, true
			}
		}
	}
	return position{}, false
}

// themeDotRect is the cell of the selector dot for v on the header's
// second line.
func (l layout) themeDotRect(v theme.Variant) rect {
	pillLeft := l.left + l.width - pillWidth
	return rect{x: pillLeft + 1 + 2*(int(v)-1), y: 1, w: 1, h: 1}
}

// themeNumberRect is the selector number above the dot for v.
func (l layout) themeNumberRect(v theme.Variant) rect {
	r := l.themeDotRect(v)
	r.y = 0
	return r
}

func (l layout) hitTheme(x, y int) (theme.Variant, bool) {
	for _, v := range theme.Variants() {
		if l.themeDotRect(v).contains(x, y) || l.themeNumberRect(v).contains(x, y) {
			return v, true
		}
	}
	return 0, false
}
