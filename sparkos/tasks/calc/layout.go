package calc

// Default framebuffer size for the calculator window.
const (
	DefaultWidth  = 300
	DefaultHeight = 400
)

// Grid geometry: row 0 is the display, rows 1..5 hold the buttons.
const (
	gridRows = 6
	gridCols = 4
)

// cell is a span of grid cells.
type cell struct {
	row, col         int
	rowSpan, colSpan int
}

// buttonCells places every operator on the 6x4 grid.
var buttonCells = [numOperators]cell{
	Digit0:   {row: 5, col: 0, rowSpan: 1, colSpan: 2},
	Period:   {row: 5, col: 2, rowSpan: 1, colSpan: 1},
	Digit1:   {row: 4, col: 0, rowSpan: 1, colSpan: 1},
	Digit2:   {row: 4, col: 1, rowSpan: 1, colSpan: 1},
	Digit3:   {row: 4, col: 2, rowSpan: 1, colSpan: 1},
	Digit4:   {row: 3, col: 0, rowSpan: 1, colSpan: 1},
	Digit5:   {row: 3, col: 1, rowSpan: 1, colSpan: 1},
	Digit6:   {row: 3, col: 2, rowSpan: 1, colSpan: 1},
	Digit7:   {row: 2, col: 0, rowSpan: 1, colSpan: 1},
	Digit8:   {row: 2, col: 1, rowSpan: 1, colSpan: 1},
	Digit9:   {row: 2, col: 2, rowSpan: 1, colSpan: 1},
	Equals:   {row: 4, col: 3, rowSpan: 2, colSpan: 1},
	Add:      {row: 2, col: 3, rowSpan: 2, colSpan: 1},
	Subtract: {row: 1, col: 3, rowSpan: 1, colSpan: 1},
	Multiply: {row: 1, col: 2, rowSpan: 1, colSpan: 1},
	Divide:   {row: 1, col: 1, rowSpan: 1, colSpan: 1},
	Clear:    {row: 1, col: 0, rowSpan: 1, colSpan: 1},
}

// rect is a pixel rectangle.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout maps the grid onto a framebuffer of the given size.
type layout struct {
	width, height int
}

func (l layout) cellRect(c cell) rect {
	x0 := c.col * l.width / gridCols
	x1 := (c.col + c.colSpan) * l.width / gridCols
	y0 := c.row * l.height / gridRows
	y1 := (c.row + c.rowSpan) * l.height / gridRows
	return rect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

func (l layout) display() rect {
	return l.cellRect(cell{row: 0, col: 0, rowSpan: 1, colSpan: gridCols})
}

func (l layout) button(op Operator) rect {
	return l.cellRect(buttonCells[op])
}

// hit returns the operator whose button contains (x, y).
func (l layout) hit(x, y int) (Operator, bool) {
	for _, op := range Operators() {
		if l.button(op).contains(x, y) {
			return op, true
		}
	}
	return 0, false
}
