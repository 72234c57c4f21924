package tetris

import "slices"

const (
	Rows = 20
	Cols = 10
)

// Field is the playfield. 20 rows x 10 columns.
// Columns are 0 > 9 left to right and represent the X axis.
// Rows are 0 > 19 top to bottom and represent the Y axis.
// An Empty cell is free. Otherwise it has the color it will be rendered with.
type Field [Rows][Cols]Color

func (f *Field) IsOutOfBounds(x, y int) bool {
	return x < 0 || x >= Cols || y < 0 || y >= Rows
}

// IsOccupied panics when x, y is out of bounds.
func (f *Field) IsOccupied(x, y int) bool {
	return f[y][x] != Empty
}

// HasCollision is true for cells outside the field and for taken cells.
func (f *Field) HasCollision(x, y int) bool {
	return f.IsOutOfBounds(x, y) || f.IsOccupied(x, y)
}

// Commit writes the piece color into the field. Cells outside the field
// are dropped: a rotation is never checked, so a piece may hang over a wall.
func (f *Field) Commit(p Piece) {
	for _, c := range p.Cells {
		if f.IsOutOfBounds(c.X, c.Y) {
			continue
		}
		f[c.Y][c.X] = p.Color
	}
}

// ClearCompletedRows removes every full row in a single pass and shifts the
// rows above it down. It returns the number of rows removed.
func (f *Field) ClearCompletedRows() int {
	var kept [Rows][Cols]Color
	n := Rows
	for y := Rows - 1; y >= 0; y-- {
		if !slices.Contains(f[y][:], Empty) {
			continue
		}
		n--
		kept[n] = f[y]
	}
	*f = kept
	return n
}
