package tetris

import (
	"fmt"
	"math/rand/v2"
)

type Shape string

const (
	I Shape = "I"
	J Shape = "J"
	L Shape = "L"
	O Shape = "O"
	S Shape = "S"
	Z Shape = "Z"
	T Shape = "T"
)

// Shapes lists every piece kind in catalog order.
var Shapes = []Shape{I, J, L, O, S, Z, T}

// Color is the tag a cell is rendered with. Empty means the cell is free.
type Color string

const (
	Empty  Color = ""
	Cyan   Color = "cyan"
	Blue   Color = "blue"
	Orange Color = "orange"
	Yellow Color = "yellow"
	Green  Color = "green"
	Red    Color = "red"
	Purple Color = "purple"
	Ghost  Color = "ghost"
)

// Point is an absolute field coordinate. Y grows downwards.
type Point struct {
	X, Y int
}

// Pivot selects which of the piece cells the piece rotates around.
// The zero value doesn't rotate.
type Pivot struct {
	index   int
	rotates bool
}

func pivotAt(i int) Pivot { return Pivot{index: i, rotates: true} }

// Index returns the cell index of the pivot and whether the piece rotates at all.
func (p Pivot) Index() (int, bool) { return p.index, p.rotates }

// Piece is a value type: copying it gives an independent piece.
type Piece struct {
	Shape Shape
	Color Color
	Cells [4]Point
	Pivot Pivot
}

// spawnX is the column shapes are laid out around.
const spawnX = Cols/2 - 1

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . O P O O . . .

1	. . . . . . . . . .
*/
func newI() Piece {
	return Piece{
		Shape: I,
		Color: Cyan,
		Cells: [4]Point{{spawnX - 1, 0}, {spawnX, 0}, {spawnX + 1, 0}, {spawnX + 2, 0}},
		Pivot: pivotAt(1),
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . O . . . . . .

1	. . . O P O . . . .
*/
func newJ() Piece {
	return Piece{
		Shape: J,
		Color: Blue,
		Cells: [4]Point{{spawnX - 1, 0}, {spawnX - 1, 1}, {spawnX, 1}, {spawnX + 1, 1}},
		Pivot: pivotAt(2),
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . . . O . . . .

1	. . . O P O . . . .
*/
func newL() Piece {
	return Piece{
		Shape: L,
		Color: Orange,
		Cells: [4]Point{{spawnX + 1, 0}, {spawnX - 1, 1}, {spawnX, 1}, {spawnX + 1, 1}},
		Pivot: pivotAt(2),
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . . O O . . . .

1	. . . . O O . . . .
*/
func newO() Piece {
	return Piece{
		Shape: O,
		Color: Yellow,
		Cells: [4]Point{{spawnX, 0}, {spawnX + 1, 0}, {spawnX, 1}, {spawnX + 1, 1}},
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . . O O . . . .

1	. . . O P . . . . .
*/
func newS() Piece {
	return Piece{
		Shape: S,
		Color: Green,
		Cells: [4]Point{{spawnX, 0}, {spawnX + 1, 0}, {spawnX - 1, 1}, {spawnX, 1}},
		Pivot: pivotAt(3),
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . O O . . . . .

1	. . . . P O . . . .
*/
func newZ() Piece {
	return Piece{
		Shape: Z,
		Color: Red,
		Cells: [4]Point{{spawnX - 1, 0}, {spawnX, 0}, {spawnX, 1}, {spawnX + 1, 1}},
		Pivot: pivotAt(2),
	}
}

/*
.	Spawn Location

.	0 1 2 3 4 5 6 7 8 9

0	. . . . O . . . . .

1	. . . O P O . . . .
*/
func newT() Piece {
	return Piece{
		Shape: T,
		Color: Purple,
		Cells: [4]Point{{spawnX, 0}, {spawnX - 1, 1}, {spawnX, 1}, {spawnX + 1, 1}},
		Pivot: pivotAt(2),
	}
}

var shapeMap = map[Shape]func() Piece{
	I: newI,
	J: newJ,
	L: newL,
	O: newO,
	S: newS,
	Z: newZ,
	T: newT,
}

// NewPiece returns the piece for the shape at its spawn location.
// It panics on an unknown shape.
func NewPiece(s Shape) Piece {
	f, ok := shapeMap[s]
	if !ok {
		panic(fmt.Sprintf("tetris: unknown shape %q", s))
	}
	return f()
}

// Catalog draws pieces uniformly at random, repeats included.
type Catalog struct {
	rand *rand.Rand
}

// NewCatalog returns a catalog seeded with seed. A zero seed picks a random one.
func NewCatalog(seed uint64) *Catalog {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Catalog{rand: rand.New(rand.NewPCG(seed, seed))}
}

func (c *Catalog) Random() Piece {
	return NewPiece(Shapes[c.rand.IntN(len(Shapes))])
}
