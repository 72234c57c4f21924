package tetris

// IsPlayed reports whether the piece has come to rest: moving it one row
// down would collide.
func IsPlayed(p Piece, f *Field) bool {
	for _, c := range p.Cells {
		if f.HasCollision(c.X, c.Y+1) {
			return true
		}
	}
	return false
}

// RotatePiece turns the piece 90 degrees around its pivot. The result is never
// checked against the field or its walls.
func RotatePiece(p Piece) Piece {
	i, ok := p.Pivot.Index()
	if !ok {
		return p
	}
	pivot := p.Cells[i]
	for ic, c := range p.Cells {
		dx, dy := c.X-pivot.X, c.Y-pivot.Y
		p.Cells[ic] = Point{X: pivot.X - dy, Y: pivot.Y + dx}
	}
	return p
}

// translate moves every cell of the piece by x, y.
func translate(p Piece, x, y int) Piece {
	for i := range p.Cells {
		p.Cells[i].X += x
		p.Cells[i].Y += y
	}
	return p
}

func moveDelta(a Action) (x, y int) {
	// gravity always applies, horizontal input doesn't suppress it.
	y = 1
	switch a {
	case MoveLeft:
		x = -1
	case MoveRight:
		x = 1
	case SoftDrop:
		y = 2
	}
	return x, y
}

// AttemptMove moves the piece according to the action. When any target cell
// collides the input is dropped and the piece falls one row instead.
func AttemptMove(p Piece, f *Field, a Action) Piece {
	x, y := moveDelta(a)
	moved := translate(p, x, y)
	for _, c := range moved.Cells {
		if f.HasCollision(c.X, c.Y) {
			return translate(p, 0, 1)
		}
	}
	return moved
}

// ProjectGhost drops a copy of the piece until it rests and tags it as a ghost.
func ProjectGhost(p Piece, f *Field) Piece {
	for !IsPlayed(p, f) {
		p = translate(p, 0, 1)
	}
	p.Color = Ghost
	return p
}
