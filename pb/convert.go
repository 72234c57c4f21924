package pb

import (
	"blockfall/tetris"
	"errors"
	"fmt"
	"time"
)

// NewCommand wraps an action.
func NewCommand(a tetris.Action) *Command {
	return &Command{Action: int32(a)}
}

// GetAction returns the action carried by the command. Unknown values map to None.
func (c *Command) GetAction() tetris.Action {
	a := tetris.Action(c.Action)
	if a < tetris.None || a > tetris.Rotate {
		return tetris.None
	}
	return a
}

func FromState(id string, s tetris.State) *Snapshot {
	snap := &Snapshot{
		SessionID:  id,
		Score:      int64(s.Score),
		Rows:       int64(s.Rows),
		FallRateMs: s.FallRate.Milliseconds(),
		GameOver:   s.Status == tetris.GameOver,
		Cells:      make([]string, 0, tetris.Rows*tetris.Cols),
		Piece:      fromPiece(s.Piece),
		Ghost:      fromPiece(s.Ghost),
	}
	for _, r := range s.Field {
		for _, c := range r {
			snap.Cells = append(snap.Cells, string(c))
		}
	}
	return snap
}

func fromPiece(p tetris.Piece) *Piece {
	pp := &Piece{
		Shape: string(p.Shape),
		Color: string(p.Color),
		Cells: make([]int32, 0, 2*len(p.Cells)),
	}
	for _, c := range p.Cells {
		pp.Cells = append(pp.Cells, int32(c.X), int32(c.Y)) //nolint:gosec
	}
	return pp
}

// State rebuilds the state a snapshot was taken from, enough to render it.
// Pieces come back without a pivot.
func (s *Snapshot) State() (tetris.State, error) {
	var st tetris.State
	if len(s.Cells) != tetris.Rows*tetris.Cols {
		return st, fmt.Errorf("snapshot has %d cells, want %d", len(s.Cells), tetris.Rows*tetris.Cols)
	}
	for i, c := range s.Cells {
		st.Field[i/tetris.Cols][i%tetris.Cols] = tetris.Color(c)
	}
	var err error
	if st.Piece, err = s.Piece.piece(); err != nil {
		return st, fmt.Errorf("piece: %w", err)
	}
	if st.Ghost, err = s.Ghost.piece(); err != nil {
		return st, fmt.Errorf("ghost: %w", err)
	}
	st.Score = int(s.Score)
	st.Rows = int(s.Rows)
	st.FallRate = time.Duration(s.FallRateMs) * time.Millisecond
	if s.GameOver {
		st.Status = tetris.GameOver
	}
	return st, nil
}

func (p *Piece) piece() (tetris.Piece, error) {
	var tp tetris.Piece
	if p == nil {
		return tp, errors.New("missing")
	}
	if len(p.Cells) != 2*len(tp.Cells) {
		return tp, fmt.Errorf("has %d coordinates, want %d", len(p.Cells), 2*len(tp.Cells))
	}
	tp.Shape = tetris.Shape(p.Shape)
	tp.Color = tetris.Color(p.Color)
	for i := range tp.Cells {
		tp.Cells[i] = tetris.Point{X: int(p.Cells[2*i]), Y: int(p.Cells[2*i+1])}
	}
	return tp, nil
}
