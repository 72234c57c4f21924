// Package tetris contains the logic of the game.
//
// The engine is a pure state transition: Tick takes the previous State, the
// pending Action and the current time and returns the next State. Game runs
// it on a fixed cadence.
package tetris

import "time"

type Status int

const (
	Playing Status = iota
	GameOver
)

func (s Status) String() string {
	if s == GameOver {
		return "Game Over"
	}
	return "Tetris"
}

// State is everything a game is made of. It holds no references, so a
// copy is a snapshot that is safe to hand to another goroutine.
type State struct {
	Field    Field
	Piece    Piece
	Ghost    Piece
	Score    int
	Rows     int
	FallRate time.Duration
	LastTick time.Time
	Status   Status

	// Cleared is the number of rows the last tick removed.
	Cleared int
}

type Config struct {
	// TickInterval is how often the scheduler runs the engine.
	TickInterval time.Duration
	// FallRate is the initial time between two drops.
	FallRate time.Duration
	// FallStep is taken off the fall rate for every cleared row.
	FallStep time.Duration
	// Seed for the piece catalog. 0 picks a random one.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		TickInterval: 50 * time.Millisecond,
		FallRate:     500 * time.Millisecond,
		FallStep:     25 * time.Millisecond,
	}
}

type Engine struct {
	cfg     Config
	catalog *Catalog
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, catalog: NewCatalog(cfg.Seed)}
}

// New returns a fresh game with an empty field.
func (e *Engine) New(now time.Time) State {
	s := State{
		Piece:    e.catalog.Random(),
		FallRate: e.cfg.FallRate,
		LastTick: now,
	}
	s.Ghost = ProjectGhost(s.Piece, &s.Field)
	return s
}

// Due reports whether enough time passed since the last tick. A fall rate
// that reached zero or below makes every tick due.
func (e *Engine) Due(s State, now time.Time) bool {
	return !now.Before(s.LastTick.Add(s.FallRate))
}

// Tick advances the game by one step.
func (e *Engine) Tick(s State, a Action, now time.Time) State {
	if !e.Due(s, now) {
		return s
	}
	s.LastTick = now
	s.Cleared = 0

	if s.Status == GameOver {
		if a == HardDrop {
			return e.New(now)
		}
		return s
	}

	switch {
	case IsPlayed(s.Piece, &s.Field):
		e.lock(&s)
	case a == HardDrop:
		// committed on the next tick, when the piece is found played.
		s.Piece.Cells = s.Ghost.Cells
	default:
		if a == Rotate {
			s.Piece = RotatePiece(s.Piece)
		}
		s.Piece = AttemptMove(s.Piece, &s.Field, a)
	}

	s.Ghost = ProjectGhost(s.Piece, &s.Field)
	return s
}

// lock bakes the piece into the field, clears rows and spawns the next piece.
func (e *Engine) lock(s *State) {
	s.Field.Commit(s.Piece)
	if n := s.Field.ClearCompletedRows(); n > 0 {
		s.Score += Score(n, s.Rows)
		s.Rows += n
		s.FallRate -= time.Duration(n) * e.cfg.FallStep
		s.Cleared = n
	}
	s.Piece = e.catalog.Random()
	if IsPlayed(s.Piece, &s.Field) {
		s.Status = GameOver
	}
}
