package tetris

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick(now time.Time)  { m.ch <- now }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// TestEpoch is the LastTick of every state built by NewTestState.
var TestEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewTestState creates a playing state with an empty field and a piece of
// the given shape at its spawn location.
func NewTestState(shape Shape) State {
	s := State{
		Piece:    NewPiece(shape),
		FallRate: DefaultConfig().FallRate,
		LastTick: TestEpoch,
	}
	s.Ghost = ProjectGhost(s.Piece, &s.Field)
	return s
}

// NewTestGame creates a game that hasn't started, with a manual ticker
// and a deterministic catalog.
func NewTestGame(seed uint64) (*Game, *MockTicker) {
	cfg := DefaultConfig()
	cfg.Seed = seed
	ticker := NewMockTicker()
	return NewConfigurableGame(cfg, ticker, slog.New(slog.NewTextHandler(io.Discard, nil))), ticker
}
