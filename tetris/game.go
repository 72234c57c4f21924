package tetris

import (
	"log/slog"
	"sync"
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := &wrappedTicker{ticker: time.NewTicker(d)}
	t.ticker.Stop()
	return t
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs an Engine on a fixed cadence. Every ticker fire advances the
// state when it's due and publishes a snapshot of it.
type Game struct {
	cfg      Config
	engine   *Engine
	ticker   Ticker
	logger   *slog.Logger
	mailbox  Mailbox
	updateCh chan State
	doneCh   chan struct{}

	state State
	mu    sync.RWMutex
}

func NewGame(cfg Config, l *slog.Logger) *Game {
	return NewConfigurableGame(cfg, newWrappedTicker(cfg.TickInterval), l)
}

func NewConfigurableGame(cfg Config, ticker Ticker, l *slog.Logger) *Game {
	return &Game{
		cfg:      cfg,
		engine:   NewEngine(cfg),
		ticker:   ticker,
		logger:   l,
		updateCh: make(chan State),
		doneCh:   make(chan struct{}),
	}
}

// Start begins a new game. Snapshots are delivered through GetUpdate(),
// starting with the initial state, until Stop() is called.
func (g *Game) Start() {
	g.mu.Lock()
	g.state = g.engine.New(time.Now())
	g.mu.Unlock()
	g.logger.Info("game started", slog.String("piece", string(g.state.Piece.Shape)))
	g.ticker.Reset(g.cfg.TickInterval)
	select {
	case g.updateCh <- g.Read():
	case <-g.doneCh:
		g.ticker.Stop()
		close(g.updateCh)
		return
	}
	go g.listen()
}

// Stop halts the ticker and ends the loop. The update channel is closed
// once the loop returns.
func (g *Game) Stop() {
	g.ticker.Stop()
	close(g.doneCh)
}

// Action sets the pending action. It never blocks: a newer action
// replaces one that no tick consumed yet.
func (g *Game) Action(a Action) {
	g.mailbox.Put(a)
}

func (g *Game) GetUpdate() <-chan State {
	return g.updateCh
}

// Read returns a copy of the current state that's safe to read concurrently.
func (g *Game) Read() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Game) listen() {
	defer close(g.updateCh)
	for {
		select {
		case now := <-g.ticker.C():
			g.step(now)
			select {
			case g.updateCh <- g.Read():
			case <-g.doneCh:
				return
			}
		case <-g.doneCh:
			return
		}
	}
}

// step runs the engine once. The pending action is only consumed by a tick
// that is due.
func (g *Game) step(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.engine.Due(g.state, now) {
		return
	}
	prev := g.state
	g.state = g.engine.Tick(prev, g.mailbox.Take(), now)

	switch {
	case prev.Status == GameOver && g.state.Status == Playing:
		g.logger.Info("game restarted")
	case prev.Status == Playing && g.state.Status == GameOver:
		g.logger.Info("game over", slog.Int("score", g.state.Score), slog.Int("rows", g.state.Rows))
	}
	if g.state.Cleared > 0 {
		g.logger.Debug("rows cleared",
			slog.Int("cleared", g.state.Cleared),
			slog.Int("score", g.state.Score),
			slog.Duration("fallRate", g.state.FallRate),
		)
	}
}
