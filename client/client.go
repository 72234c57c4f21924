package client

import (
	"blockfall/tetris"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	waiting
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

// swap sets the state to c only if it currently is from.
func (s *state) swap(from, c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == from {
		s.current = c
	}
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan tetris.State
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	lobby(lobbyMessage)
	game(st tetris.State, session string)
	reset()
}

type Client struct {
	render  renderer
	options *Options
	logger  *slog.Logger
	kbCh    <-chan keyboard.KeyEvent
	state   *state

	localGame  func() tetrisGame
	remoteGame func() tetrisGame

	// only touched by the keyboard listener.
	game tetrisGame
	wg   sync.WaitGroup
}

type Options struct {
	NoGhost bool
	Address string
	Name    string
	Config  tetris.Config
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l, o.NoGhost, o.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	return &Client{
		render:     r,
		options:    o,
		logger:     l,
		kbCh:       kb,
		state:      &state{current: lobby},
		localGame:  func() tetrisGame { return tetris.NewGame(o.Config, l) },
		remoteGame: func() tetrisGame { return newRemoteGame(o.Address, l) },
	}, nil
}

// Close releases the keyboard.
func (c *Client) Close() error {
	return keyboard.Close()
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.reset()
	c.render.lobby(defaultLobby())
	c.listenKB()
	if c.game != nil {
		c.stopGame()
	}
	c.wg.Wait()
}

// keyAction maps a key press to a game action. Unknown keys are None.
func keyAction(event keyboard.KeyEvent) tetris.Action {
	switch {
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.SoftDrop
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w':
		return tetris.Rotate
	case event.Key == keyboard.KeySpace:
		return tetris.HardDrop
	}
	return tetris.None
}

func (c *Client) listenKB() {
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				c.play(c.localGame(), "")
			case 'o':
				c.state.set(waiting)
				c.render.lobby(connecting())
				c.play(c.remoteGame(), c.options.Address)
			case 'q':
				return
			}
		case waiting:
			if event.Rune == 'c' || event.Key == keyboard.KeyEsc {
				c.stopGame()
			}
		case playing:
			if event.Key == keyboard.KeyEsc {
				c.stopGame()
				continue
			}
			c.game.Action(keyAction(event))
		}
	}
}

func (c *Client) stopGame() {
	c.state.set(lobby)
	c.game.Stop()
	c.game = nil
	c.wg.Wait()
}

// play runs the game until its update channel closes, then goes back to the lobby.
func (c *Client) play(g tetrisGame, addr string) {
	c.game = g
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		go g.Start()
		var started bool
		for st := range g.GetUpdate() {
			if !started {
				started = true
				c.state.swap(waiting, playing)
				c.render.reset()
				c.logger.Debug("game started", slog.String("addr", addr))
			}
			var session string
			if r, ok := g.(*remoteGame); ok {
				session = r.sessionID()
			}
			c.render.game(st, session)
		}

		msg := defaultLobby()
		if e, ok := g.(interface{ Err() error }); ok && e.Err() != nil {
			msg = errorMessage()
		}
		c.render.lobby(msg)
		c.state.set(lobby)
	}()
}
