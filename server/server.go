package server

import (
	"blockfall/pb"
	"blockfall/tetris"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// newGame lets tests run sessions on a manual ticker.
type newGame func() *tetris.Game

type Server struct {
	logger  *slog.Logger
	newGame newGame

	sessions map[string]*tetris.Game
	mu       sync.Mutex
}

func New(cfg tetris.Config, l *slog.Logger) *Server {
	return &Server{
		logger:   l,
		newGame:  func() *tetris.Game { return tetris.NewGame(cfg, l) },
		sessions: make(map[string]*tetris.Game),
	}
}

// Sessions returns the number of games currently hosted.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Play hosts a game for as long as the stream lives. Received commands go
// to the game's pending action, every published state goes back out.
func (s *Server) Play(stream grpc.BidiStreamingServer[pb.Command, pb.Snapshot]) error {
	id := uuid.New().String()
	logger := s.logger.With(slog.String("session", id))
	game := s.newGame()

	s.mu.Lock()
	s.sessions[id] = game
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}()

	go game.Start()
	defer game.Stop()
	logger.Info("session started")

	rcvErr := make(chan error, 1)
	go func() {
		for {
			cmd, err := stream.Recv()
			if err != nil {
				rcvErr <- err
				return
			}
			game.Action(cmd.GetAction())
		}
	}()

	for {
		select {
		case st, ok := <-game.GetUpdate():
			if !ok {
				return nil
			}
			if err := stream.Send(pb.FromState(id, st)); err != nil {
				return fmt.Errorf("failed to send snapshot: %w", err)
			}
		case err := <-rcvErr:
			if errors.Is(err, io.EOF) {
				logger.Info("session closed by client")
				return nil
			}
			if st, ok := status.FromError(err); ok && (st.Code() == codes.Canceled || st.Code() == codes.DeadlineExceeded) {
				logger.Debug("session ended", slog.String("msg", st.Message()))
				return nil
			}
			logger.Error("unable to receive command", slog.String("error", err.Error()))
			return fmt.Errorf("failed to receive command: %w", err)
		case <-stream.Context().Done():
			logger.Debug("session context done", slog.String("msg", stream.Context().Err().Error()))
			return nil
		}
	}
}
