package client

import (
	"blockfall/pb"
	"blockfall/tetris"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// remoteGame plays a game hosted by the session server. It looks like a
// local game to the client: actions go out as commands, snapshots come
// back as states.
type remoteGame struct {
	addr     string
	dialOpts []grpc.DialOption
	logger   *slog.Logger
	updateCh chan tetris.State
	ctx      context.Context
	cancel   context.CancelFunc

	stream  grpc.BidiStreamingClient[pb.Command, pb.Snapshot]
	session string
	err     error
	mu      sync.Mutex
}

func newRemoteGame(addr string, l *slog.Logger, opts ...grpc.DialOption) *remoteGame {
	ctx, cancel := context.WithCancel(context.Background())
	return &remoteGame{
		addr:     addr,
		dialOpts: append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...),
		logger:   l,
		updateCh: make(chan tetris.State),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start connects and relays snapshots until the stream ends. The update
// channel is closed on return.
func (r *remoteGame) Start() {
	defer close(r.updateCh)
	defer r.cancel()

	conn, err := grpc.NewClient(r.addr, r.dialOpts...)
	if err != nil {
		r.fail(fmt.Errorf("unable to create gRPC client: %w", err))
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			r.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
		}
	}()
	stream, err := pb.NewSessionClient(conn).Play(r.ctx)
	if err != nil {
		if r.ctx.Err() != nil {
			r.logger.Debug("connection canceled", slog.String("msg", err.Error()))
			return
		}
		r.fail(fmt.Errorf("unable to create gRPC Play stream: %w", err))
		return
	}
	r.mu.Lock()
	r.stream = stream
	r.mu.Unlock()

	for {
		snap, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.logger.Debug("stream.Recv() closed with EOF", slog.String("msg", err.Error()))
				return
			}
			st, ok := status.FromError(err)
			if ok && st.Code() == codes.Canceled {
				r.logger.Debug("stream.Recv() closed with Cancel", slog.String("msg", st.Message()))
				return
			}
			r.fail(fmt.Errorf("unable to receive snapshot: %w", err))
			return
		}
		st, err := snap.State()
		if err != nil {
			r.fail(fmt.Errorf("invalid snapshot: %w", err))
			return
		}
		r.mu.Lock()
		r.session = snap.SessionID
		r.mu.Unlock()
		select {
		case r.updateCh <- st:
		case <-r.ctx.Done():
			return
		}
	}
}

func (r *remoteGame) Stop() {
	r.cancel()
}

func (r *remoteGame) GetUpdate() <-chan tetris.State {
	return r.updateCh
}

// Action sends the action to the server. Actions before the stream is up are dropped.
func (r *remoteGame) Action(a tetris.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stream == nil {
		r.logger.Debug("dropping action, not connected", slog.String("action", a.String()))
		return
	}
	if err := r.stream.Send(pb.NewCommand(a)); err != nil {
		r.logger.Debug("unable to send command", slog.String("error", err.Error()))
	}
}

func (r *remoteGame) sessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Err returns why the game ended, if it wasn't stopped or closed by the server.
func (r *remoteGame) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *remoteGame) fail(err error) {
	r.logger.Error("remote game failed", slog.String("error", err.Error()))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}
