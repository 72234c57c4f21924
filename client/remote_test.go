package client

import (
	"blockfall/pb"
	"blockfall/server"
	"blockfall/tetris"
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func TestRemoteGame(t *testing.T) {
	srv, dialer, closer := testServer()
	defer closer()

	r := newRemoteGame("passthrough:///bufnet", slog.New(slog.NewTextHandler(io.Discard, nil)), dialer)
	go r.Start()

	var st tetris.State
	select {
	case st = <-r.GetUpdate():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for the first snapshot")
	}
	assert.Equal(t, tetris.Playing, st.Status)
	_, err := uuid.Parse(r.sessionID())
	assert.NoError(t, err, "session id should be a uuid")
	assert.Eventually(t, func() bool { return srv.Sessions() == 1 }, time.Second, 10*time.Millisecond)

	r.Action(tetris.MoveLeft)
	r.Stop()
	for range r.GetUpdate() {
	}
	assert.NoError(t, r.Err())
	assert.Eventually(t, func() bool { return srv.Sessions() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRemoteGameUnreachable(t *testing.T) {
	dialer := grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return nil, errors.New("connection refused")
	})
	r := newRemoteGame("passthrough:///bufnet", slog.New(slog.NewTextHandler(io.Discard, nil)), dialer)
	go r.Start()

	select {
	case _, ok := <-r.GetUpdate():
		assert.False(t, ok, "want no updates from an unreachable server")
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for the game to fail")
	}
	assert.Error(t, r.Err())

	// actions before a stream exists are dropped.
	r.Action(tetris.HardDrop)
}

func TestRemoteGameStoppedBeforeStart(t *testing.T) {
	_, dialer, closer := testServer()
	defer closer()

	r := newRemoteGame("passthrough:///bufnet", slog.New(slog.NewTextHandler(io.Discard, nil)), dialer)
	r.Stop()
	r.Start()

	_, ok := <-r.GetUpdate()
	require.False(t, ok)
	assert.NoError(t, r.Err())
}

func testServer() (*server.Server, grpc.DialOption, func()) {
	lis := bufconn.Listen(1024 * 1024)
	srv := server.New(tetris.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	s := grpc.NewServer()
	pb.RegisterSessionServer(s, srv)
	go func() {
		if err := s.Serve(lis); err != nil {
			log.Printf("unable to serve: %v", err)
		}
	}()

	dialer := grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return lis.Dial()
	})
	closer := func() {
		if err := lis.Close(); err != nil {
			log.Printf("error closing listener: %v", err)
		}
		s.Stop()
	}
	return srv, dialer, closer
}
