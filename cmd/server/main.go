package main

import (
	"blockfall/pb"
	"blockfall/server"
	"blockfall/tetris"
	"flag"
	"log/slog"
	"net"
	"os"
	"time"

	"google.golang.org/grpc"
)

func main() {
	cfg := tetris.DefaultConfig()
	addr := flag.String("addr", ":9000", "address to listen on")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "scheduler interval")
	flag.DurationVar(&cfg.FallRate, "fall", cfg.FallRate, "initial time between drops")
	flag.DurationVar(&cfg.FallStep, "step", cfg.FallStep, "fall rate decrease per cleared row")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "piece seed, 0 for random")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.TickInterval <= 0 {
		logger.Error("tick interval must be positive", slog.Duration("tick", cfg.TickInterval))
		os.Exit(2)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer lis.Close()
	s := grpc.NewServer()
	defer s.Stop()
	pb.RegisterSessionServer(s, server.New(cfg, logger))

	logger.Info("starting server...", slog.String("addr", lis.Addr().String()), slog.Duration("fallRate", cfg.FallRate), slog.Duration("tick", cfg.TickInterval))
	start := time.Now()
	if err := s.Serve(lis); err != nil {
		logger.Error("failed to serve", slog.String("error", err.Error()), slog.Duration("uptime", time.Since(start)))
		os.Exit(1)
	}
}
