package main

import (
	"blockfall/client"
	"blockfall/terminal"
	"blockfall/tetris"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
)

func main() {
	cfg := tetris.DefaultConfig()
	noGhost := flag.Bool("noghost", false, "disable the ghost piece")
	addr := flag.String("addr", "localhost:9000", "session server address for online play")
	name := flag.String("name", os.Getenv("USER"), "player name")
	logFile := flag.String("log", "", "write JSON logs to this file")
	debugLogs := flag.Bool("debug", false, "enable debug logs")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "scheduler interval")
	flag.DurationVar(&cfg.FallRate, "fall", cfg.FallRate, "initial time between drops")
	flag.DurationVar(&cfg.FallStep, "step", cfg.FallStep, "fall rate decrease per cleared row")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "piece seed, 0 for random")
	flag.Parse()

	if cfg.TickInterval <= 0 {
		fmt.Fprintln(os.Stderr, "tick interval must be positive")
		os.Exit(2)
	}
	if err := terminal.Check(int(os.Stdout.Fd())); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(*logFile, *debugLogs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	cl, err := client.New(logger, &client.Options{
		NoGhost: *noGhost,
		Address: *addr,
		Name:    *name,
		Config:  cfg,
	})
	if err != nil {
		logger.Error("unable to start client", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Print(terminal.HideCursor)
	defer func() {
		if r := recover(); r != nil {
			restore(cl)
			fmt.Fprintf(os.Stderr, "\r\ncrashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cl.Start()
	restore(cl)
}

func restore(cl *client.Client) {
	if err := cl.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to release the keyboard: %v\r\n", err)
	}
	fmt.Print(terminal.Clear + terminal.ShowCursor)
}

// newLogger logs to path, or nowhere when path is empty since stdout is the game.
func newLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), func() { f.Close() }, nil
}
