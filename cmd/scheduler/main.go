// Command scheduler is the process-manager core: it reads one command
// byte at a time from stdin (an operator, or a commander piped in as
// `commander | scheduler`, per spec §5's unidirectional-pipe model) and
// drives the priority scheduler until a T command or end-of-stream.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/pedropsouza/scheduler/internal/config"
	"github.com/pedropsouza/scheduler/internal/console"
	"github.com/pedropsouza/scheduler/internal/loader"
	"github.com/pedropsouza/scheduler/internal/sched"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "scheduler.json", "path to an optional JSON config file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	config.ApplyTimeSlices(cfg)

	logger := newLogger(cfg.LogLevel)

	program, err := loader.Load(cfg.InitProgram)
	if err != nil {
		logger.Error("failed to load initial process", "error", err)
		return 1
	}

	s := sched.New(program, logger)

	dumpOut := colorable.NewColorableStdout()
	console.SetColor(isatty.IsTerminal(os.Stdout.Fd()))

	d := console.NewDispatcher(s, dumpOut, logger)
	outcome := d.Run(os.Stdin)

	switch outcome {
	case console.Terminated:
		d.ReportTurnaround()
	case console.EOF:
		logger.Debug("pipe closed, shutting down without turnaround report")
	}

	return 0
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}
