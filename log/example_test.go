package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/wfm/log"
)

func Example_compile() {
	logger := log.Make(os.Stderr)
	logger.Info("compiled configuration",
		slog.String("input", "cdo+valgrind"),
		slog.Int("args", 4),
	)
}

func Example_trace() {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("Kitchen"),
		log.WithCaller(true))

	logger.Trace("step", slog.String("sigil", "+"), slog.String("rest", "debug"))
}

func Example_json() {
	logger := log.Make(os.Stderr,
		log.WithFormat(log.FormatJSON),
		log.WithLevel(log.LevelWarn))

	logger.Debug("suppressed")
	logger.Warn("unknown configuration key", slog.String("key", "log-colour"))
}

func Example_profile() {
	logger := log.Make(os.Stderr).With(slog.String("profile", "marked"))

	ctx := context.Background()
	logger.DebugContext(ctx, "loaded profile", slog.String("file", "tables.yaml"))
}
