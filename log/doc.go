// Package log provides a simplified logging interface based on [log/slog].
//
// A [Logger] is built once from functional options and never changes, so it
// can be copied and shared between goroutines freely. The zero Logger
// discards everything.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("compiled", slog.String("input", "cdo.dbg"))
//	logger.Error("failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with some options replaced, and
// [Logger.With] one that adds attributes to every message.
//
// # Levels
//
// In addition to the [slog] levels there is [LevelTrace], used for output
// too detailed for debugging, such as every rule a compiler applies. Level
// names are written in upper case, so Trace appears as "TRACE" rather than
// "DEBUG-4".
//
// # Output Formats
//
// [FormatText] writes key=value pairs and [FormatJSON] writes objects. With
// [WithPretty] enabled (the default) both are colorized when the output is
// a terminal.
//
// # Package Logger
//
// The package-level functions log through a default logger writing to
// standard error. [Config] rebuilds it. Context-unaware functions use
// [DefaultContextProvider].
package log
