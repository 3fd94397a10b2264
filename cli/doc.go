// Package cli contains the command line interface for wfm.
//
// # Usage
//
//	wfm [flags] [CONFIG]            # same as: wfm show [CONFIG]
//	wfm test CONFIG                 # compile and show
//	wfm fmt {json,yaml,shell} CONFIG
//	wfm env [--path-prepend DIR]... [--jobs N] CONFIG
//	wfm check CONFIG EXPR
//	wfm tables
//	wfm repl
//	wfm init [--force]
//
// Without CONFIG, show reads the configuration string from the base name of
// the target of the "ctx" symbolic link in the working directory.
//
// # Profiles
//
// --profile selects a built-in profile (legacy, wfm, marked). --tables names
// a YAML document that extends a built-in profile with custom shortcuts and
// macros; see [lang.LoadProfile].
//
// # Configuration File
//
// Flag defaults are read from $XDG_CONFIG_HOME/wfm/config.yaml. Keys are flag
// names; nested mappings join with "-":
//
//	profile: marked
//	log:
//	  level: debug
//	  pretty: false
//
// Command-line flags override config file values. "wfm init" writes the file
// from the current flag values.
//
// # Job Count
//
// The default for "env --jobs" is the executable's name when it is a number,
// so a link named "8" to wfm suggests MAKEFLAGS=-j8. Otherwise it is the
// number of CPUs.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     $XDG_CACHE_HOME/wfm/pprof)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
package cli
