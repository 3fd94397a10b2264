package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/ardnew/wfm/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// historyFile is the base name of the REPL history file in the cache dir.
const historyFile = "history"

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// exeName returns the base name of the executable without its extension.
var exeName = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		return strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))
	},
)

// basePrefix returns the name used to construct the configuration and cache
// directory paths.
//
// By default, basePrefix is [exeName] unless it matches one of the following
// substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - all digits (a job-count link such as "8"): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
var basePrefix = sync.OnceValue(
	func() string {
		id := exeName()

		for _, sub := range []struct {
			rex *regexp.Regexp
			rep string
		}{
			{regexp.MustCompile(`^__debug_bin\d+$`), pkg.Name},
			{regexp.MustCompile(`^\d+$`), pkg.Name},
			{regexp.MustCompile(`^\.+`), ""},
		} {
			id = sub.rex.ReplaceAllString(id, sub.rep)
		}

		if id == "" {
			return pkg.Name
		}

		return id
	},
)

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), basePrefix())
	},
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), basePrefix())
	},
)

// userDir calls locate and falls back to home/fallback, then to the working
// directory.
func userDir(locate func() (string, error), fallback string) string {
	if dir, err := locate(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// defaultJobs returns the parallel job count used when --jobs is not given:
// the executable's name when it is a positive number, otherwise the number
// of CPUs.
func defaultJobs(name string) int {
	if n, err := strconv.Atoi(name); err == nil && n > 0 {
		return n
	}

	return runtime.NumCPU()
}
