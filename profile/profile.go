package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // One of [Modes], or empty to disable
	Path  string // Output directory
	Quiet bool   // Suppress the profiler's own log messages
}

// Start begins profiling. Without the pprof build tag, with an empty Mode
// or with a Mode that is not in [Modes], nothing is profiled and the
// returned Stopper does nothing. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
